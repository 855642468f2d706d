package core

import (
	"encoding/json"
	"strings"
)

// Role identifies the author of a Message.
type Role string

const (
	// RoleSystem carries the system prompt.
	RoleSystem Role = "system"
	// RoleUser carries caller supplied input.
	RoleUser Role = "user"
	// RoleAssistant carries model output (text and tool calls).
	RoleAssistant Role = "assistant"
	// RoleTool carries the outcome of exactly one tool call.
	RoleTool Role = "tool"
)

// Part represents a polymorphic segment of a message. Concrete part types
// implement the unexported isPart marker enabling a closed set.
type Part interface{ isPart() }

// TextPart is a plain text content segment.
type TextPart struct {
	Text string `json:"text"`
}

// isPart implements the Part interface for TextPart.
func (TextPart) isPart() {}

// ToolCall describes a tool invocation request emitted by a model.
type ToolCall struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input,omitempty"` // Untyped arguments as emitted by the model
}

// ToolCallPart wraps a ToolCall as an assistant message part.
type ToolCallPart struct {
	ToolCall ToolCall `json:"tool_call"`
}

// isPart implements the Part interface for ToolCallPart.
func (ToolCallPart) isPart() {}

// ToolResultPart carries the serialized outcome of a tool call.
type ToolResultPart struct {
	CallID  string `json:"call_id"` // Matches originating ToolCall ID
	Name    string `json:"name"`
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}

// isPart implements the Part interface for ToolResultPart.
func (ToolResultPart) isPart() {}

// Message holds role + ordered parts.
type Message struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

// NewTextMessage builds a single text part message.
func NewTextMessage(role Role, text string) Message {
	return Message{Role: role, Parts: []Part{TextPart{Text: text}}}
}

// Text concatenates all text parts of the message.
func (m Message) Text() string {
	var b strings.Builder
	for _, p := range m.Parts {
		if tp, ok := p.(TextPart); ok {
			b.WriteString(tp.Text)
		}
	}
	return b.String()
}

// ToolCalls returns the tool call parts of the message in order.
func (m Message) ToolCalls() []ToolCall {
	var calls []ToolCall
	for _, p := range m.Parts {
		if tc, ok := p.(ToolCallPart); ok {
			calls = append(calls, tc.ToolCall)
		}
	}
	return calls
}

// ToolResults returns the tool result parts of the message in order.
func (m Message) ToolResults() []ToolResultPart {
	var results []ToolResultPart
	for _, p := range m.Parts {
		if tr, ok := p.(ToolResultPart); ok {
			results = append(results, tr)
		}
	}
	return results
}
