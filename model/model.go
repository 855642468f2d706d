package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hupe1980/agentkit/core"
)

// ToolDefinition declaratively exposes a callable tool to the model.
type ToolDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// ParametersMap renders the parameter schema as a generic JSON object, the
// shape most provider SDKs expect. A nil schema yields an empty object schema.
func (d ToolDefinition) ParametersMap() (map[string]any, error) {
	if d.Parameters == nil {
		return map[string]any{"type": "object", "properties": map[string]any{}}, nil
	}
	raw, err := json.Marshal(d.Parameters)
	if err != nil {
		return nil, fmt.Errorf("marshal schema for %s: %w", d.Name, err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal schema for %s: %w", d.Name, err)
	}
	return out, nil
}

// Request captures the full conversation history plus the tools on offer.
type Request struct {
	Messages []core.Message   `json:"messages"`
	Tools    []ToolDefinition `json:"tools,omitempty"`
}

// Response is the normalized outcome of one model call.
type Response struct {
	Text         string          `json:"text"`
	ToolCalls    []core.ToolCall `json:"tool_calls,omitempty"`
	Usage        *core.Usage     `json:"usage,omitempty"`
	FinishReason string          `json:"finish_reason"` // "stop", "length", "tool_calls", etc.
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "scripted", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required by the agent loop to drive generation.
type Model interface {
	// Generate performs one completion over the full message history.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// ErrScriptExhausted is returned by ScriptedModel when no responses are left.
var ErrScriptExhausted = errors.New("scripted model: no responses left")

// ScriptedModel is a lightweight in‑memory Model useful for tests & examples.
// It replays a fixed sequence of responses and records every request.
type ScriptedModel struct {
	mu        sync.Mutex
	info      Info
	responses []Response
	fallback  *Response
	requests  []Request
}

// NewScriptedModel constructs a ScriptedModel replaying responses in order.
func NewScriptedModel(responses ...Response) *ScriptedModel {
	return &ScriptedModel{
		info:      Info{Name: "scripted", Provider: "scripted", SupportsTools: true},
		responses: responses,
	}
}

// WithFallback sets a response returned once the script is exhausted.
func (m *ScriptedModel) WithFallback(resp Response) *ScriptedModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &resp
	return m
}

// Generate implements Model.
func (m *ScriptedModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := Request{
		Messages: append([]core.Message(nil), req.Messages...),
		Tools:    append([]ToolDefinition(nil), req.Tools...),
	}
	m.requests = append(m.requests, snapshot)

	if len(m.responses) == 0 {
		if m.fallback != nil {
			resp := *m.fallback
			return &resp, nil
		}
		return nil, ErrScriptExhausted
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return &resp, nil
}

// Requests returns the requests seen so far.
func (m *ScriptedModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// Calls returns how many times Generate was invoked.
func (m *ScriptedModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Info implements Model interface.
func (m *ScriptedModel) Info() Info { return m.info }
