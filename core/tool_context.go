package core

import (
	"context"

	"github.com/hupe1980/agentkit/logging"
)

// ToolContext is the execution surface handed to a tool handler. It carries
// the cancellation signal for the call, the originating call id and a logger
// scoped to the call. It holds no reference to the conversation history.
type ToolContext struct {
	ctx      context.Context
	callID   string
	toolName string
	logger   logging.Logger
}

// NewToolContext constructs a tool context bound to ctx and a tool call.
func NewToolContext(ctx context.Context, callID, toolName string, logger logging.Logger) *ToolContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ToolContext{
		ctx:      ctx,
		callID:   callID,
		toolName: toolName,
		logger:   logging.With(logger, "tool", toolName, "call_id", callID),
	}
}

// Context returns the context associated with the tool invocation. It is
// cancelled when the run is cancelled or the per-call timeout elapses.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// CallID returns the id of the tool call being executed.
func (tc *ToolContext) CallID() string { return tc.callID }

// ToolName returns the name of the tool being executed.
func (tc *ToolContext) ToolName() string { return tc.toolName }

// Logger returns a logger tagged with the tool name and call id.
func (tc *ToolContext) Logger() logging.Logger { return tc.logger }
