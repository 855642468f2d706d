// Package tool implements the tool calling subsystem that lets agents invoke
// structured capabilities (APIs, computations, side‑effects) with schema
// validated arguments, uniform error normalization and an immutable registry.
//
// The three moving parts are:
//
//   - Tool: a named capability with a JSON schema and a Call method
//   - Registry: an immutable name → tool mapping with pre-resolved schemas
//   - Invoker: validates one call, executes it once and normalizes every
//     failure into a Result (only registry misses surface as errors)
package tool

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hupe1980/agentkit/core"
)

// DelegationPrefix is reserved for tools that delegate to a subagent. Only
// tools implementing Delegator may carry it, so a subagent's tool key never
// collides with an ordinary tool name.
const DelegationPrefix = "subagent_"

// Tool defines the interface for extending agent capabilities with external functions.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define a proper JSON schema for their input
//   - Return errors instead of panicking
//   - Be safe for concurrent use if registered with a concurrent run
type Tool interface {
	// Name returns the unique identifier for this tool.
	// Names must match ^[a-zA-Z0-9_-]{1,64}$ (snake_case recommended).
	Name() string

	// Description returns a human-readable description of what this tool does.
	// This description is provided to the LLM to help it understand when and how to use the tool.
	Description() string

	// Parameters returns the JSON schema describing the expected input.
	// A nil schema accepts any JSON input.
	Parameters() *jsonschema.Schema

	// Call executes the tool with input that already passed schema validation.
	Call(tc *core.ToolContext, input json.RawMessage) (any, error)
}

// Delegator marks a Tool that runs a subagent. Such tools may use DelegationPrefix.
type Delegator interface {
	Tool
	SubagentName() string
}

// Result is the uniform outcome of one tool call. Exactly one of Output or
// Error is meaningful, selected by Success.
type Result struct {
	Success bool   `json:"success"`
	Output  any    `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
	// Err keeps the typed error (usually *ToolError) for programmatic inspection.
	Err error `json:"-"`
}

func success(out any) Result { return Result{Success: true, Output: out} }

func failure(err *ToolError) Result {
	return Result{Success: false, Error: err.Error(), Err: err}
}
