package tool

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hupe1980/agentkit/core"
)

// HandlerFunc is the typed implementation behind a FunctionTool.
type HandlerFunc[In, Out any] func(tc *core.ToolContext, in In) (Out, error)

// FunctionTool is a generic adapter that exposes a plain Go function as a tool.
//
// Responsibilities:
//   - Holds the JSON schema derived from In (or supplied explicitly)
//   - Decodes validated input into In before calling the handler
//   - Reports decode failures as *ValidationError
//
// Concurrency:
//
//	A FunctionTool has no internal mutable state after construction and is safe for
//	concurrent use by multiple goroutines.
type FunctionTool[In, Out any] struct {
	name        string
	description string
	schema      *jsonschema.Schema
	fn          HandlerFunc[In, Out]
}

// NewFunctionTool constructs a FunctionTool deriving the input schema from In
// via struct reflection (json tags name fields, jsonschema tags describe them).
//
// Example:
//
//	type SumArgs struct {
//	  A float64 `json:"a" jsonschema:"first addend"`
//	  B float64 `json:"b" jsonschema:"second addend"`
//	}
//
//	sum, err := tool.NewFunctionTool("add", "Add two numbers",
//	  func(_ *core.ToolContext, in SumArgs) (map[string]float64, error) {
//	    return map[string]float64{"sum": in.A + in.B}, nil
//	  })
func NewFunctionTool[In, Out any](name, description string, fn HandlerFunc[In, Out]) (*FunctionTool[In, Out], error) {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return nil, fmt.Errorf("derive schema for tool %s: %w", name, err)
	}
	return NewFunctionToolWithSchema(name, description, schema, fn), nil
}

// NewFunctionToolWithSchema constructs a FunctionTool from an explicit schema.
func NewFunctionToolWithSchema[In, Out any](name, description string, schema *jsonschema.Schema, fn HandlerFunc[In, Out]) *FunctionTool[In, Out] {
	return &FunctionTool[In, Out]{
		name:        name,
		description: description,
		schema:      schema,
		fn:          fn,
	}
}

// MustFunctionTool is like NewFunctionTool but panics on schema derivation errors.
// Intended for package level tool declarations.
func MustFunctionTool[In, Out any](name, description string, fn HandlerFunc[In, Out]) *FunctionTool[In, Out] {
	t, err := NewFunctionTool(name, description, fn)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the unique tool name used in tool definitions and routing.
func (t *FunctionTool[In, Out]) Name() string { return t.name }

// Description returns the short natural language description exposed to models.
func (t *FunctionTool[In, Out]) Description() string { return t.description }

// Parameters returns the JSON schema describing expected arguments.
func (t *FunctionTool[In, Out]) Parameters() *jsonschema.Schema { return t.schema }

// Call decodes input into In and invokes the handler.
func (t *FunctionTool[In, Out]) Call(tc *core.ToolContext, input json.RawMessage) (any, error) {
	var in In
	if len(input) > 0 {
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, &ValidationError{Tool: t.name, Detail: err.Error()}
		}
	}
	out, err := t.fn(tc, in)
	if err != nil {
		return nil, err
	}
	return out, nil
}
