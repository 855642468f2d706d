package subagent

import (
	"strings"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/tool"
)

// Input is the argument object of a delegation tool.
type Input struct {
	Instruction string `json:"instruction" jsonschema:"The task for the subagent, stated completely and self-contained"`
}

// DelegationTool exposes a subagent as a tool. Only the subagent's final
// output is returned to the caller.
type DelegationTool struct {
	*tool.FunctionTool[Input, string]
	def Definition
}

var _ tool.Delegator = (*DelegationTool)(nil)

// NewTool validates def and wraps it as a tool named ToolName(def.Name).
func NewTool(def Definition, sctx Context) (*DelegationTool, error) {
	def, err := Define(def)
	if err != nil {
		return nil, err
	}

	name := ToolName(def.Name)
	fn, err := tool.NewFunctionTool(name, def.Description, func(tc *core.ToolContext, in Input) (string, error) {
		if strings.TrimSpace(in.Instruction) == "" {
			return "", &tool.ValidationError{Tool: name, Detail: "instruction must not be empty"}
		}
		res, err := Run(tc.Context(), def, in.Instruction, sctx)
		if err != nil {
			return "", err
		}
		return res.Output, nil
	})
	if err != nil {
		return nil, err
	}

	return &DelegationTool{FunctionTool: fn, def: def}, nil
}

// SubagentName returns the name of the wrapped subagent.
func (d *DelegationTool) SubagentName() string { return d.def.Name }

// Definition returns the validated definition behind the tool.
func (d *DelegationTool) Definition() Definition { return d.def }
