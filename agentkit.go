// Package agentkit is the entry point for running tool-using agents and for
// delegating work to subagents. It is a thin façade over the agent, tool and
// subagent packages:
//
//  1. Build a tool.Registry from tool.FunctionTool values (or any tool.Tool)
//  2. Call Run with a model.Model, the registry, a system prompt and input
//  3. Optionally package focused agents with DefineSubagent and expose them
//     to a parent run through CreateDelegationTool
//
// Tool failures are reported back to the model and never abort a run; only
// configuration problems (unknown tools, invalid definitions, missing models)
// and budget exhaustion surface as errors.
package agentkit

import (
	"context"

	"github.com/hupe1980/agentkit/agent"
	"github.com/hupe1980/agentkit/subagent"
)

// Run executes one agent run.
func Run(ctx context.Context, cfg agent.Config) (*agent.Result, error) {
	return agent.Run(ctx, cfg)
}

// DefineSubagent validates a subagent definition without running it.
func DefineSubagent(def subagent.Definition) (subagent.Definition, error) {
	return subagent.Define(def)
}

// CreateDelegationTool exposes a subagent to a parent agent as a tool.
func CreateDelegationTool(def subagent.Definition, sctx subagent.Context) (*subagent.DelegationTool, error) {
	return subagent.NewTool(def, sctx)
}

// RunSubagent executes a subagent directly with the given instruction.
func RunSubagent(ctx context.Context, def subagent.Definition, instruction string, sctx subagent.Context) (*subagent.Result, error) {
	return subagent.Run(ctx, def, instruction, sctx)
}
