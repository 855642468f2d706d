package subagent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentkit/agent"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/model"
	"github.com/hupe1980/agentkit/tool"
)

// Context carries what a subagent may inherit from its parent.
type Context struct {
	Model  model.Model
	Tools  *tool.Registry
	Logger logging.Logger

	// Execution limits applied to every tool call of the child run, with the
	// same meaning as the agent.Config fields of the same name. The delegation
	// call itself is not bounded by the parent's ToolTimeout.
	ToolTimeout              time.Duration
	MaxToolCallsPerIteration int
	ConcurrentTools          bool
	MaxParallelTools         int
}

// Result is an agent result tagged with the subagent that produced it.
type Result struct {
	agent.Result
	SubagentName string `json:"subagent_name"`
}

// ResolutionError reports that no model could be resolved for a subagent.
type ResolutionError struct {
	Name string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("subagent %q: no model on the definition or the parent context", e.Name)
}

// Run executes def as one agent run seeded with instruction.
func Run(ctx context.Context, def Definition, instruction string, sctx Context) (*Result, error) {
	def, err := Define(def)
	if err != nil {
		return nil, err
	}

	m, err := resolveModel(def, sctx)
	if err != nil {
		return nil, err
	}

	tools, err := resolveTools(def, sctx.Tools)
	if err != nil {
		return nil, err
	}

	log := logging.With(sctx.Logger, "subagent", def.Name)

	log.Info("subagent.run.start", "tools", tools.Len(), "max_iterations", def.MaxIterations)

	res, err := agent.Run(ctx, agent.Config{
		Model:         m,
		Tools:         tools,
		SystemPrompt:  def.SystemPrompt,
		Input:         instruction,
		MaxIterations: def.MaxIterations,
		OnStep:        def.OnStep,
		Logger:        log,

		ToolTimeout:              sctx.ToolTimeout,
		MaxToolCallsPerIteration: sctx.MaxToolCallsPerIteration,
		ConcurrentTools:          sctx.ConcurrentTools,
		MaxParallelTools:         sctx.MaxParallelTools,
	})
	if err != nil {
		log.Warn("subagent.run.failed", "error", err)
		return nil, fmt.Errorf("subagent %s: %w", def.Name, err)
	}

	log.Info("subagent.run.complete", "steps", len(res.Steps))

	return &Result{Result: *res, SubagentName: def.Name}, nil
}

func resolveModel(def Definition, sctx Context) (model.Model, error) {
	if def.Model != nil {
		return def.Model, nil
	}
	if sctx.Model != nil {
		return sctx.Model, nil
	}
	return nil, &ResolutionError{Name: def.Name}
}

// resolveTools derives the subagent's registry. The parent registry is never modified.
func resolveTools(def Definition, parent *tool.Registry) (*tool.Registry, error) {
	if len(def.Tools) > 0 {
		reg, err := tool.NewRegistry(def.Tools...)
		if err != nil {
			return nil, &DefinitionError{Name: def.Name, Reason: err.Error()}
		}
		return reg, nil
	}

	return parent.Filter(func(t tool.Tool) bool {
		if strings.HasPrefix(t.Name(), tool.DelegationPrefix) {
			return false
		}
		for _, name := range def.DisallowedTools {
			if t.Name() == name {
				return false
			}
		}
		return true
	}), nil
}
