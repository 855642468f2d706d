package main

import (
	"fmt"
	"io"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/hupe1980/agentkit/agent"
	"github.com/hupe1980/agentkit/config"
	"github.com/hupe1980/agentkit/internal/builtin"
	"github.com/hupe1980/agentkit/internal/prompt"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/model"
	"github.com/hupe1980/agentkit/model/anthropic"
	"github.com/hupe1980/agentkit/model/openai"
	"github.com/hupe1980/agentkit/subagent"
	"github.com/hupe1980/agentkit/tool"
)

// app holds everything a run needs, assembled from configuration.
type app struct {
	cfg    config.Config
	logger logging.Logger
	model  model.Model
	tools  *tool.Registry
}

func newLogger(cfg config.LogConfig, out io.Writer) logging.Logger {
	return logging.New(logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		Output:    out,
		Component: "agentkit",
	})
}

func newModel(cfg config.ModelConfig) (model.Model, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			o.Model = cfg.Name
			o.Temperature = cfg.Temperature
			o.MaxCompletionTokens = cfg.MaxTokens
			o.APIKey = cfg.ResolveAPIKey()
			o.BaseURL = cfg.BaseURL
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = anthropicsdk.Model(cfg.Name)
			o.Temperature = cfg.Temperature
			o.MaxTokens = cfg.MaxTokens
			o.APIKey = cfg.ResolveAPIKey()
			o.BaseURL = cfg.BaseURL
		}), nil
	}
	return nil, fmt.Errorf("unsupported model provider %q", cfg.Provider)
}

// buildApp wires configuration into a runnable app. A non-nil m replaces the
// configured provider.
func buildApp(cfg config.Config, m model.Model, logger logging.Logger) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if m == nil {
		var err error
		if m, err = newModel(cfg.Model); err != nil {
			return nil, err
		}
	}

	base, err := builtin.Select(cfg.Agent.Tools)
	if err != nil {
		return nil, err
	}

	registry, err := tool.NewRegistry(base...)
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.Agent.ToolTimeoutDuration()
	if err != nil {
		return nil, err
	}

	sctx := subagent.Context{
		Model:                    m,
		Tools:                    registry,
		Logger:                   logger,
		ToolTimeout:              timeout,
		MaxToolCallsPerIteration: cfg.Agent.MaxToolCalls,
		ConcurrentTools:          cfg.Agent.ConcurrentTools,
		MaxParallelTools:         cfg.Agent.MaxParallelTools,
	}
	vars := prompt.Vars(cfg.Agent.Vars)

	delegates := make([]tool.Tool, 0, len(cfg.Subagents))
	for _, sc := range cfg.Subagents {
		def, err := subagentDefinition(sc, vars)
		if err != nil {
			return nil, err
		}
		dt, err := subagent.NewTool(def, sctx)
		if err != nil {
			return nil, err
		}
		delegates = append(delegates, dt)
	}

	if len(delegates) > 0 {
		if registry, err = registry.With(delegates...); err != nil {
			return nil, err
		}
	}

	return &app{cfg: cfg, logger: logger, model: m, tools: registry}, nil
}

func subagentDefinition(sc config.SubagentConfig, vars map[string]any) (subagent.Definition, error) {
	systemPrompt, err := prompt.Render(sc.SystemPrompt, vars)
	if err != nil {
		return subagent.Definition{}, fmt.Errorf("subagent %s: %w", sc.Name, err)
	}

	def := subagent.Definition{
		Name:            sc.Name,
		Description:     sc.Description,
		SystemPrompt:    systemPrompt,
		DisallowedTools: sc.DisallowedTools,
		MaxIterations:   sc.MaxIterations,
	}

	if len(sc.Tools) > 0 {
		if def.Tools, err = builtin.Select(sc.Tools); err != nil {
			return subagent.Definition{}, fmt.Errorf("subagent %s: %w", sc.Name, err)
		}
	}

	return subagent.Define(def)
}

// agentConfig renders the run configuration for input.
func (a *app) agentConfig(input string, onStep func(agent.Step)) (agent.Config, error) {
	systemPrompt, err := prompt.Render(a.cfg.Agent.SystemPrompt, prompt.Vars(a.cfg.Agent.Vars))
	if err != nil {
		return agent.Config{}, err
	}

	timeout, err := a.cfg.Agent.ToolTimeoutDuration()
	if err != nil {
		return agent.Config{}, err
	}

	return agent.Config{
		Model:                    a.model,
		Tools:                    a.tools,
		SystemPrompt:             systemPrompt,
		Input:                    input,
		MaxIterations:            a.cfg.Agent.MaxIterations,
		OnStep:                   onStep,
		Logger:                   a.logger,
		ToolTimeout:              timeout,
		MaxToolCallsPerIteration: a.cfg.Agent.MaxToolCalls,
		ConcurrentTools:          a.cfg.Agent.ConcurrentTools,
		MaxParallelTools:         a.cfg.Agent.MaxParallelTools,
	}, nil
}
