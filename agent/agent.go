package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/model"
	"github.com/hupe1980/agentkit/tool"
)

const (
	// DefaultMaxIterations bounds a run when Config.MaxIterations is zero.
	DefaultMaxIterations = 10
	// DefaultMaxToolCallsPerIteration caps the calls executed per model response.
	DefaultMaxToolCallsPerIteration = 32
)

// Config describes one agent run.
type Config struct {
	Model        model.Model
	Tools        *tool.Registry // nil means no tools
	SystemPrompt string
	Input        string

	// MaxIterations is the number of model calls allowed. Zero means DefaultMaxIterations.
	MaxIterations int

	// OnStep is invoked synchronously after every completed iteration.
	// Panics raised by OnStep are not recovered.
	OnStep func(Step)

	Logger logging.Logger

	// ToolTimeout bounds one tool call. Zero means tool.DefaultTimeout, negative disables it.
	ToolTimeout time.Duration

	// MaxToolCallsPerIteration caps how many calls of one response are executed.
	// Calls beyond the cap receive failed results. Zero means DefaultMaxToolCallsPerIteration.
	MaxToolCallsPerIteration int

	// ConcurrentTools executes the calls of one response concurrently. Results
	// are still recorded and appended in call order.
	ConcurrentTools bool
	// MaxParallelTools limits concurrent calls when ConcurrentTools is set. Zero means unbounded.
	MaxParallelTools int
}

// Step is the recorded outcome of one iteration.
type Step struct {
	Iteration   int             `json:"iteration"`
	Content     string          `json:"content,omitempty"`
	ToolCalls   []core.ToolCall `json:"tool_calls,omitempty"`
	ToolResults []tool.Result   `json:"tool_results,omitempty"`
	Usage       *core.Usage     `json:"usage,omitempty"`
}

// Result is the outcome of a successful run.
type Result struct {
	Output     string         `json:"output"`
	Steps      []Step         `json:"steps"`
	TotalUsage core.Usage     `json:"total_usage"`
	Messages   []core.Message `json:"messages"`
}

// IterationExceededError is returned when the model still requests tools
// after MaxIterations model calls. Iteration is the index of the last
// iteration attempted (MaxIterations-1).
type IterationExceededError struct {
	MaxIterations int
	Iteration     int
}

func (e *IterationExceededError) Error() string {
	return fmt.Sprintf("agent exceeded max iterations (%d): last iteration %d still requested tools", e.MaxIterations, e.Iteration)
}

// ErrNoModel is returned when Config.Model is nil.
var ErrNoModel = errors.New("agent: no model configured")

// Run executes the agent loop described by cfg.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Model == nil {
		return nil, ErrNoModel
	}
	if cfg.MaxIterations < 0 {
		return nil, fmt.Errorf("agent: max iterations must not be negative, got %d", cfg.MaxIterations)
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.MaxToolCallsPerIteration <= 0 {
		cfg.MaxToolCallsPerIteration = DefaultMaxToolCallsPerIteration
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NoOpLogger{}
	}

	runID := core.NewID()
	log := logging.With(cfg.Logger, "run_id", runID)

	exec := &executor{
		invoker: tool.NewInvoker(func(o *tool.InvokerOptions) {
			o.Timeout = cfg.ToolTimeout
			o.Logger = log
		}),
		registry:    cfg.Tools,
		maxCalls:    cfg.MaxToolCallsPerIteration,
		concurrent:  cfg.ConcurrentTools,
		maxParallel: cfg.MaxParallelTools,
	}

	messages := []core.Message{
		core.NewTextMessage(core.RoleSystem, cfg.SystemPrompt),
		core.NewTextMessage(core.RoleUser, cfg.Input),
	}
	definitions := cfg.Tools.Definitions()

	var (
		steps []Step
		total core.Usage
	)

	log.Info("agent.run.start", "model", cfg.Model.Info().Name, "tools", cfg.Tools.Len(), "max_iterations", cfg.MaxIterations)

	for i := 0; i < cfg.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("agent run canceled before iteration %d: %w", i, err)
		}

		log.Debug("agent.iteration.start", "iteration", i, "messages", len(messages))

		resp, err := cfg.Model.Generate(ctx, model.Request{
			Messages: messages,
			Tools:    definitions,
		})
		if err != nil {
			return nil, fmt.Errorf("model call failed at iteration %d: %w", i, err)
		}
		if resp == nil {
			resp = &model.Response{}
		}

		total = total.Add(resp.Usage)

		log.Debug("agent.model.response", "iteration", i, "tool_calls", len(resp.ToolCalls), "finish_reason", resp.FinishReason)

		if len(resp.ToolCalls) == 0 {
			step := Step{Iteration: i, Content: resp.Text, Usage: resp.Usage}
			steps = append(steps, step)
			messages = append(messages, core.NewTextMessage(core.RoleAssistant, resp.Text))
			if cfg.OnStep != nil {
				cfg.OnStep(step)
			}

			log.Info("agent.run.complete", "iterations", i+1, "total_tokens", total.TotalTokens)

			return &Result{
				Output:     resp.Text,
				Steps:      steps,
				TotalUsage: total,
				Messages:   messages,
			}, nil
		}

		calls := make([]core.ToolCall, len(resp.ToolCalls))
		for j, call := range resp.ToolCalls {
			if call.ID == "" {
				call.ID = core.NewID()
			}
			calls[j] = call
		}

		results, err := exec.execute(ctx, calls)
		if err != nil {
			return nil, fmt.Errorf("tool resolution failed at iteration %d: %w", i, err)
		}

		messages = append(messages, assistantMessage(resp.Text, calls))
		for j, call := range calls {
			messages = append(messages, toolMessage(call, results[j]))
		}

		step := Step{
			Iteration:   i,
			Content:     resp.Text,
			ToolCalls:   calls,
			ToolResults: results,
			Usage:       resp.Usage,
		}
		steps = append(steps, step)

		log.Debug("agent.tools.executed", "iteration", i, "calls", len(calls), "failed", countFailed(results))

		if cfg.OnStep != nil {
			cfg.OnStep(step)
		}
	}

	log.Warn("agent.run.exhausted", "max_iterations", cfg.MaxIterations)

	return nil, &IterationExceededError{
		MaxIterations: cfg.MaxIterations,
		Iteration:     cfg.MaxIterations - 1,
	}
}

func assistantMessage(text string, calls []core.ToolCall) core.Message {
	parts := make([]core.Part, 0, len(calls)+1)
	if text != "" {
		parts = append(parts, core.TextPart{Text: text})
	}
	for _, call := range calls {
		parts = append(parts, core.ToolCallPart{ToolCall: call})
	}
	return core.Message{Role: core.RoleAssistant, Parts: parts}
}

func toolMessage(call core.ToolCall, res tool.Result) core.Message {
	content, isError := SerializeResult(res)
	return core.Message{
		Role: core.RoleTool,
		Parts: []core.Part{core.ToolResultPart{
			CallID:  call.ID,
			Name:    call.Name,
			Content: content,
			IsError: isError,
		}},
	}
}

// SerializeResult renders a tool result as the text payload shown to the
// model. Strings pass through verbatim, failures become their error text and
// any other output is JSON encoded.
func SerializeResult(res tool.Result) (string, bool) {
	if !res.Success {
		return res.Error, true
	}

	switch out := res.Output.(type) {
	case string:
		return out, false
	case error:
		return out.Error(), true
	}

	raw, err := json.Marshal(res.Output)
	if err != nil {
		return fmt.Sprintf("%v", res.Output), false
	}
	return string(raw), false
}

func countFailed(results []tool.Result) int {
	n := 0
	for _, r := range results {
		if !r.Success {
			n++
		}
	}
	return n
}
