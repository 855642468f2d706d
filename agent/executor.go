package agent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/tool"
)

// executor runs the tool calls of one model response and returns exactly one
// result per call, in call order.
type executor struct {
	invoker     *tool.Invoker
	registry    *tool.Registry
	maxCalls    int
	concurrent  bool
	maxParallel int
}

// execute resolves every call before running any of them, so an unknown tool
// aborts the batch without side effects.
func (e *executor) execute(ctx context.Context, calls []core.ToolCall) ([]tool.Result, error) {
	bindings := make([]*tool.Binding, len(calls))
	for i, call := range calls {
		b, err := e.registry.Lookup(call.Name)
		if err != nil {
			return nil, err
		}
		bindings[i] = b
	}

	results := make([]tool.Result, len(calls))

	runnable := len(calls)
	if e.maxCalls > 0 && runnable > e.maxCalls {
		runnable = e.maxCalls
		for i := runnable; i < len(calls); i++ {
			results[i] = tool.LimitExceeded(calls[i], e.maxCalls)
		}
	}

	if !e.concurrent || runnable < 2 {
		for i := 0; i < runnable; i++ {
			results[i] = e.invoker.Invoke(ctx, bindings[i], calls[i])
		}
		return results, nil
	}

	var g errgroup.Group
	if e.maxParallel > 0 {
		g.SetLimit(e.maxParallel)
	}
	for i := 0; i < runnable; i++ {
		g.Go(func() error {
			results[i] = e.invoker.Invoke(ctx, bindings[i], calls[i])
			return nil
		})
	}
	_ = g.Wait() // Invoke never fails; errors live in the results

	return results, nil
}
