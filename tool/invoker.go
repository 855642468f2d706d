package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/logging"
)

// DefaultTimeout bounds a single tool call when InvokerOptions.Timeout is zero.
const DefaultTimeout = 2 * time.Minute

// InvokerOptions configure an Invoker.
type InvokerOptions struct {
	// Timeout bounds one call. Zero means DefaultTimeout, negative disables it.
	// The deadline reaches the handler through its context; a handler that
	// ignores it is still waited for and its result is replaced by TIMEOUT.
	// Delegator tools are exempt, the subagent run bounds itself.
	Timeout time.Duration
	Logger  logging.Logger
}

// Invoker validates, executes and normalizes single tool calls. Every failure
// except a registry miss is folded into a failed Result so the caller can feed
// it back to the model.
type Invoker struct {
	opts InvokerOptions
}

// NewInvoker creates an Invoker.
func NewInvoker(optFns ...func(o *InvokerOptions)) *Invoker {
	opts := InvokerOptions{
		Timeout: DefaultTimeout,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Invoker{opts: opts}
}

// Execute looks up the call's tool in reg and invokes it. A missing tool is
// returned as *NotFoundError; all other failures live in the Result.
func (inv *Invoker) Execute(ctx context.Context, reg *Registry, call core.ToolCall) (Result, error) {
	b, err := reg.Lookup(call.Name)
	if err != nil {
		return Result{}, err
	}
	return inv.Invoke(ctx, b, call), nil
}

type outcome struct {
	out any
	err error
}

func callTool(t Tool, tc *core.ToolContext, input json.RawMessage, log logging.Logger) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("tool.call.panic", "panic", r, "stack", string(debug.Stack()))
			o = outcome{err: &ToolError{Tool: t.Name(), Message: fmt.Sprintf("panic: %v", r), Code: CodePanic}}
		}
	}()
	o.out, o.err = t.Call(tc, input)
	return o
}

// Invoke validates call.Input against the bound schema and runs the tool once.
func (inv *Invoker) Invoke(ctx context.Context, b *Binding, call core.ToolCall) Result {
	name := b.Tool.Name()
	log := logging.With(inv.opts.Logger, "tool", name, "call_id", call.ID)
	start := time.Now()

	log.Debug("tool.call.start")

	input, err := b.Validate(call.Input)
	if err != nil {
		log.Warn("tool.call.invalid", "error", err)
		return failure(&ToolError{Tool: name, Message: err.Error(), Code: CodeValidation, Details: err})
	}

	callCtx := ctx
	cancel := context.CancelFunc(func() {})
	if _, delegates := b.Tool.(Delegator); inv.opts.Timeout > 0 && !delegates {
		callCtx, cancel = context.WithTimeout(ctx, inv.opts.Timeout)
	}
	defer cancel()

	tc := core.NewToolContext(callCtx, call.ID, name, inv.opts.Logger)

	// The handler runs on the calling goroutine, so a call that overruns its
	// deadline still finishes before the next one starts.
	o := callTool(b.Tool, tc, input, log)
	if err := callCtx.Err(); err != nil {
		if o.err == nil {
			log.Warn("tool.call.overran", "error", err)
		}
		o = outcome{err: contextFailure(name, err)}
	}

	dur := time.Since(start)
	if o.err != nil {
		te := normalize(name, o.err)
		log.Warn("tool.call.failed", "code", te.Code, "error", te.Message, "duration_ms", dur.Milliseconds())
		return failure(te)
	}

	log.Debug("tool.call.success", "duration_ms", dur.Milliseconds())

	return success(o.out)
}

func contextFailure(name string, err error) *ToolError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ToolError{Tool: name, Message: "tool call timed out", Code: CodeTimeout, Details: err}
	}
	return &ToolError{Tool: name, Message: "tool call canceled", Code: CodeCanceled, Details: err}
}

// normalize maps an arbitrary handler error onto a *ToolError.
func normalize(name string, err error) *ToolError {
	var te *ToolError
	if errors.As(err, &te) {
		if te.Tool != "" {
			return te
		}
		// handlers may return shared error values; never write to them
		cp := *te
		cp.Tool = name
		return &cp
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return &ToolError{Tool: name, Message: ve.Error(), Code: CodeValidation, Details: ve}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return contextFailure(name, err)
	}

	return &ToolError{Tool: name, Message: err.Error(), Code: CodeExecution, Details: err}
}

// LimitExceeded produces the failed Result recorded for a call that was not
// executed because the per-iteration call cap was reached.
func LimitExceeded(call core.ToolCall, limit int) Result {
	return failure(&ToolError{
		Tool:    call.Name,
		Message: fmt.Sprintf("per-iteration tool call limit of %d exceeded; call not executed", limit),
		Code:    CodeCallLimitExceeded,
	})
}
