// Package agent implements the agent loop: a bounded, multi-turn conversation
// between a model and a registry of tools that runs until the model answers
// without requesting tools or the iteration budget is exhausted.
//
// Execution model:
//   - Run seeds the history with the system prompt and the user input
//   - Each iteration sends the full history plus tool definitions to the model
//   - A response without tool calls ends the run successfully
//   - Tool calls are executed in emitted order (sequentially unless
//     Config.ConcurrentTools is set) and their results appended in the same
//     order before the next iteration
//   - Exhausting MaxIterations fails with *IterationExceededError
//
// Tool failures never abort a run; they are fed back to the model as error
// tool results. Only an unknown tool name (*tool.NotFoundError), a model
// error, cancellation or budget exhaustion surface to the caller.
//
// A run holds no shared mutable state; concurrent runs over the same model
// and registry are independent.
package agent
