// Package core provides the foundational domain types shared by the agent
// loop, the tool invoker and the subagent layer:
//
//   - Message / Part (the append-only conversation timeline)
//   - ToolCall (a model-emitted request to run a named tool)
//   - Usage (token accounting per model call and per run)
//   - ToolContext (scoped execution surface handed to tool handlers)
//
// The package has no knowledge of providers, registries or loops. It exists
// so that the model, tool and agent packages can exchange values without
// import cycles.
package core
