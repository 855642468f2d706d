// Package subagent packages a fully configured agent run as a single tool a
// parent agent can delegate to.
//
// A Definition is validated once by Define and is inert until run. At run
// time the subagent's tools and model are resolved against the parent's
// Context:
//
//   - explicit Definition.Tools win verbatim
//   - otherwise the parent registry is inherited minus DisallowedTools and
//     minus every delegation tool, so nesting never exceeds one level
//   - Definition.Model wins over the parent model; having neither is a
//     *ResolutionError raised before any model call
//
// NewTool exposes a definition to the parent as a tool named
// "subagent_<name>" taking a single instruction and returning only the
// subagent's final answer; its intermediate steps never reach the parent's
// history.
package subagent
