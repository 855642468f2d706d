package subagent

import (
	"fmt"
	"regexp"

	"github.com/hupe1980/agentkit/agent"
	"github.com/hupe1980/agentkit/model"
	"github.com/hupe1980/agentkit/tool"
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// maxToolNameLen is the tool name limit enforced by tool.NewRegistry.
const maxToolNameLen = 64

// Definition configures a subagent.
type Definition struct {
	// Name is a kebab-case identifier such as "code-reviewer".
	Name        string
	Description string
	// SystemPrompt seeds the subagent's conversation.
	SystemPrompt string

	// Tools, when non-empty, is the subagent's complete tool set and may not
	// contain delegation tools. When empty the parent's tools are inherited.
	Tools []tool.Tool
	// DisallowedTools names inherited tools the subagent must not see.
	DisallowedTools []string

	// Model overrides the parent's model.
	Model model.Model

	// MaxIterations bounds the subagent run. Zero means agent.DefaultMaxIterations.
	MaxIterations int

	OnStep func(agent.Step)
}

// DefinitionError reports an invalid subagent definition.
type DefinitionError struct {
	Name   string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid subagent definition %q: %s", e.Name, e.Reason)
}

// Define validates def and returns it with defaults applied. It never runs anything.
func Define(def Definition) (Definition, error) {
	if !namePattern.MatchString(def.Name) {
		return Definition{}, &DefinitionError{
			Name:   def.Name,
			Reason: fmt.Sprintf("name must be kebab-case (%s)", namePattern),
		}
	}
	if n := len(ToolName(def.Name)); n > maxToolNameLen {
		return Definition{}, &DefinitionError{
			Name:   def.Name,
			Reason: fmt.Sprintf("tool name %q is %d characters, the limit is %d", ToolName(def.Name), n, maxToolNameLen),
		}
	}
	if def.Description == "" {
		return Definition{}, &DefinitionError{Name: def.Name, Reason: "description is required"}
	}
	if def.MaxIterations < 0 {
		return Definition{}, &DefinitionError{
			Name:   def.Name,
			Reason: fmt.Sprintf("max iterations must not be negative, got %d", def.MaxIterations),
		}
	}

	seen := make(map[string]struct{}, len(def.Tools))
	for _, t := range def.Tools {
		if t == nil {
			return Definition{}, &DefinitionError{Name: def.Name, Reason: "nil tool"}
		}
		if _, ok := t.(tool.Delegator); ok {
			return Definition{}, &DefinitionError{Name: def.Name, Reason: fmt.Sprintf("tool %q delegates to another subagent", t.Name())}
		}
		if _, dup := seen[t.Name()]; dup {
			return Definition{}, &DefinitionError{Name: def.Name, Reason: fmt.Sprintf("duplicate tool %q", t.Name())}
		}
		seen[t.Name()] = struct{}{}
	}

	if def.MaxIterations == 0 {
		def.MaxIterations = agent.DefaultMaxIterations
	}

	return def, nil
}

// ToolName returns the tool name under which a subagent is exposed.
func ToolName(name string) string {
	return tool.DelegationPrefix + name
}
