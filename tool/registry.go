package tool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hupe1980/agentkit/model"
)

var toolNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// Binding pairs a registered tool with its resolved schema.
type Binding struct {
	Tool   Tool
	schema *jsonschema.Resolved
}

// Validate checks raw input against the tool's schema and returns the input
// to pass to Call. Empty input is treated as an empty object.
func (b *Binding) Validate(raw json.RawMessage) (json.RawMessage, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, &ValidationError{Tool: b.Tool.Name(), Detail: fmt.Sprintf("input is not valid JSON: %v", err)}
	}

	if b.schema != nil {
		if err := b.schema.Validate(instance); err != nil {
			return nil, &ValidationError{Tool: b.Tool.Name(), Detail: err.Error()}
		}
	}

	return raw, nil
}

// Registry is an immutable name → tool mapping. Derived registries (Filter,
// Without, With) are new values; the receiver is never mutated, so a registry
// may be shared freely across runs and goroutines.
type Registry struct {
	bindings map[string]*Binding
	names    []string // sorted
}

// NewRegistry builds a registry, rejecting duplicate or malformed names,
// misuse of DelegationPrefix and unresolvable schemas.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{bindings: make(map[string]*Binding, len(tools))}

	for _, t := range tools {
		if t == nil {
			return nil, fmt.Errorf("nil tool")
		}
		name := t.Name()
		if !toolNamePattern.MatchString(name) {
			return nil, fmt.Errorf("invalid tool name %q: must match %s", name, toolNamePattern)
		}
		if _, dup := r.bindings[name]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", name)
		}
		if strings.HasPrefix(name, DelegationPrefix) {
			if _, ok := t.(Delegator); !ok {
				return nil, fmt.Errorf("tool name %q uses reserved prefix %q", name, DelegationPrefix)
			}
		}

		b := &Binding{Tool: t}
		if schema := t.Parameters(); schema != nil {
			resolved, err := schema.Resolve(nil)
			if err != nil {
				return nil, fmt.Errorf("resolve schema for tool %q: %w", name, err)
			}
			b.schema = resolved
		}

		r.bindings[name] = b
		r.names = append(r.names, name)
	}

	sort.Strings(r.names)

	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(tools ...Tool) *Registry {
	r, err := NewRegistry(tools...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup resolves a tool by name. A miss yields *NotFoundError.
func (r *Registry) Lookup(name string) (*Binding, error) {
	if r != nil {
		if b, ok := r.bindings[name]; ok {
			return b, nil
		}
	}
	return nil, &NotFoundError{Name: name, Available: r.Names()}
}

// Has reports whether a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.bindings[name]
	return ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.names)
}

// Tools returns the registered tools sorted by name.
func (r *Registry) Tools() []Tool {
	if r == nil {
		return nil
	}
	out := make([]Tool, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.bindings[n].Tool)
	}
	return out
}

// Filter returns a new registry holding the tools for which keep returns true.
func (r *Registry) Filter(keep func(Tool) bool) *Registry {
	out := &Registry{bindings: map[string]*Binding{}}
	if r == nil {
		return out
	}
	for _, n := range r.names {
		b := r.bindings[n]
		if keep(b.Tool) {
			out.bindings[n] = b
			out.names = append(out.names, n)
		}
	}
	return out
}

// Without returns a new registry lacking the named tools.
func (r *Registry) Without(names ...string) *Registry {
	return r.Filter(func(t Tool) bool { return !slices.Contains(names, t.Name()) })
}

// With returns a new registry holding the receiver's tools plus extra.
func (r *Registry) With(extra ...Tool) (*Registry, error) {
	return NewRegistry(append(r.Tools(), extra...)...)
}

// Definitions renders the registry as model tool descriptors, sorted by name.
func (r *Registry) Definitions() []model.ToolDefinition {
	if r == nil {
		return nil
	}
	defs := make([]model.ToolDefinition, 0, len(r.names))
	for _, n := range r.names {
		t := r.bindings[n].Tool
		defs = append(defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}
