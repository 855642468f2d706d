// Package builtin provides small self-contained tools exposed by the CLI.
package builtin

import (
	"fmt"
	"sort"
	"time"

	"github.com/hupe1980/agentkit/tool"
)

// Options configure the builtin tool set.
type Options struct {
	// Now is the clock used by the clock tool.
	Now func() time.Time
}

// constructors maps builtin names to their constructors.
var constructors = map[string]func(Options) tool.Tool{
	"calculator": func(Options) tool.Tool { return Calculator() },
	"clock":      func(o Options) tool.Tool { return Clock(o.Now) },
	"text_stats": func(Options) tool.Tool { return TextStats() },
}

// Names lists the available builtin tools.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Select returns the named builtin tools. An empty list selects all of them.
func Select(names []string, optFns ...func(o *Options)) ([]tool.Tool, error) {
	opts := Options{Now: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}

	if len(names) == 0 {
		names = Names()
	}

	tools := make([]tool.Tool, 0, len(names))
	for _, n := range names {
		ctor, ok := constructors[n]
		if !ok {
			return nil, fmt.Errorf("unknown builtin tool %q (available: %v)", n, Names())
		}
		tools = append(tools, ctor(opts))
	}
	return tools, nil
}
