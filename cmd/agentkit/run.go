package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/agentkit/agent"
	"github.com/hupe1980/agentkit/config"
	"github.com/hupe1980/agentkit/tool"
)

type runOptions struct {
	*rootOptions
	maxIterations int
	showSteps     bool
	jsonOutput    bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "run [input...]",
		Short: "Run the configured agent on an input (reads stdin when no input is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.TrimSpace(strings.Join(args, " "))
			if input == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				input = strings.TrimSpace(string(raw))
			}
			if input == "" {
				return errors.New("input is required")
			}

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if opts.maxIterations > 0 {
				cfg.Agent.MaxIterations = opts.maxIterations
			}

			a, err := buildApp(cfg, nil, newLogger(cfg.Log, os.Stderr))
			if err != nil {
				return err
			}

			return execute(cmd, a, input, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.maxIterations, "max-iterations", "n", 0, "Override agent.max_iterations")
	cmd.Flags().BoolVar(&opts.showSteps, "steps", false, "Print every step while running")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the full result as JSON")

	return cmd
}

func execute(cmd *cobra.Command, a *app, input string, opts *runOptions) error {
	out := cmd.OutOrStdout()

	var onStep func(agent.Step)
	if opts.showSteps {
		onStep = func(s agent.Step) { printStep(cmd.ErrOrStderr(), s) }
	}

	cfg, err := a.agentConfig(input, onStep)
	if err != nil {
		return err
	}

	res, err := agent.Run(cmd.Context(), cfg)
	if err != nil {
		var iterErr *agent.IterationExceededError
		var nf *tool.NotFoundError
		switch {
		case errors.As(err, &iterErr):
			return fmt.Errorf("agent gave no final answer within %d iterations: %w", iterErr.MaxIterations, err)
		case errors.As(err, &nf):
			return fmt.Errorf("model requested unknown tool %q: %w", nf.Name, err)
		}
		return err
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	_, err = fmt.Fprintln(out, res.Output)
	return err
}

func printStep(w io.Writer, s agent.Step) {
	if s.Content != "" {
		fmt.Fprintf(w, "[step %d] %s\n", s.Iteration, s.Content)
	}
	for i, call := range s.ToolCalls {
		status := "ok"
		if !s.ToolResults[i].Success {
			status = "error: " + s.ToolResults[i].Error
		}
		fmt.Fprintf(w, "[step %d] %s(%s) -> %s\n", s.Iteration, call.Name, string(call.Input), status)
	}
}
