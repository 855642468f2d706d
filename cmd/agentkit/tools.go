package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/agentkit/internal/builtin"
)

func newToolsCmd() *cobra.Command {
	var showSchema bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the builtin tools",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tools, err := builtin.Select(nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range tools {
				fmt.Fprintf(out, "%-12s %s\n", t.Name(), t.Description())
				if showSchema {
					raw, err := json.MarshalIndent(t.Parameters(), "  ", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "  %s\n", raw)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSchema, "schema", false, "Print each tool's input schema")

	return cmd
}
