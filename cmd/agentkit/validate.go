package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/agentkit/config"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/model"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration, tools and subagent definitions without calling a model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// a placeholder model keeps provider clients out of validation
			a, err := buildApp(cfg, model.NewScriptedModel(), logging.NoOpLogger{})
			if err != nil {
				return err
			}
			if _, err := a.agentConfig("", nil); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: provider=%s model=%s tools=%v\n", cfg.Model.Provider, cfg.Model.Name, a.tools.Names())
			return nil
		},
	}
}
