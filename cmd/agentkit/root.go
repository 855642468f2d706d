package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/agentkit/config"
)

type rootOptions struct {
	configPath string
	envPath    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	defaultConfig := os.Getenv("AGENTKIT_CONFIG")
	if strings.TrimSpace(defaultConfig) == "" {
		defaultConfig = config.DefaultConfigPath
	}

	cmd := &cobra.Command{
		Use:           "agentkit",
		Short:         "Run tool-using agents and subagents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return config.LoadEnv(opts.envPath)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfig, "Path to agentkit.toml")
	cmd.PersistentFlags().StringVar(&opts.envPath, "env-file", config.DefaultEnvPath, "Dotenv file with provider API keys (ignored when missing)")

	cmd.AddCommand(
		newRunCmd(opts),
		newToolsCmd(),
		newValidateCmd(opts),
	)

	return cmd
}
