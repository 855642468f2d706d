// Package config loads the agentkit CLI configuration (TOML).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath        = "agentkit.toml"
	DefaultEnvPath           = ".env"
	DefaultProvider          = "openai"
	DefaultOpenAIModel       = "gpt-4o-mini"
	DefaultAnthropicModel    = "claude-3-5-sonnet-20241022"
	DefaultMaxTokens         = 4096
	DefaultTemperature       = 0.7
	DefaultMaxIterations     = 10
	DefaultToolTimeout       = "2m"
	DefaultMaxToolCalls      = 32
	DefaultMaxParallelTools  = 4
	DefaultSubagentMaxRounds = 10
)

// Config is the root CLI configuration loaded from TOML.
type Config struct {
	Log       LogConfig        `toml:"log"`
	Model     ModelConfig      `toml:"model"`
	Agent     AgentConfig      `toml:"agent"`
	Subagents []SubagentConfig `toml:"subagents"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ModelConfig selects the provider and its parameters.
type ModelConfig struct {
	Provider    string  `toml:"provider"` // openai | anthropic
	Name        string  `toml:"name"`
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Temperature float64 `toml:"temperature"`
	MaxTokens   int64   `toml:"max_tokens"`
}

// AgentConfig holds the top-level run parameters.
type AgentConfig struct {
	SystemPrompt     string            `toml:"system_prompt"`
	Vars             map[string]string `toml:"vars"`
	Tools            []string          `toml:"tools"`
	MaxIterations    int               `toml:"max_iterations"`
	ToolTimeout      string            `toml:"tool_timeout"`
	MaxToolCalls     int               `toml:"max_tool_calls"`
	ConcurrentTools  bool              `toml:"concurrent_tools"`
	MaxParallelTools int               `toml:"max_parallel_tools"`
}

// SubagentConfig declares a subagent exposed to the top-level agent.
type SubagentConfig struct {
	Name            string   `toml:"name"`
	Description     string   `toml:"description"`
	SystemPrompt    string   `toml:"system_prompt"`
	Tools           []string `toml:"tools"`
	DisallowedTools []string `toml:"disallowed_tools"`
	MaxIterations   int      `toml:"max_iterations"`
}

// ToolTimeoutDuration parses ToolTimeout. "off" or a negative duration disables the timeout.
func (c AgentConfig) ToolTimeoutDuration() (time.Duration, error) {
	if c.ToolTimeout == "off" {
		return -1, nil
	}
	d, err := time.ParseDuration(c.ToolTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid tool_timeout %q: %w", c.ToolTimeout, err)
	}
	return d, nil
}

// ResolveAPIKey returns the configured key or the provider's environment variable.
func (c ModelConfig) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch c.Provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// Load reads and parses the TOML config file at path and applies default values for missing fields.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Model: ModelConfig{
			Provider:    DefaultProvider,
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
		Agent: AgentConfig{
			SystemPrompt:     "You are a helpful assistant. Use the available tools when they help.",
			MaxIterations:    DefaultMaxIterations,
			ToolTimeout:      DefaultToolTimeout,
			MaxToolCalls:     DefaultMaxToolCalls,
			MaxParallelTools: DefaultMaxParallelTools,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills fields whose defaults depend on other fields.
func (c *Config) applyDefaults() {
	if c.Model.Name == "" {
		switch c.Model.Provider {
		case "anthropic":
			c.Model.Name = DefaultAnthropicModel
		default:
			c.Model.Name = DefaultOpenAIModel
		}
	}
	for i := range c.Subagents {
		if c.Subagents[i].MaxIterations == 0 {
			c.Subagents[i].MaxIterations = DefaultSubagentMaxRounds
		}
	}
}

// Validate checks cross-field constraints that decoding cannot express.
func (c Config) Validate() error {
	switch c.Model.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unsupported model provider %q", c.Model.Provider)
	}
	if c.Agent.MaxIterations < 0 {
		return fmt.Errorf("agent.max_iterations must not be negative")
	}
	if _, err := c.Agent.ToolTimeoutDuration(); err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, s := range c.Subagents {
		if seen[s.Name] {
			return fmt.Errorf("duplicate subagent %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// LoadEnv loads KEY=VALUE pairs from the dotenv file at path into the process
// environment. Variables that are already set are kept. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
