package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete decomposer configuration
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// AnthropicConfig controls the primary assisted decomposition provider
type AnthropicConfig struct {
	// APIKey authenticates requests. Falls back to the ANTHROPIC_API_KEY
	// environment variable when unset. An empty key marks the provider
	// unavailable; the engine skips it without a network call.
	APIKey string `mapstructure:"api_key"`
	// Model is the model identifier sent with each request
	Model string `mapstructure:"model"`
	// BaseURL overrides the API endpoint (useful for proxies and tests)
	BaseURL string `mapstructure:"base_url"`
	// MaxTokens caps the response length
	MaxTokens int `mapstructure:"max_tokens"`
}

// OpenAIConfig controls the secondary assisted decomposition provider
type OpenAIConfig struct {
	// APIKey authenticates requests. Falls back to the OPENAI_API_KEY
	// environment variable when unset.
	APIKey string `mapstructure:"api_key"`
	// Model is the model identifier sent with each request
	Model string `mapstructure:"model"`
	// BaseURL overrides the API endpoint (useful for proxies and tests)
	BaseURL string `mapstructure:"base_url"`
	// MaxTokens caps the response length
	MaxTokens int `mapstructure:"max_tokens"`
}

// EngineConfig controls decomposition behavior
type EngineConfig struct {
	// Mode selects the decomposition strategy: "assisted" tries the
	// providers before the heuristic fallback, "heuristic" skips
	// providers entirely
	Mode string `mapstructure:"mode"`
	// TimeoutSeconds bounds each provider call (default: 30)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// OutputConfig controls how plans are rendered
type OutputConfig struct {
	// Format is the default render format: "json", "yaml", "markdown", or "pretty"
	Format string `mapstructure:"format"`
}

// LoggingConfig controls structured logging behavior
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "warn")
	Level string `mapstructure:"level"`
}

// Timeout returns the per-provider timeout as a time.Duration
func (e *EngineConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Anthropic: AnthropicConfig{
			APIKey:    "",
			Model:     "claude-sonnet-4-20250514",
			BaseURL:   "https://api.anthropic.com/v1",
			MaxTokens: 2048,
		},
		OpenAI: OpenAIConfig{
			APIKey:    "",
			Model:     "gpt-4o-mini",
			BaseURL:   "https://api.openai.com/v1",
			MaxTokens: 2048,
		},
		Engine: EngineConfig{
			Mode:           "assisted",
			TimeoutSeconds: 30,
		},
		Output: OutputConfig{
			Format: "pretty",
		},
		Logging: LoggingConfig{
			Level: "warn", // CLI output stays clean unless asked for more
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Anthropic defaults
	viper.SetDefault("anthropic.api_key", defaults.Anthropic.APIKey)
	viper.SetDefault("anthropic.model", defaults.Anthropic.Model)
	viper.SetDefault("anthropic.base_url", defaults.Anthropic.BaseURL)
	viper.SetDefault("anthropic.max_tokens", defaults.Anthropic.MaxTokens)

	// OpenAI defaults
	viper.SetDefault("openai.api_key", defaults.OpenAI.APIKey)
	viper.SetDefault("openai.model", defaults.OpenAI.Model)
	viper.SetDefault("openai.base_url", defaults.OpenAI.BaseURL)
	viper.SetDefault("openai.max_tokens", defaults.OpenAI.MaxTokens)

	// Engine defaults
	viper.SetDefault("engine.mode", defaults.Engine.Mode)
	viper.SetDefault("engine.timeout_seconds", defaults.Engine.TimeoutSeconds)

	// Output defaults
	viper.SetDefault("output.format", defaults.Output.Format)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// ConfigDir returns the directory searched for the config file,
// $HOME/.config/decomposer. Falls back to the current directory when the
// home directory cannot be determined.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "decomposer")
}

// Load reads the configuration from viper into a Config struct and validates it.
// Provider API keys fall back to their conventional environment variables
// (ANTHROPIC_API_KEY, OPENAI_API_KEY) when unset in the config file.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Anthropic.APIKey == "" {
		cfg.Anthropic.APIKey = strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	}
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}
