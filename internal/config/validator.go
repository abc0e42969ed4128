package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "engine.timeout_seconds")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidModes returns the list of valid engine modes
func ValidModes() []string {
	return []string{"assisted", "heuristic"}
}

// ValidOutputFormats returns the list of valid render formats
func ValidOutputFormats() []string {
	return []string{"json", "yaml", "markdown", "pretty"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateProviders()...)
	errors = append(errors, c.validateEngine()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateProviders validates both provider configs
func (c *Config) validateProviders() []ValidationError {
	var errors []ValidationError

	if c.Anthropic.MaxTokens < 0 {
		errors = append(errors, ValidationError{
			Field:   "anthropic.max_tokens",
			Value:   c.Anthropic.MaxTokens,
			Message: "must be non-negative",
		})
	}
	if c.OpenAI.MaxTokens < 0 {
		errors = append(errors, ValidationError{
			Field:   "openai.max_tokens",
			Value:   c.OpenAI.MaxTokens,
			Message: "must be non-negative",
		})
	}
	if c.Anthropic.BaseURL != "" && !strings.HasPrefix(c.Anthropic.BaseURL, "http") {
		errors = append(errors, ValidationError{
			Field:   "anthropic.base_url",
			Value:   c.Anthropic.BaseURL,
			Message: "must be an http(s) URL",
		})
	}
	if c.OpenAI.BaseURL != "" && !strings.HasPrefix(c.OpenAI.BaseURL, "http") {
		errors = append(errors, ValidationError{
			Field:   "openai.base_url",
			Value:   c.OpenAI.BaseURL,
			Message: "must be an http(s) URL",
		})
	}

	return errors
}

// validateEngine validates the EngineConfig
func (c *Config) validateEngine() []ValidationError {
	var errors []ValidationError

	if c.Engine.Mode != "" && !slices.Contains(ValidModes(), c.Engine.Mode) {
		errors = append(errors, ValidationError{
			Field:   "engine.mode",
			Value:   c.Engine.Mode,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidModes(), ", ")),
		})
	}
	if c.Engine.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "engine.timeout_seconds",
			Value:   c.Engine.TimeoutSeconds,
			Message: "must be positive",
		})
	}

	return errors
}

// validateOutput validates the OutputConfig
func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if c.Output.Format != "" && !slices.Contains(ValidOutputFormats(), c.Output.Format) {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidOutputFormats(), ", ")),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
