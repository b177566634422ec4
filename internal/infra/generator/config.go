package generator

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// minMaxTokens is the minimum allowed response token budget.
	minMaxTokens = 100

	// maxMaxTokens is the maximum allowed response token budget.
	maxMaxTokens = 4096
)

// Config holds configuration parameters shared by the article generators.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// Model is the API model identifier to use for generation.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	// Loaded from GENERATOR_MAX_TOKENS. Valid range: 100-4096. Default: 1000.
	MaxTokens int

	// Timeout is the maximum duration for a single generation API call.
	Timeout time.Duration
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens < minMaxTokens || c.MaxTokens > maxMaxTokens {
		return fmt.Errorf("max tokens %d outside valid range %d-%d",
			c.MaxTokens, minMaxTokens, maxMaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadConfig loads generator configuration from environment variables.
//
// Environment variables:
//   - GENERATOR_MODEL: model identifier (default: defaultModel argument)
//   - GENERATOR_MAX_TOKENS: response token budget (default: 1000, range: 100-4096)
//   - GENERATOR_TIMEOUT: API call timeout (default: 60s)
func LoadConfig(defaultModel string) (*Config, error) {
	cfg := &Config{
		Model:     defaultModel,
		MaxTokens: 1000,
		Timeout:   60 * time.Second,
	}

	if model := os.Getenv("GENERATOR_MODEL"); model != "" {
		cfg.Model = model
	}
	if v := os.Getenv("GENERATOR_MAX_TOKENS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid GENERATOR_MAX_TOKENS format: %s: %w", v, err)
		}
		cfg.MaxTokens = parsed
	}
	if v := os.Getenv("GENERATOR_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid GENERATOR_TIMEOUT format: %s: %w", v, err)
		}
		cfg.Timeout = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator configuration: %w", err)
	}
	return cfg, nil
}
