package transcriber

import (
	"fmt"
	"os"
	"time"
)

// Config holds configuration for the transcription service.
type Config struct {
	// Timeout is the maximum duration for a single transcription job,
	// upload and polling included.
	Timeout time.Duration
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadConfig loads configuration from environment variables.
//
// Environment variables:
//   - TRANSCRIBER_TIMEOUT: transcription job timeout (default: 15m)
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Timeout: 15 * time.Minute,
	}

	if v := os.Getenv("TRANSCRIBER_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TRANSCRIBER_TIMEOUT format: %s: %w", v, err)
		}
		cfg.Timeout = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transcriber configuration: %w", err)
	}
	return cfg, nil
}
