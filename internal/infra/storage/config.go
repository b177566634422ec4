package storage

import (
	"fmt"
	"os"
	"time"

	"blogsmith/pkg/config"
)

// Config holds configuration for the audio file store.
type Config struct {
	// Dir is the directory audio files live in. Loaded from AUDIO_DIR.
	// Default: "downloads".
	Dir string

	// Retention is how long audio files are kept before the sweeper
	// removes them. Loaded from AUDIO_RETENTION. Default: 24h.
	Retention time.Duration
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("audio dir cannot be empty")
	}
	if c.Retention <= 0 {
		return fmt.Errorf("retention must be positive, got %v", c.Retention)
	}
	return nil
}

// LoadConfig loads configuration from environment variables.
//
// Environment variables:
//   - AUDIO_DIR: audio directory (default: "downloads")
//   - AUDIO_RETENTION: how long to keep audio files (default: 24h)
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Dir:       "downloads",
		Retention: 24 * time.Hour,
	}

	cfg.Dir = config.GetEnvString("AUDIO_DIR", cfg.Dir)
	if v := os.Getenv("AUDIO_RETENTION"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AUDIO_RETENTION format: %s: %w", v, err)
		}
		cfg.Retention = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage configuration: %w", err)
	}
	return cfg, nil
}
