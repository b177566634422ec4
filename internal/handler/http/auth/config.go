package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds session settings.
type Config struct {
	TTL    time.Duration // Session lifetime
	Secure bool          // Secure attribute on the session cookie
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %v", c.TTL)
	}
	return nil
}

// DefaultConfig returns the default session settings.
func DefaultConfig() Config {
	return Config{
		TTL:    24 * time.Hour,
		Secure: false,
	}
}

// LoadConfig loads session settings from environment variables.
//
// Environment variables:
//   - SESSION_TTL: session lifetime (default: 24h)
//   - COOKIE_SECURE: set the Secure cookie attribute (default: false)
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.TTL = d
	}

	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
		}
		cfg.Secure = b
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
