package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// GetEnvString returns the environment variable named key, or
// defaultValue when unset or empty.
func GetEnvString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvInt returns key parsed as an integer. Unset or unparseable
// values fall back to defaultValue; the latter logs a warning.
func GetEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		warnBadValue("integer", key, raw, strconv.Itoa(defaultValue), err)
		return defaultValue
	}
	return v
}

// GetEnvDuration returns key parsed with time.ParseDuration ("30s",
// "1h30m"). Unset or unparseable values fall back to defaultValue; the
// latter logs a warning.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		warnBadValue("duration", key, raw, defaultValue.String(), err)
		return defaultValue
	}
	return v
}

func warnBadValue(kind, key, raw, fallback string, err error) {
	slog.Warn("invalid "+kind+" value for environment variable, using default",
		slog.String("key", key),
		slog.String("value", raw),
		slog.String("default", fallback),
		slog.String("error", err.Error()))
}
