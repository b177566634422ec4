package worker

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"blogsmith/pkg/config"
)

// WorkerConfig holds the configuration for the audio sweep worker.
// It controls the cron schedule, timezone, per-run timeout and the
// health check port.
//
// All fields have defaults and validation rules so the worker can
// start safely even with missing or invalid configuration.
type WorkerConfig struct {
	// SweepSchedule is the cron expression for sweep scheduling.
	// Format: "minute hour day month weekday"
	// Example: "0 * * * *" (every hour)
	// Default: "0 * * * *"
	SweepSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Example: "Asia/Tokyo", "UTC"
	// Default: "Asia/Tokyo"
	Timezone string

	// SweepTimeout is the maximum duration of a single sweep run.
	// After this timeout the run is cancelled.
	// Default: 5 minutes
	SweepTimeout time.Duration

	// HealthPort is the port for the health check HTTP server.
	// Range: 1024-65535
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with default values.
// An hourly sweep keeps the audio directory small without hammering
// the filesystem, and 9091 is the usual exporter sidecar port.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		SweepSchedule: "0 * * * *",
		Timezone:      "Asia/Tokyo",
		SweepTimeout:  5 * time.Minute,
		HealthPort:    9091,
	}
}

// validateSchedule checks the cron expression with the same parser the
// scheduler itself uses, so anything accepted here is runnable.
func validateSchedule(expr string) error {
	if expr == "" {
		return fmt.Errorf("schedule cannot be empty")
	}
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

// validateTimezone checks the IANA timezone name.
func validateTimezone(name string) error {
	if name == "" {
		return fmt.Errorf("timezone cannot be empty")
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return nil
}

// validatePort checks that the port avoids the privileged range.
func validatePort(port int) error {
	if port < 1024 || port > 65535 {
		return fmt.Errorf("port must be between 1024 and 65535, got %d", port)
	}
	return nil
}

// Validate checks the configuration and aggregates all field errors.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := validateSchedule(c.SweepSchedule); err != nil {
		errs = append(errs, fmt.Errorf("sweep schedule: %w", err))
	}
	if err := validateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.SweepTimeout); err != nil {
		errs = append(errs, fmt.Errorf("sweep timeout: %w", err))
	}
	if err := validatePort(c.HealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration from environment
// variables with a fail-open strategy: any invalid value falls back to
// its default, logs a warning and bumps the fallback metrics. It never
// returns an error; the worker always gets a runnable configuration.
//
// Environment variables:
//   - AUDIO_SWEEP_SCHEDULE: Cron expression (default: "0 * * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "Asia/Tokyo")
//   - SWEEP_TIMEOUT: Duration string, e.g. "5m" (default: 5 minutes)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	fallback := func(field, envKey, raw string, err error) {
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field, "default")
		logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("env_key", envKey),
			slog.String("invalid_value", raw),
			slog.String("error", err.Error()))
	}

	if raw := os.Getenv("AUDIO_SWEEP_SCHEDULE"); raw != "" {
		if err := validateSchedule(raw); err != nil {
			fallback("SweepSchedule", "AUDIO_SWEEP_SCHEDULE", raw, err)
		} else {
			cfg.SweepSchedule = raw
		}
	}

	if raw := os.Getenv("WORKER_TIMEZONE"); raw != "" {
		if err := validateTimezone(raw); err != nil {
			fallback("Timezone", "WORKER_TIMEZONE", raw, err)
		} else {
			cfg.Timezone = raw
		}
	}

	if raw := os.Getenv("SWEEP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err == nil {
			// 10s-1h keeps a typo like "500h" from wedging the scheduler
			err = config.ValidateDurationRange(d, 10*time.Second, time.Hour)
		}
		if err != nil {
			fallback("SweepTimeout", "SWEEP_TIMEOUT", raw, err)
		} else {
			cfg.SweepTimeout = d
		}
	}

	if raw := os.Getenv("WORKER_HEALTH_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err == nil {
			err = validatePort(port)
		}
		if err != nil {
			fallback("HealthPort", "WORKER_HEALTH_PORT", raw, err)
		} else {
			cfg.HealthPort = port
		}
	}

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
