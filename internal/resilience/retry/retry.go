// Package retry wraps transient-failure-prone calls with exponential
// backoff. The generate pipeline uses it around every external hop:
// yt-dlp, the transcription API, and the article generators.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Config controls attempt count and delay growth.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration

	// Multiplier grows the delay after each failed attempt.
	Multiplier float64

	// JitterFraction (0.0-1.0) adds that fraction of the delay as
	// random jitter.
	JitterFraction float64
}

// DefaultConfig returns the baseline: three attempts starting at one
// second, doubling up to thirty.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// AIAPIConfig is the preset for article generation calls. Kept moderate
// because every retry costs tokens.
func AIAPIConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialDelay = 2 * time.Second
	cfg.MaxDelay = 10 * time.Second
	return cfg
}

// TranscriptionConfig is the preset for speech-to-text calls. Longer
// delays because jobs are slow and rate limits are strict.
func TranscriptionConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialDelay = 5 * time.Second
	return cfg
}

// MediaToolConfig is the preset for yt-dlp. A single retry only:
// downloads are expensive and most failures are permanent (removed
// video, region lock).
func MediaToolConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxAttempts = 2
	cfg.InitialDelay = 3 * time.Second
	cfg.MaxDelay = 10 * time.Second
	return cfg
}

// WithBackoff runs fn until it succeeds, returns a non-retryable
// error, the attempt budget runs out, or ctx is done.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; ; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				slog.Info("retry succeeded", slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsRetryable(lastErr) {
			slog.Warn("giving up on non-retryable error",
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr))
			return lastErr
		}

		// 最終試行後は待たない
		if attempt >= cfg.MaxAttempts {
			return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
		}

		slog.Warn("attempt failed, backing off",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}

		delay = nextDelay(delay, cfg)
	}
}

// nextDelay grows the delay geometrically, caps it, then jitters.
func nextDelay(d time.Duration, cfg Config) time.Duration {
	d = time.Duration(float64(d) * cfg.Multiplier)
	if d > cfg.MaxDelay {
		d = cfg.MaxDelay
	}
	return addJitter(d, cfg.JitterFraction)
}

// IsRetryable reports whether err is transient. Context errors never
// are; network timeouts, connection-level syscall errors, and the
// retryable HTTP statuses (5xx, 429, 408) are.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	for _, errno := range []syscall.Errno{
		syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return retryableStatus(httpErr.StatusCode)
	}
	return false
}

func retryableStatus(code int) bool {
	return (code >= 500 && code < 600) ||
		code == http.StatusTooManyRequests ||
		code == http.StatusRequestTimeout
}

// HTTPError carries a status code so IsRetryable can classify
// responses from the upstream APIs.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func addJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return d
	}
	if fraction > 1.0 {
		fraction = 1.0
	}
	// #nosec G404 -- jitter does not need cryptographic randomness
	return d + time.Duration(rand.Float64()*float64(d)*fraction)
}
