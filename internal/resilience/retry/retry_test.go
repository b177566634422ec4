package retry

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

// fastConfig keeps test delays in the millisecond range.
func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   10 * time.Millisecond,
		MaxDelay:       100 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

/* ─── 1. WithBackoff ─── */

func TestWithBackoff(t *testing.T) {
	serverErr := &HTTPError{StatusCode: 502, Message: "Bad Gateway"}
	clientErr := &HTTPError{StatusCode: 400, Message: "Bad Request"}

	tests := []struct {
		name         string
		failUntil    int // この回数までの呼び出しは err を返す
		err          error
		wantAttempts int
		wantErr      bool
	}{
		{"first attempt succeeds", 0, nil, 1, false},
		{"transcription recovers on third try", 2, serverErr, 3, false},
		{"budget exhausted", 3, serverErr, 3, true},
		{"non-retryable stops immediately", 3, clientErr, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := WithBackoff(context.Background(), fastConfig(3), func() error {
				attempts++
				if attempts <= tt.failUntil {
					return tt.err
				}
				return nil
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if attempts != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", attempts, tt.wantAttempts)
			}
		})
	}
}

func TestWithBackoff_WrapsLastError(t *testing.T) {
	apiErr := &HTTPError{StatusCode: 503, Message: "Service Unavailable"}

	err := WithBackoff(context.Background(), fastConfig(2), func() error { return apiErr })

	if !errors.Is(err, apiErr) {
		t.Errorf("err = %v, want it to wrap %v", err, apiErr)
	}
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := WithBackoff(ctx, fastConfig(5), func() error {
		attempts++
		if attempts == 2 {
			// 待機中にキャンセルが入るケース
			cancel()
		}
		return &HTTPError{StatusCode: 500, Message: "Server Error"}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if attempts < 2 {
		t.Errorf("attempts = %d, want at least 2", attempts)
	}
}

/* ─── 2. 再試行判定 ─── */

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"HTTP 500", &HTTPError{StatusCode: 500}, true},
		{"HTTP 503", &HTTPError{StatusCode: 503}, true},
		{"HTTP 429 rate limit", &HTTPError{StatusCode: 429}, true},
		{"HTTP 408", &HTTPError{StatusCode: 408}, true},
		{"HTTP 400", &HTTPError{StatusCode: 400}, false},
		{"HTTP 404 removed video", &HTTPError{StatusCode: 404}, false},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"timed out", syscall.ETIMEDOUT, true},
		{"network unreachable", syscall.ENETUNREACH, true},
		{"plain error", errors.New("yt-dlp exited with code 1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHTTPError_Error(t *testing.T) {
	err := &HTTPError{StatusCode: 429, Message: "Too Many Requests"}
	if got := err.Error(); got != "HTTP 429: Too Many Requests" {
		t.Errorf("Error() = %q", got)
	}
}

/* ─── 3. プリセットとジッタ ─── */

func TestPresetConfigs(t *testing.T) {
	tests := []struct {
		name             string
		cfg              Config
		wantAttempts     int
		wantInitialDelay time.Duration
	}{
		{"default", DefaultConfig(), 3, time.Second},
		{"ai api", AIAPIConfig(), 3, 2 * time.Second},
		{"transcription", TranscriptionConfig(), 3, 5 * time.Second},
		{"media tool", MediaToolConfig(), 2, 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cfg.MaxAttempts != tt.wantAttempts {
				t.Errorf("MaxAttempts = %d, want %d", tt.cfg.MaxAttempts, tt.wantAttempts)
			}
			if tt.cfg.InitialDelay != tt.wantInitialDelay {
				t.Errorf("InitialDelay = %v, want %v", tt.cfg.InitialDelay, tt.wantInitialDelay)
			}
			if tt.cfg.Multiplier != 2.0 {
				t.Errorf("Multiplier = %v, want 2.0", tt.cfg.Multiplier)
			}
		})
	}
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond

	seen := make(map[time.Duration]bool)
	for i := 0; i < 10; i++ {
		got := addJitter(base, 0.2)
		if got < base || got > time.Duration(float64(base)*1.2) {
			t.Errorf("addJitter = %v, want within [%v, %v]", got, base, time.Duration(float64(base)*1.2))
		}
		seen[got] = true
	}
	if len(seen) < 2 {
		t.Error("jitter produced identical values across 10 runs")
	}

	if got := addJitter(base, 0); got != base {
		t.Errorf("addJitter with zero fraction = %v, want %v", got, base)
	}
}
