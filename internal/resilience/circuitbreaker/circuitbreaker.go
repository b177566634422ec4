// Package circuitbreaker guards the external hops of the generate
// pipeline with sony/gobreaker. Each upstream (Claude, OpenAI,
// AssemblyAI, yt-dlp) gets its own breaker and preset.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the settings for one breaker.
type Config struct {
	// Name identifies the breaker in logs.
	Name string

	// MaxRequests allowed through while half-open.
	MaxRequests uint32

	// Interval resets the closed-state counters.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the breaker
	// (0.6 = 60%).
	FailureThreshold float64

	// MinRequests must be seen before the ratio is evaluated.
	MinRequests uint32
}

// DefaultConfig returns the baseline preset: trip at 60% failures over
// at least 5 requests, probe again after a minute.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// ClaudeAPIConfig is the preset for Claude article generation calls.
func ClaudeAPIConfig() Config {
	return DefaultConfig("claude-api")
}

// OpenAIAPIConfig is the preset for OpenAI article generation calls.
func OpenAIAPIConfig() Config {
	return DefaultConfig("openai-api")
}

// AssemblyAIConfig is the preset for transcription calls. Jobs run for
// minutes, so the breaker tolerates a higher failure ratio and stays
// open longer before probing.
func AssemblyAIConfig() Config {
	cfg := DefaultConfig("assemblyai-api")
	cfg.MaxRequests = 2
	cfg.Interval = 60 * time.Second
	cfg.Timeout = 120 * time.Second
	cfg.FailureThreshold = 0.7
	cfg.MinRequests = 4
	return cfg
}

// MediaToolConfig is the preset for yt-dlp invocations. Repeated
// failures usually mean the tool is broken or the site changed, so
// stay open for five minutes before probing again.
func MediaToolConfig() Config {
	cfg := DefaultConfig("media-tool")
	cfg.MaxRequests = 2
	cfg.Interval = 60 * time.Second
	cfg.Timeout = 300 * time.Second
	cfg.FailureThreshold = 0.8
	return cfg
}

// CircuitBreaker wraps gobreaker with state-change logging.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New builds a breaker from cfg.
func New(cfg Config) *CircuitBreaker {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:          cfg.Name,
		MaxRequests:   cfg.MaxRequests,
		Interval:      cfg.Interval,
		Timeout:       cfg.Timeout,
		ReadyToTrip:   tripAbove(cfg.FailureThreshold, cfg.MinRequests),
		OnStateChange: logStateChange,
	})
	return &CircuitBreaker{breaker: cb, name: cfg.Name}
}

// tripAbove trips once the failure ratio reaches threshold, but only
// after minRequests samples have been seen.
func tripAbove(threshold float64, minRequests uint32) func(gobreaker.Counts) bool {
	return func(counts gobreaker.Counts) bool {
		if counts.Requests < minRequests {
			return false
		}
		ratio := float64(counts.TotalFailures) / float64(counts.Requests)
		return ratio >= threshold
	}
}

func logStateChange(name string, from, to gobreaker.State) {
	slog.Warn("circuit breaker state transition",
		slog.String("circuit", name),
		slog.String("from", from.String()),
		slog.String("to", to.String()))
}

// Execute runs fn through the breaker. While open it returns
// gobreaker.ErrOpenState without calling fn.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

func (cb *CircuitBreaker) Name() string {
	return cb.name
}

func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
