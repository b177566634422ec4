// Package transcriber converts downloaded audio files to text.
package transcriber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/sony/gobreaker"

	"blogsmith/internal/domain/entity"
	"blogsmith/internal/resilience/circuitbreaker"
	"blogsmith/internal/resilience/retry"
	"blogsmith/internal/utils/text"
)

// AssemblyAI transcribes audio files using the AssemblyAI speech API,
// guarded by a circuit breaker and retries.
type AssemblyAI struct {
	client          *aai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          *Config
	metricsRecorder TranscriptionMetricsRecorder
}

// NewAssemblyAI builds the transcriber with its breaker, retry preset,
// and metrics recorder wired in.
func NewAssemblyAI(apiKey string, cfg *Config) *AssemblyAI {
	slog.Info("Initialized AssemblyAI transcriber",
		slog.Duration("timeout", cfg.Timeout))

	return &AssemblyAI{
		client:          aai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.AssemblyAIConfig()),
		retryConfig:     retry.TranscriptionConfig(),
		config:          cfg,
		metricsRecorder: NewPrometheusTranscriptionMetrics(),
	}
}

// TranscribeFile uploads the audio file at path and returns its transcript.
// It returns entity.ErrAudioNotFound without touching the API when the file
// does not exist.
func (a *AssemblyAI) TranscribeFile(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", entity.ErrAudioNotFound, path)
		}
		return "", fmt.Errorf("stat audio file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	var transcript string

	err := retry.WithBackoff(ctx, a.retryConfig, func() error {
		out, err := a.circuitBreaker.Execute(func() (interface{}, error) {
			return a.submitJob(ctx, path)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("transcription request rejected, circuit breaker open",
					slog.String("service", "assemblyai-api"),
					slog.String("state", a.circuitBreaker.State().String()))
				return fmt.Errorf("assemblyai unavailable: circuit breaker open")
			}
			return err
		}
		transcript = out.(string)
		return nil
	})
	if err != nil {
		a.metricsRecorder.RecordFailure()
		return "", fmt.Errorf("%w: %v", entity.ErrTranscriptionFailed, err)
	}

	return transcript, nil
}

// submitJob is one bare API call; the guards live in TranscribeFile.
func (a *AssemblyAI) submitJob(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path is built from the video id, not user input
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer func() { _ = f.Close() }()

	slog.InfoContext(ctx, "Starting transcription",
		slog.String("path", path))

	start := time.Now()

	transcript, err := a.client.Transcripts.TranscribeFromReader(ctx, f, nil)

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Transcription failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("assemblyai api error: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		slog.ErrorContext(ctx, "Transcription job errored",
			slog.Duration("duration", duration),
			slog.String("error", msg))
		return "", fmt.Errorf("assemblyai job error: %s", msg)
	}

	if transcript.Text == nil || *transcript.Text == "" {
		return "", errors.New("assemblyai returned empty transcript")
	}

	transcriptText := *transcript.Text
	transcriptLength := text.CountRunes(transcriptText)

	slog.InfoContext(ctx, "Transcription completed",
		slog.Duration("duration", duration),
		slog.Int("transcript_length", transcriptLength))

	a.metricsRecorder.RecordDuration(duration)
	a.metricsRecorder.RecordTranscriptLength(transcriptLength)

	return transcriptText, nil
}
