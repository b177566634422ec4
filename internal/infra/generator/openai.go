// Package generator turns transcripts into blog articles using AI APIs.
// It includes adapters for OpenAI and Claude (Anthropic) with reliability patterns
// and observability through structured logging and Prometheus metrics.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"blogsmith/internal/domain/entity"
	"blogsmith/internal/resilience/circuitbreaker"
	"blogsmith/internal/resilience/retry"
	"blogsmith/internal/utils/text"
)

const (
	// systemPrompt sets the writer persona for all generators.
	systemPrompt = "You are a professional blog writer."

	// userPromptPrefix precedes the transcript in the user message.
	userPromptPrefix = "Write a blog article based on this transcript:\n\n"

	// maxTranscriptChars bounds the transcript to stay well inside the
	// gpt-3.5-turbo context window.
	maxTranscriptChars = 10000
)

// buildUserPrompt constructs the generation prompt from a transcript,
// truncating overly long input.
func buildUserPrompt(transcript string) string {
	if len(transcript) > maxTranscriptChars {
		transcript = transcript[:maxTranscriptChars] + "...\n(transcript truncated)"
	}
	return userPromptPrefix + transcript
}

// OpenAI generates articles through the chat completion API, guarded
// by a circuit breaker and retries.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          *Config
	metricsRecorder ArticleMetricsRecorder
}

// NewOpenAI builds the OpenAI generator with its breaker, retry preset,
// and metrics recorder wired in.
func NewOpenAI(apiKey string, cfg *Config) *OpenAI {
	slog.Info("Initialized OpenAI article generator",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:     retry.AIAPIConfig(),
		config:          cfg,
		metricsRecorder: NewPrometheusArticleMetrics(),
	}
}

// Generate turns transcript into a blog article.
func (o *OpenAI) Generate(ctx context.Context, transcript string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	article, err := generateGuarded(ctx, "openai api", o.circuitBreaker, o.retryConfig, func() (string, error) {
		return o.callChatCompletion(ctx, transcript)
	})
	if err != nil {
		o.metricsRecorder.RecordFailure()
		return "", fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err)
	}
	return article, nil
}

// callChatCompletion is one bare API call; the guards live in Generate.
func (o *OpenAI) callChatCompletion(ctx context.Context, transcript string) (string, error) {
	slog.InfoContext(ctx, "Starting article generation",
		slog.Int("transcript_length", text.CountRunes(transcript)),
		slog.String("model", o.config.Model))

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(transcript)},
		},
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Article generation failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}

	article := strings.TrimSpace(resp.Choices[0].Message.Content)
	if article == "" {
		return "", fmt.Errorf("openai api returned empty article")
	}

	length := text.CountRunes(article)
	slog.InfoContext(ctx, "Article generation completed",
		slog.Int("article_length", length),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordLength(length)
	o.metricsRecorder.RecordDuration(duration)
	return article, nil
}
