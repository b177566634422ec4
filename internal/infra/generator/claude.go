package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"blogsmith/internal/domain/entity"
	"blogsmith/internal/resilience/circuitbreaker"
	"blogsmith/internal/resilience/retry"
	"blogsmith/internal/utils/text"
)

// Claude generates articles through Anthropic's Messages API, guarded
// by a circuit breaker and retries.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          *Config
	metricsRecorder ArticleMetricsRecorder
}

// NewClaude builds the Claude generator with its breaker, retry preset,
// and metrics recorder wired in.
func NewClaude(apiKey string, cfg *Config) *Claude {
	slog.Info("Initialized Claude article generator",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:     retry.AIAPIConfig(),
		config:          cfg,
		metricsRecorder: NewPrometheusArticleMetrics(),
	}
}

// Generate turns transcript into a blog article.
func (c *Claude) Generate(ctx context.Context, transcript string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	article, err := generateGuarded(ctx, "claude api", c.circuitBreaker, c.retryConfig, func() (string, error) {
		return c.callMessages(ctx, transcript)
	})
	if err != nil {
		c.metricsRecorder.RecordFailure()
		return "", fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err)
	}
	return article, nil
}

// callMessages is one bare API call; the guards live in Generate.
func (c *Claude) callMessages(ctx context.Context, transcript string) (string, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting article generation",
		slog.String("request_id", requestID),
		slog.Int("transcript_length", text.CountRunes(transcript)),
		slog.String("model", c.config.Model))

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildUserPrompt(transcript)),
			),
		},
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Article generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	article := strings.TrimSpace(textBlock.Text)
	if article == "" {
		return "", fmt.Errorf("claude api returned empty article")
	}

	length := text.CountRunes(article)
	slog.InfoContext(ctx, "Article generation completed",
		slog.String("request_id", requestID),
		slog.Int("article_length", length),
		slog.Duration("duration", duration))

	c.metricsRecorder.RecordLength(length)
	c.metricsRecorder.RecordDuration(duration)
	return article, nil
}
