package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"

	"blogsmith/internal/resilience/circuitbreaker"
	"blogsmith/internal/resilience/retry"
)

// generateGuarded runs call through the breaker inside the retry loop.
// A rejected call while the breaker is open counts as a retryable-free
// failure and surfaces as a service-unavailable error.
func generateGuarded(ctx context.Context, service string, cb *circuitbreaker.CircuitBreaker, cfg retry.Config, call func() (string, error)) (string, error) {
	var article string

	err := retry.WithBackoff(ctx, cfg, func() error {
		out, err := cb.Execute(func() (interface{}, error) {
			return call()
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("generation request rejected, circuit breaker open",
					slog.String("service", service),
					slog.String("state", cb.State().String()))
				return fmt.Errorf("%s unavailable: circuit breaker open", service)
			}
			return err
		}
		article = out.(string)
		return nil
	})

	return article, err
}
