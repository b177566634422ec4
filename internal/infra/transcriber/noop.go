package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"

	"blogsmith/internal/domain/entity"
)

// NoOp is a transcriber that returns a fixed transcript without calling any API.
// This is useful for development and tests when no API key is available.
type NoOp struct{}

// NewNoOp creates a new NoOp transcriber.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// TranscribeFile returns a placeholder transcript.
// The audio file must still exist so the pipeline behaves like production.
func (n *NoOp) TranscribeFile(_ context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", entity.ErrAudioNotFound, path)
		}
		return "", fmt.Errorf("stat audio file: %w", err)
	}
	return "This is a placeholder transcript.", nil
}
