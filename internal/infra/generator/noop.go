package generator

import (
	"context"
	"fmt"

	"blogsmith/internal/utils/text"
)

// NoOp is a generator that wraps the transcript in a fixed template without
// calling any API. Useful for development and tests.
type NoOp struct{}

// NewNoOp creates a new NoOp generator.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Generate returns a deterministic article built from the transcript.
func (n *NoOp) Generate(_ context.Context, transcript string) (string, error) {
	const maxLength = 500
	excerpt := transcript
	if text.CountRunes(excerpt) > maxLength {
		excerpt = string([]rune(excerpt)[:maxLength]) + "..."
	}
	return fmt.Sprintf("Generated article.\n\n%s", excerpt), nil
}
