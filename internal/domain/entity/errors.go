package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the domain layer.
var (
	ErrNotFound         = errors.New("entity not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrValidationFailed = errors.New("validation failed")

	// ErrAudioNotFound indicates the downloaded audio file is missing on disk.
	// The transcription step must not call the speech API when this occurs.
	ErrAudioNotFound = errors.New("audio file not found")

	// ErrTranscriptionFailed indicates the speech-to-text step produced no usable transcript.
	ErrTranscriptionFailed = errors.New("transcription failed")

	// ErrGenerationFailed indicates the article generation step produced no usable content.
	ErrGenerationFailed = errors.New("article generation failed")
)

// ValidationError carries the field that failed validation so the
// HTTP layer can decide whether the message is safe to return.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
