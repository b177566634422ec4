package transcriber

import (
	"context"
	"fmt"

	"blogsmith/internal/domain/entity"
)

// Downloader downloads the audio track of a video and returns the file path.
// Implemented by the yt-dlp client in the video package.
type Downloader interface {
	DownloadAudio(ctx context.Context, link string) (string, error)
}

// SpeechToText converts an audio file to text.
type SpeechToText interface {
	TranscribeFile(ctx context.Context, path string) (string, error)
}

// Service turns a video link into a transcript: download first, then transcribe.
type Service struct {
	downloader Downloader
	speech     SpeechToText
}

// NewService creates a transcription service from a downloader and a speech client.
func NewService(downloader Downloader, speech SpeechToText) *Service {
	return &Service{downloader: downloader, speech: speech}
}

// Transcribe downloads the audio for link and returns its transcript.
// This is the failure boundary for the download step: yt-dlp errors
// surface as ErrTranscriptionFailed, not as raw tool output.
func (s *Service) Transcribe(ctx context.Context, link string) (string, error) {
	path, err := s.downloader.DownloadAudio(ctx, link)
	if err != nil {
		return "", fmt.Errorf("%w: download audio: %v", entity.ErrTranscriptionFailed, err)
	}
	transcript, err := s.speech.TranscribeFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return transcript, nil
}
