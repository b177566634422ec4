// Package storage manages the on-disk audio working directory.
// Audio files are an intermediate artifact of the generation pipeline and
// are swept after a retention period.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// AudioStore provides access to the audio working directory.
type AudioStore struct {
	dir string
}

// NewAudioStore creates an audio store rooted at dir, creating it if needed.
func NewAudioStore(dir string) (*AudioStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	return &AudioStore{dir: dir}, nil
}

// Dir returns the root of the audio working directory.
func (s *AudioStore) Dir() string {
	return s.dir
}

// Check reports whether the audio directory exists and is a directory.
func (s *AudioStore) Check() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("audio dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("audio dir: %s is not a directory", s.dir)
	}
	return nil
}

// Path returns the path of the audio file for a video id.
func (s *AudioStore) Path(videoID string) string {
	return filepath.Join(s.dir, videoID+".mp3")
}

// Remove deletes the audio file at path. Missing files are not an error,
// the sweeper may have gotten there first.
func (s *AudioStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove audio file: %w", err)
	}
	return nil
}
