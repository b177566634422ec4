package video

import (
	"fmt"
	"os"
	"time"

	"blogsmith/pkg/config"
)

// Config holds configuration for the yt-dlp based video client.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// BinaryPath is the yt-dlp executable. Loaded from YTDLP_PATH.
	// Default: "yt-dlp" (resolved via PATH).
	BinaryPath string

	// AudioDir is the directory downloaded audio files are written to.
	// Loaded from AUDIO_DIR. Default: "downloads".
	AudioDir string

	// TitleTimeout is the maximum duration for a metadata lookup.
	TitleTimeout time.Duration

	// DownloadTimeout is the maximum duration for an audio download.
	// Downloads include transcoding to mp3, so this is generous.
	DownloadTimeout time.Duration
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.BinaryPath == "" {
		return fmt.Errorf("binary path cannot be empty")
	}
	if c.AudioDir == "" {
		return fmt.Errorf("audio dir cannot be empty")
	}
	if c.TitleTimeout <= 0 {
		return fmt.Errorf("title timeout must be positive, got %v", c.TitleTimeout)
	}
	if c.DownloadTimeout <= 0 {
		return fmt.Errorf("download timeout must be positive, got %v", c.DownloadTimeout)
	}
	return nil
}

// LoadConfig loads configuration from environment variables.
//
// Environment variables:
//   - YTDLP_PATH: path to the yt-dlp binary (default: "yt-dlp")
//   - AUDIO_DIR: audio output directory (default: "downloads")
//   - VIDEO_TITLE_TIMEOUT: metadata lookup timeout (default: 30s)
//   - VIDEO_DOWNLOAD_TIMEOUT: audio download timeout (default: 10m)
func LoadConfig() (*Config, error) {
	cfg := &Config{
		BinaryPath:      "yt-dlp",
		AudioDir:        "downloads",
		TitleTimeout:    30 * time.Second,
		DownloadTimeout: 10 * time.Minute,
	}

	cfg.BinaryPath = config.GetEnvString("YTDLP_PATH", cfg.BinaryPath)
	cfg.AudioDir = config.GetEnvString("AUDIO_DIR", cfg.AudioDir)
	if v := os.Getenv("VIDEO_TITLE_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid VIDEO_TITLE_TIMEOUT format: %s: %w", v, err)
		}
		cfg.TitleTimeout = parsed
	}
	if v := os.Getenv("VIDEO_DOWNLOAD_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid VIDEO_DOWNLOAD_TIMEOUT format: %s: %w", v, err)
		}
		cfg.DownloadTimeout = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid video configuration: %w", err)
	}
	return cfg, nil
}
