// Package video wraps the yt-dlp command line tool for metadata lookup
// and audio extraction from YouTube watch pages.
package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"blogsmith/internal/resilience/circuitbreaker"
	"blogsmith/internal/resilience/retry"
)

// Client invokes yt-dlp as a subprocess.
// It includes circuit breaker and retry logic so a broken tool or a
// throttling video site does not hammer every request.
type Client struct {
	cfg            *Config
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewClient creates a new yt-dlp client with the given configuration.
func NewClient(cfg *Config) *Client {
	slog.Info("Initialized yt-dlp client",
		slog.String("binary", cfg.BinaryPath),
		slog.String("audio_dir", cfg.AudioDir))

	return &Client{
		cfg:            cfg,
		circuitBreaker: circuitbreaker.New(circuitbreaker.MediaToolConfig()),
		retryConfig:    retry.MediaToolConfig(),
	}
}

// Title returns the video title for the given watch page link.
func (c *Client) Title(ctx context.Context, link string) (string, error) {
	out, err := c.run(ctx, c.cfg.TitleTimeout, titleArgs(link))
	if err != nil {
		return "", fmt.Errorf("Title: %w", err)
	}
	title := strings.TrimSpace(out)
	if title == "" {
		return "", errors.New("Title: empty output from yt-dlp")
	}
	return title, nil
}

// VideoID returns the stable video identifier for the given link.
// The identifier doubles as the audio file basename.
func (c *Client) VideoID(ctx context.Context, link string) (string, error) {
	out, err := c.run(ctx, c.cfg.TitleTimeout, videoIDArgs(link))
	if err != nil {
		return "", fmt.Errorf("VideoID: %w", err)
	}
	id := strings.TrimSpace(out)
	if id == "" {
		return "", errors.New("VideoID: empty output from yt-dlp")
	}
	return id, nil
}

// DownloadAudio downloads the best audio stream for the link and transcodes
// it to mp3. It returns the path of the resulting file inside AudioDir.
func (c *Client) DownloadAudio(ctx context.Context, link string) (string, error) {
	id, err := c.VideoID(ctx, link)
	if err != nil {
		return "", fmt.Errorf("DownloadAudio: %w", err)
	}

	if err := os.MkdirAll(c.cfg.AudioDir, 0o750); err != nil {
		return "", fmt.Errorf("DownloadAudio: create audio dir: %w", err)
	}

	if _, err := c.run(ctx, c.cfg.DownloadTimeout, downloadArgs(c.cfg.AudioDir, link)); err != nil {
		return "", fmt.Errorf("DownloadAudio: %w", err)
	}

	path := filepath.Join(c.cfg.AudioDir, id+".mp3")
	slog.Info("audio downloaded",
		slog.String("video_id", id),
		slog.String("path", path))
	return path, nil
}

// run executes yt-dlp through the circuit breaker with retry.
func (c *Client) run(ctx context.Context, timeout time.Duration, args []string) (string, error) {
	var output string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doRun(ctx, timeout, args)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("media tool circuit breaker open, invocation rejected",
					slog.String("service", "yt-dlp"),
					slog.String("state", c.circuitBreaker.State().String()))
			}
			return err
		}
		output = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", retryErr
	}
	return output, nil
}

// doRun performs the actual subprocess invocation without retry or circuit breaker.
func (c *Client) doRun(ctx context.Context, timeout time.Duration, args []string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// #nosec G204 -- the binary path comes from operator configuration and
	// the link is passed as a single argv element, never through a shell.
	cmd := exec.CommandContext(runCtx, c.cfg.BinaryPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("yt-dlp failed: %s: %w", firstLine(msg), err)
	}
	return stdout.String(), nil
}

// titleArgs builds the argv for a title lookup.
func titleArgs(link string) []string {
	return []string{"--no-playlist", "--print", "%(title)s", link}
}

// videoIDArgs builds the argv for a video id lookup.
func videoIDArgs(link string) []string {
	return []string{"--no-playlist", "--print", "%(id)s", link}
}

// downloadArgs builds the argv for an audio download.
// The output template keys files by video id so repeated requests for the
// same video overwrite instead of piling up.
func downloadArgs(audioDir, link string) []string {
	return []string{
		"--no-playlist",
		"-f", "bestaudio",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", filepath.Join(audioDir, "%(id)s.%(ext)s"),
		link,
	}
}

// firstLine trims multi-line tool output down to its first line for error messages.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
