package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
)

// sweepParallelism bounds concurrent file removals during a sweep.
const sweepParallelism = 4

// Sweeper removes audio files older than the configured retention.
type Sweeper struct {
	store     *AudioStore
	retention time.Duration
}

// NewSweeper creates a sweeper over the given store.
func NewSweeper(store *AudioStore, retention time.Duration) *Sweeper {
	return &Sweeper{store: store, retention: retention}
}

// Sweep removes expired audio files and returns how many were deleted.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.retention)

	entries, err := os.ReadDir(s.store.Dir())
	if err != nil {
		return 0, fmt.Errorf("Sweep: read audio dir: %w", err)
	}

	var expired []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".mp3" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			expired = append(expired, filepath.Join(s.store.Dir(), entry.Name()))
		}
	}

	if len(expired) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepParallelism)

	removed := make(chan string, len(expired))
	for _, path := range expired {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := s.store.Remove(path); err != nil {
				return err
			}
			removed <- path
			return nil
		})
	}

	err = g.Wait()
	close(removed)

	count := len(removed)
	slog.Info("audio sweep completed",
		slog.Int("removed", count),
		slog.Int("candidates", len(expired)),
		slog.Duration("retention", s.retention))

	if err != nil {
		return count, fmt.Errorf("Sweep: %w", err)
	}
	return count, nil
}
