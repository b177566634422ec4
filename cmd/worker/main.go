package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"blogsmith/internal/handler/http/respond"
	"blogsmith/internal/infra/storage"
	workerPkg "blogsmith/internal/infra/worker"
	"blogsmith/internal/observability/logging"
)

func main() {
	// .env は無ければ黙って環境変数のみ使う
	_ = godotenv.Load()

	logger := logging.New()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 設定読み込みはfail-open。不正値はデフォルトに落ちて起動は続く
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("sweep_schedule", workerConfig.SweepSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("sweep_timeout", workerConfig.SweepTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	storageConfig, err := storage.LoadConfig()
	if err != nil {
		logger.Error("failed to load storage configuration", slog.Any("error", err))
		os.Exit(1)
	}
	store, err := storage.NewAudioStore(storageConfig.Dir)
	if err != nil {
		logger.Error("failed to open audio store", slog.Any("error", err))
		os.Exit(1)
	}
	sweeper := storage.NewSweeper(store, storageConfig.Retention)
	logger.Info("audio sweeper initialized",
		slog.String("dir", storageConfig.Dir),
		slog.Duration("retention", storageConfig.Retention))

	startMetricsServer(ctx, logger, store)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	runScheduler(logger, sweeper, workerConfig, workerMetrics, healthServer)
}

// runScheduler registers the sweep job with cron and blocks forever.
// Readiness flips to true once the schedule is registered.
func runScheduler(logger *slog.Logger, sweeper *storage.Sweeper, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.SweepSchedule, func() {
		runSweep(logger, sweeper, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.SweepSchedule),
		slog.String("timezone", cfg.Timezone))
	select {}
}

// runSweep executes one retention sweep under the configured timeout.
func runSweep(logger *slog.Logger, sweeper *storage.Sweeper, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	start := time.Now()
	metrics.RecordJobRun("started")
	logger.Info("audio sweep started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SweepTimeout)
	defer cancel()

	removed, err := sweeper.Sweep(ctx)
	metrics.RecordJobDuration(time.Since(start).Seconds())
	if err != nil {
		// エラー文字列にDSNが混ざる可能性があるのでマスクする
		logger.Error("audio sweep failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordJobRun("failure")
		return
	}

	metrics.RecordJobRun("success")
	metrics.RecordFilesRemoved(removed)
	metrics.RecordLastSuccess()

	logger.Info("audio sweep completed",
		slog.Int("removed", removed),
		slog.Duration("duration", time.Since(start)),
	)
}
