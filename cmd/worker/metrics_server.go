package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blogsmith/internal/infra/storage"
	"blogsmith/pkg/config"
)

type livenessResponse struct {
	Status string `json:"status"`
}

type storageHealth struct {
	Healthy bool   `json:"healthy"`
	Dir     string `json:"dir"`
	Error   string `json:"error,omitempty"`
}

// startMetricsServer serves /metrics plus two probes (/health and
// /health/storage) on METRICS_PORT, default 9090. The server stops
// when ctx is cancelled.
func startMetricsServer(ctx context.Context, logger *slog.Logger, store *storage.AudioStore) *http.Server {
	port := metricsPort()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", handleLiveness)
	mux.HandleFunc("/health/storage", handleStorageHealth(store))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("metrics server starting", slog.Int("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", slog.Any("error", err))
			return
		}
		logger.Info("metrics server stopped")
	}()

	return server
}

func metricsPort() int {
	port := config.GetEnvInt("METRICS_PORT", 9090)
	if port <= 0 || port > 65535 {
		return 9090
	}
	return port
}

func handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(livenessResponse{Status: "healthy"})
}

// handleStorageHealth reports 503 when the audio directory is gone.
// ディレクトリ消失は大抵ボリュームマウントの問題
func handleStorageHealth(store *storage.AudioStore) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := storageHealth{Healthy: true, Dir: store.Dir()}
		code := http.StatusOK

		if err := store.Check(); err != nil {
			resp.Healthy = false
			resp.Error = err.Error()
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
