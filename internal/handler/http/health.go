// Package http provides HTTP handlers and middleware for the web application.
// It includes request handlers for blog generation and browsing, health check
// endpoints, metrics collection, and various middleware components.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthResponse is the body served by /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is one entry in the checks map. Status is "healthy",
// "degraded", or "unhealthy".
type CheckStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// AudioDirChecker reports whether the audio working directory is writable.
type AudioDirChecker interface {
	Check() error
	Dir() string
}

// HealthHandler serves /health with per-dependency check results.
type HealthHandler struct {
	DB      *sql.DB
	Version string

	// Audio storage check (optional)
	AudioDir AudioDirChecker
}

// ServeHTTP returns 200 while the database is reachable, 503 otherwise.
// Degraded checks (pool pressure, missing audio dir) stay at 200.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"database": h.checkDatabase(ctx),
	}
	// 音声作業ディレクトリ。欠けていても生成が止まるだけで閲覧系は動き続ける
	if h.AudioDir != nil {
		checks["audio_storage"] = h.checkAudioDir()
	}

	overall, code := statusHealthy, http.StatusOK
	for _, c := range checks {
		if c.Status == statusUnhealthy {
			overall, code = statusUnhealthy, http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(HealthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
	if err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

// checkDatabase pings the database and reports pool statistics. Pool
// pressure is only degraded; the handler keeps answering reads until
// the ping itself fails.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.DB == nil {
		return CheckStatus{Status: statusUnhealthy, Message: "not configured"}
	}
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: statusUnhealthy, Message: err.Error()}
	}

	stats := h.DB.Stats()
	details := map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_idle_time_closed": stats.MaxIdleTimeClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	}

	// MaxOpenConnections == 0 は無制限。利用率が計算できない
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  statusDegraded,
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{
			Status:  statusDegraded,
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}

	return CheckStatus{Status: statusHealthy, Details: details}
}

func (h *HealthHandler) checkAudioDir() CheckStatus {
	details := map[string]interface{}{"dir": h.AudioDir.Dir()}
	if err := h.AudioDir.Check(); err != nil {
		return CheckStatus{Status: statusDegraded, Message: err.Error(), Details: details}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

// ReadyHandler serves the readiness probe. Ready means the database
// answers a ping within 2 seconds.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeProbe(w, "ready")
}

// LiveHandler serves the liveness probe. It answers 200 whenever the
// process can still run a handler.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeProbe(w, "alive")
}

func writeProbe(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Error("probe: failed to write response", slog.Any("error", err))
	}
}
