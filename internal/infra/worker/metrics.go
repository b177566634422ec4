package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the audio sweep worker.
// It covers configuration loading (fallback tracking) and sweep run
// execution.
//
// Configuration metrics:
//   - worker_config_load_timestamp: Unix timestamp of last configuration load
//   - worker_config_validation_errors_total: Total validation errors by field
//   - worker_config_fallbacks_total: Total fallbacks applied by field
//   - worker_config_fallback_active: 1 if any fallback is active, 0 otherwise
//
// Sweep metrics:
//   - worker_sweep_runs_total: Total sweep runs by status (success/failure)
//   - worker_sweep_duration_seconds: Duration histogram of sweep runs
//   - worker_sweep_files_removed_total: Total audio files removed
//   - worker_sweep_last_success_timestamp: Unix timestamp of last successful run
type WorkerMetrics struct {
	ConfigLoadTimestamp         prometheus.Gauge
	ConfigValidationErrorsTotal *prometheus.CounterVec
	ConfigFallbacksTotal        *prometheus.CounterVec
	ConfigFallbackActive        prometheus.Gauge

	SweepRunsTotal            *prometheus.CounterVec
	SweepDurationSeconds      prometheus.Histogram
	SweepFilesRemovedTotal    prometheus.Counter
	SweepLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates a WorkerMetrics instance with all metrics
// initialized and registered with the default registry via promauto.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigLoadTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_config_load_timestamp",
			Help: "Unix timestamp of the last configuration load",
		}),

		ConfigValidationErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_config_validation_errors_total",
			Help: "Total number of configuration validation errors by field",
		}, []string{"field"}),

		ConfigFallbacksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_config_fallbacks_total",
			Help: "Total number of configuration fallbacks applied by field and source",
		}, []string{"field", "source"}),

		ConfigFallbackActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_config_fallback_active",
			Help: "1 if any configuration fallback is currently active, 0 otherwise",
		}),

		SweepRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_sweep_runs_total",
			Help: "Total number of audio sweep runs by status (success/failure)",
		}, []string{"status"}),

		SweepDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name: "worker_sweep_duration_seconds",
			Help: "Duration of audio sweep runs in seconds",
			// A sweep is a directory listing plus unlinks, so sub-second
			// is normal and anything over a minute is pathological.
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 60},
		}),

		SweepFilesRemovedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_sweep_files_removed_total",
			Help: "Total number of audio files removed across all sweep runs",
		}),

		SweepLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_sweep_last_success_timestamp",
			Help: "Unix timestamp of the last successful sweep run",
		}),
	}
}

// MustRegister is a no-op kept for API symmetry; metrics are
// auto-registered via promauto in NewWorkerMetrics.
func (m *WorkerMetrics) MustRegister() {}

// RecordJobRun increments the sweep run counter for the given status.
// Status should be "started", "success" or "failure".
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.SweepRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of a sweep run in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.SweepDurationSeconds.Observe(seconds)
}

// RecordFilesRemoved adds the number of files removed by a sweep run.
func (m *WorkerMetrics) RecordFilesRemoved(count int) {
	m.SweepFilesRemovedTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.SweepLastSuccessTimestamp.SetToCurrentTime()
}

// RecordValidationError increments the validation error counter for a field.
func (m *WorkerMetrics) RecordValidationError(field string) {
	m.ConfigValidationErrorsTotal.WithLabelValues(field).Inc()
}

// RecordFallback increments the fallback counter for a field.
func (m *WorkerMetrics) RecordFallback(field, source string) {
	m.ConfigFallbacksTotal.WithLabelValues(field, source).Inc()
}

// SetFallbackActive flags whether any configuration fallback is active.
func (m *WorkerMetrics) SetFallbackActive(active bool) {
	if active {
		m.ConfigFallbackActive.Set(1)
	} else {
		m.ConfigFallbackActive.Set(0)
	}
}

// RecordLoadTimestamp records the current time as the last config load.
func (m *WorkerMetrics) RecordLoadTimestamp() {
	m.ConfigLoadTimestamp.SetToCurrentTime()
}
