package transcriber

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TranscriptionMetricsRecorder receives measurements from the speech
// client. Abstracting it keeps the client testable without a
// Prometheus registry.
type TranscriptionMetricsRecorder interface {
	// RecordDuration records one transcription job's wall time.
	RecordDuration(duration time.Duration)

	// RecordTranscriptLength records a transcript's length in runes.
	RecordTranscriptLength(length int)

	// RecordFailure counts one failed transcription job.
	RecordFailure()
}

// PrometheusTranscriptionMetrics is the TranscriptionMetricsRecorder
// backed by the default Prometheus registry.
type PrometheusTranscriptionMetrics struct {
	durationHistogram prometheus.Histogram
	lengthHistogram   prometheus.Histogram
	failureCounter    prometheus.Counter
}

var (
	transcriptionMetrics     *PrometheusTranscriptionMetrics
	transcriptionMetricsOnce sync.Once
)

// registerCollector registers c, falling back to the collector already
// in the registry when construction races in tests.
func registerCollector[T prometheus.Collector](c T) T {
	err := prometheus.Register(c)
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	return c
}

// NewPrometheusTranscriptionMetrics returns the process-wide recorder.
// A singleton so repeated client construction does not collide on
// registration.
func NewPrometheusTranscriptionMetrics() *PrometheusTranscriptionMetrics {
	transcriptionMetricsOnce.Do(func() {
		transcriptionMetrics = &PrometheusTranscriptionMetrics{
			durationHistogram: registerCollector(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "audio_transcription_duration_seconds",
				Help:    "Wall time of one transcription job.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			})),
			lengthHistogram: registerCollector(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "audio_transcript_length_characters",
				Help:    "Transcript lengths in Unicode runes.",
				Buckets: []float64{500, 1000, 2500, 5000, 10000, 25000, 50000},
			})),
			failureCounter: registerCollector(prometheus.NewCounter(prometheus.CounterOpts{
				Name: "audio_transcription_failures_total",
				Help: "Failed transcription jobs.",
			})),
		}
	})
	return transcriptionMetrics
}

func (p *PrometheusTranscriptionMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}

func (p *PrometheusTranscriptionMetrics) RecordTranscriptLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}

func (p *PrometheusTranscriptionMetrics) RecordFailure() {
	p.failureCounter.Inc()
}
