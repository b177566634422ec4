package generator

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ArticleMetricsRecorder receives measurements from the generation
// clients. Abstracting it keeps the API clients testable without a
// Prometheus registry.
type ArticleMetricsRecorder interface {
	// RecordLength records a generated article's length in runes.
	RecordLength(length int)

	// RecordDuration records one generation call's wall time.
	RecordDuration(duration time.Duration)

	// RecordFailure counts one failed generation call.
	RecordFailure()
}

// PrometheusArticleMetrics is the ArticleMetricsRecorder backed by the
// default Prometheus registry.
type PrometheusArticleMetrics struct {
	lengthHistogram   prometheus.Histogram
	durationHistogram prometheus.Histogram
	failureCounter    prometheus.Counter
}

var (
	articleMetrics     *PrometheusArticleMetrics
	articleMetricsOnce sync.Once
)

// registerCollector registers c, falling back to the collector already
// in the registry when both generator clients race to construct it.
func registerCollector[T prometheus.Collector](c T) T {
	err := prometheus.Register(c)
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	return c
}

// NewPrometheusArticleMetrics returns the process-wide recorder. A
// singleton so repeated client construction in tests does not collide
// on registration.
func NewPrometheusArticleMetrics() *PrometheusArticleMetrics {
	articleMetricsOnce.Do(func() {
		articleMetrics = &PrometheusArticleMetrics{
			lengthHistogram: registerCollector(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "blog_article_length_characters",
				Help:    "Generated article lengths in Unicode runes.",
				Buckets: []float64{500, 1000, 2000, 3000, 5000, 8000},
			})),
			durationHistogram: registerCollector(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "blog_article_generation_duration_seconds",
				Help:    "Wall time of one article generation call.",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			})),
			failureCounter: registerCollector(prometheus.NewCounter(prometheus.CounterOpts{
				Name: "blog_article_generation_failures_total",
				Help: "Failed article generation calls.",
			})),
		}
	})
	return articleMetrics
}

func (p *PrometheusArticleMetrics) RecordLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}

func (p *PrometheusArticleMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}

func (p *PrometheusArticleMetrics) RecordFailure() {
	p.failureCounter.Inc()
}
