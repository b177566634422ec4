package http

import (
	"net/http"
	"strconv"
	"time"

	"blogsmith/internal/handler/http/pathutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Count of handled HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// Buckets run from 5ms to 10s. Anything beyond that is the generate
	// pipeline, which has its own histogram below.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of handled HTTP requests.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Requests currently inside a handler.",
		},
	)

	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "Size of request bodies.",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of response bodies.",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Open HTTP connections.",
		},
	)

	// 業務側のゲージとカウンタ
	blogsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blog_posts_total",
			Help: "Blog posts currently stored.",
		},
	)

	usersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "users_total",
			Help: "Registered user accounts.",
		},
	)

	blogsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogs_generated_total",
			Help: "Blog generation attempts by outcome.",
		},
		[]string{"status"},
	)

	// generationDuration covers the whole pipeline: download, transcription,
	// and article generation. Buckets reach into the minutes.
	generationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "blog_generation_duration_seconds",
			Help:    "Wall time of the full link-to-article pipeline.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Latency of database queries by operation.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)
)

// responseWriter records the status code and body size on the way out.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// MetricsMiddleware records per-request counters, latency, and sizes.
// Path labels go through pathutil.NormalizePath so /blogs/123 and
// /blogs/456 land in the same series.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		activeConnections.Inc()
		defer httpRequestsInFlight.Dec()
		defer activeConnections.Dec()

		path := pathutil.NormalizePath(r.URL.Path)
		if r.ContentLength > 0 {
			httpRequestSize.WithLabelValues(r.Method, path).Observe(float64(r.ContentLength))
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rw, r)

		status := strconv.Itoa(rw.statusCode)
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		httpResponseSize.WithLabelValues(r.Method, path).Observe(float64(rw.size))
	})
}

// MetricsHandler serves the Prometheus exposition endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordBlogGenerated counts one generation attempt.
func RecordBlogGenerated(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	blogsGeneratedTotal.WithLabelValues(status).Inc()
}

// RecordGenerationDuration records the wall time of one full pipeline run.
func RecordGenerationDuration(duration time.Duration) {
	generationDuration.Observe(duration.Seconds())
}

// RecordDBQuery records one query's duration under its operation label.
func RecordDBQuery(operation string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateBlogsTotal sets the stored-posts gauge, polled from the database.
func UpdateBlogsTotal(count int) {
	blogsTotal.Set(float64(count))
}

// UpdateUsersTotal sets the registered-users gauge, polled from the database.
func UpdateUsersTotal(count int) {
	usersTotal.Set(float64(count))
}
