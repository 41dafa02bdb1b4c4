package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "adictl"

// metrics holds the Prometheus instruments for the dashboard server.
type metrics struct {
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	refreshRuns         prometheus.Counter
	refreshErrors       prometheus.Counter
	indexScore          prometheus.Gauge
	shoeLevel           prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		refreshRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "refresh_runs_total",
			Help:      "Completed index refresh runs.",
		}),
		refreshErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "refresh_errors_total",
			Help:      "Failed index refresh runs.",
		}),
		indexScore: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "index_score",
			Help:      "Current scaled index score (0-100).",
		}),
		shoeLevel: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "shoe_level",
			Help:      "Current shoe gauge level (1-5).",
		}),
	}
}

// statusRecorder captures the response code for the request counter.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with request count and latency metrics.
func (m *metrics) instrument(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		m.httpRequests.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
		m.httpRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}

// observeSnapshot updates the score gauges from the latest snapshot.
func (m *metrics) observeSnapshot(score float64, level int) {
	m.indexScore.Set(score)
	m.shoeLevel.Set(float64(level))
}
