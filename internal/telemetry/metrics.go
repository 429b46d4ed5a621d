package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the storefront's prometheus instruments: one pair for
// incoming HTTP traffic and one pair for calls made to the backend API.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Incoming HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Incoming HTTP request duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_backend_requests_total",
			Help: "Backend API calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_backend_request_duration_seconds",
			Help:    "Backend API call duration by operation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}

	m.registry.MustRegister(m.httpRequests, m.httpDuration, m.backendRequests, m.backendDuration)
	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveBackend records one backend API call.
func (m *Metrics) ObserveBackend(op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(op, outcome).Inc()
	m.backendDuration.WithLabelValues(op).Observe(d.Seconds())
}

// Middleware records incoming request counts and latency.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)
		m.httpRequests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(sr.status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}
