package polaris

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request lifecycle.
// It is safe for concurrent use and implements the transport recorder hooks.
type MetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
}

// NewMetricsCollector creates a collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "polaris_client_requests_total",
				Help: "Total number of API requests made",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polaris_client_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		retriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "polaris_client_retries_total",
				Help: "Total number of retry attempts",
			},
			[]string{"method", "path"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "polaris_client_errors_total",
				Help: "Total number of failed requests by error kind",
			},
			[]string{"kind"},
		),
	}
}

// ObserveRequest records one completed request.
func (m *MetricsCollector) ObserveRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	m.requestsTotal.WithLabelValues(method, path, code).Inc()
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

// IncRetry records one retry attempt.
func (m *MetricsCollector) IncRetry(method, path string) {
	m.retriesTotal.WithLabelValues(method, path).Inc()
}

// IncError records one request that failed with a taxonomy error.
func (m *MetricsCollector) IncError(kind string) {
	m.errorsTotal.WithLabelValues(kind).Inc()
}
