package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP surface metrics for the application
type Metrics struct {
	// Inbound request latency by method, route pattern and status
	RequestLatency *prometheus.HistogramVec

	// Operation invocations by operation name and result
	Invocations *prometheus.CounterVec
}

// New creates and registers the HTTP surface metrics
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "partybridge_http_request_duration_seconds",
			Help:    "Duration of inbound HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),

		Invocations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "partybridge_operation_invocations_total",
			Help: "Total operation invocations by operation and result",
		}, []string{"operation", "result"}),
	}
}

// ObserveRequest records one inbound request.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(method, route, status).Observe(d.Seconds())
	}
}

// IncrementInvocation records one operation invocation.
func (m *Metrics) IncrementInvocation(operation, result string) {
	if m != nil {
		m.Invocations.WithLabelValues(operation, result).Inc()
	}
}
