package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the party operations.
type Metrics struct {
	// Bridge call latency by operation and resolved outcome kind
	CallLatency *prometheus.HistogramVec

	// Resolved outcomes by operation and kind
	Outcomes *prometheus.CounterVec

	// Fallback data served in place of backend data
	Fallbacks *prometheus.CounterVec

	// Searches rejected before any backend call
	SearchesRejected prometheus.Counter
}

// New creates and registers the party metrics.
func New() *Metrics {
	return &Metrics{
		CallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "partybridge_bridge_call_duration_seconds",
			Help:    "Duration of bridge calls by operation and outcome kind",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation", "kind"}),

		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "partybridge_outcomes_total",
			Help: "Total resolved outcomes by operation and kind",
		}, []string{"operation", "kind"}),

		Fallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "partybridge_fallbacks_total",
			Help: "Total responses served from fallback data by operation and reason",
		}, []string{"operation", "reason"}),

		SearchesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "partybridge_searches_rejected_total",
			Help: "Total searches rejected for lacking a filter",
		}),
	}
}

// ObserveCall records a resolved bridge call.
func (m *Metrics) ObserveCall(operation, kind string, d time.Duration) {
	if m != nil {
		m.CallLatency.WithLabelValues(operation, kind).Observe(d.Seconds())
		m.Outcomes.WithLabelValues(operation, kind).Inc()
	}
}

// IncrementFallback records that fallback data was served.
func (m *Metrics) IncrementFallback(operation, reason string) {
	if m != nil {
		m.Fallbacks.WithLabelValues(operation, reason).Inc()
	}
}

// IncrementSearchRejected records a search short-circuited for lacking a filter.
func (m *Metrics) IncrementSearchRejected() {
	if m != nil {
		m.SearchesRejected.Inc()
	}
}
