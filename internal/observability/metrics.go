package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for Scorecard traffic.
type Metrics struct {
	// Upstream Scorecard API metrics.
	ScorecardRequests *prometheus.CounterVec   // labels: operation={search_by_name,search,get_by_id}, outcome={success,error,upstream_error,config_error,not_found}
	ScorecardDuration *prometheus.HistogramVec // labels: operation
	RecordsRejected   prometheus.Counter

	// Inbound search metrics.
	SearchRequests *prometheus.CounterVec // labels: path={name,filtered,lookup}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ScorecardRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "college_tracker",
			Name:      "scorecard_requests_total",
			Help:      "Scorecard API operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		ScorecardDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "college_tracker",
			Name:      "scorecard_request_duration_seconds",
			Help:      "Scorecard API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		RecordsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "college_tracker",
			Name:      "scorecard_records_rejected_total",
			Help:      "Scorecard records dropped by the name and enrollment admission checks.",
		}),
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "college_tracker",
			Name:      "search_requests_total",
			Help:      "Inbound school searches by routing path.",
		}, []string{"path"}),
	}

	prometheus.MustRegister(
		m.ScorecardRequests,
		m.ScorecardDuration,
		m.RecordsRejected,
		m.SearchRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ScorecardRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "college_tracker", Name: "scorecard_requests_total"}, []string{"operation", "outcome"}),
		ScorecardDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "college_tracker", Name: "scorecard_request_duration_seconds"}, []string{"operation"}),
		RecordsRejected:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "college_tracker", Name: "scorecard_records_rejected_total"}),
		SearchRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "college_tracker", Name: "search_requests_total"}, []string{"path"}),
	}
}
