package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search lifecycle and upstream Prometheus metrics.
var (
	SearchSubmitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "searchai",
			Name:      "search_submits_total",
			Help:      "Total number of submitted searches",
		},
	)

	SearchOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchai",
			Name:      "search_outcomes_total",
			Help:      "Completed searches by outcome",
		},
		[]string{"outcome"}, // "success" / "error" / "superseded"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "searchai",
			Name:      "search_duration_seconds",
			Help:      "Time from submit to completion in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchai",
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the search API",
		},
		[]string{"endpoint", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "searchai",
			Name:      "upstream_request_duration_seconds",
			Help:      "Search API request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)
)

// Search outcome label values.
const (
	OutcomeSuccess    = "success"
	OutcomeError      = "error"
	OutcomeSuperseded = "superseded"
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers the search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchSubmitsTotal)
	prometheus.MustRegister(SearchOutcomesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamRequestDuration)
	searchMetricsRegistered = true
}
