package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// AnalysisRequestsTotal counts BuildAnalysis calls per chain and outcome
	// (ok, no_data, error).
	AnalysisRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_analyzer_analysis_requests_total",
			Help: "Token analysis requests by chain and outcome.",
		},
		[]string{"chain", "outcome"},
	)

	// UpstreamRequestsTotal counts calls to external data sources by HTTP
	// status class.
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_analyzer_upstream_requests_total",
			Help: "Requests to upstream data sources by source and status.",
		},
		[]string{"source", "status"},
	)

	// CacheEventsTotal counts analysis cache hits and misses.
	CacheEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_analyzer_cache_events_total",
			Help: "Analysis cache lookups by result.",
		},
		[]string{"result"},
	)

	// PnLComputationsTotal counts wallet P&L reports by outcome.
	PnLComputationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_analyzer_pnl_computations_total",
			Help: "Wallet P&L computations by outcome.",
		},
		[]string{"outcome"},
	)

	// AnalysisDurationSeconds observes end-to-end BuildAnalysis latency,
	// including upstream calls on cache misses.
	AnalysisDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "token_analyzer_analysis_duration_seconds",
			Help:    "Token analysis build latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at process start.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		AnalysisRequestsTotal,
		UpstreamRequestsTotal,
		CacheEventsTotal,
		PnLComputationsTotal,
		AnalysisDurationSeconds,
	)
}
