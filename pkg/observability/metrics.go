// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring mcp-searxng.
package observability

import "github.com/prometheus/client_golang/prometheus"

// SearchBuckets defines histogram buckets for search round trips, from
// 50ms up to the default 30s client timeout.
var SearchBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

// ResultBuckets defines histogram buckets for result counts per call.
var ResultBuckets = []float64{0, 1, 2, 5, 10, 20, 30, 50}

var (
	// RequestsTotal counts HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_searxng_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcp_searxng_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: SearchBuckets,
		},
		[]string{"method"},
	)

	// ToolCallsTotal counts tool calls by tool name and outcome
	// ("success", "invalid_params", "internal_error").
	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_searxng_tool_calls_total",
			Help: "Tool calls",
		},
		[]string{"tool_name", "status"},
	)

	// SearchRequestsTotal counts outbound requests to the SearXNG instance
	// by outcome ("success", "http_error", "transport_error").
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_searxng_search_requests_total",
			Help: "Outbound search requests",
		},
		[]string{"status"},
	)

	// SearchLatency records outbound search latency in seconds.
	SearchLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mcp_searxng_search_latency_seconds",
			Help:    "Search latency",
			Buckets: SearchBuckets,
		},
	)

	// SearchResultsReturned records how many results a search produced.
	SearchResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mcp_searxng_search_results_returned",
			Help:    "Number of search results returned",
			Buckets: ResultBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		ToolCallsTotal,
		SearchRequestsTotal,
		SearchLatency,
		SearchResultsReturned,
	)
}
