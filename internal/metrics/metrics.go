// Package metrics defines Prometheus metrics for applytrail.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "applytrail_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applytrail_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applytrail_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	StageViolationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applytrail_stage_violations_total",
			Help: "Stage writes rejected by the chronology rules, by violation code",
		},
		[]string{"code"},
	)

	SessionsIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "applytrail_sessions_issued_total",
			Help: "Anonymous sessions issued",
		},
	)

	WorldGraphsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "applytrail_world_graphs_total",
			Help: "World graphs built",
		},
	)

	WorldGraphEdges = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "applytrail_world_graph_edges",
			Help:    "Number of edges per built world graph",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		StageViolationsTotal, SessionsIssuedTotal,
		WorldGraphsTotal, WorldGraphEdges,
	)
}
