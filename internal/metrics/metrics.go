// Package metrics provides Prometheus metrics for IssueHub.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "issuehub"
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight tracks concurrent HTTP requests.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)
)

// Authorization metrics
var (
	// AuthzDecisionsTotal counts authorization decisions by action and result
	// (allow, or the deny reason).
	AuthzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "authz",
			Name:      "decisions_total",
			Help:      "Total authorization decisions by action and result",
		},
		[]string{"action", "result"},
	)
)

// Domain metrics
var (
	// MutationsTotal counts successful state changes by entity and operation.
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "domain",
			Name:      "mutations_total",
			Help:      "Total successful mutations by entity and operation",
		},
		[]string{"entity", "op"},
	)
)

// Inventory gauges, refreshed periodically by the stats job.
var (
	UsersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "domain",
			Name:      "users",
			Help:      "Number of registered users",
		},
	)

	ProjectsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "domain",
			Name:      "projects",
			Help:      "Number of projects",
		},
	)

	IssuesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "domain",
			Name:      "issues",
			Help:      "Number of issues by status",
		},
		[]string{"status"},
	)
)

// RecordDecision records the outcome of one authorization check.
func RecordDecision(action, result string) {
	AuthzDecisionsTotal.WithLabelValues(action, result).Inc()
}

// RecordMutation records one committed mutation.
func RecordMutation(entity, op string) {
	MutationsTotal.WithLabelValues(entity, op).Inc()
}
