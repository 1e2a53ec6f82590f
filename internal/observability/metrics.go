package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	requestsTotal        *prometheus.CounterVec
	latencySeconds       *prometheus.HistogramVec
	errorsTotal          *prometheus.CounterVec
	auditWriteFailures   prometheus.Counter
	notifyFailures       *prometheus.CounterVec
	decisionsTotal       *prometheus.CounterVec
	reportBuildsTotal    prometheus.Counter
	reportBuildRowsTotal prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "achievements_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "achievements_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "achievements_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		auditWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "audit_write_failures_total",
			Help: "Audit entries that could not be persisted. The primary mutation still succeeds; this counter is the alerting surface for silent audit loss.",
		})

		notifyFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notification_failures_total",
			Help: "Notification events that could not be delivered.",
		}, []string{"event"})

		decisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "achievement_decisions_total",
			Help: "Achievement approve/reject decisions taken.",
		}, []string{"outcome"})

		reportBuildsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "report_builds_total",
			Help: "Reports aggregated.",
		})

		reportBuildRowsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "report_build_rows_total",
			Help: "Rows classified across all report builds.",
		})

		prometheus.MustRegister(
			requestsTotal,
			latencySeconds,
			errorsTotal,
			auditWriteFailures,
			notifyFailures,
			decisionsTotal,
			reportBuildsTotal,
			reportBuildRowsTotal,
		)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// AuditWriteFailures exposes the counter for dropped audit entries.
func AuditWriteFailures() prometheus.Counter {
	RegisterMetrics()
	return auditWriteFailures
}

// NotifyFailures exposes the counter for undelivered notifications.
func NotifyFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return notifyFailures
}

// Decisions exposes the counter for achievement decisions.
func Decisions() *prometheus.CounterVec {
	RegisterMetrics()
	return decisionsTotal
}

// ReportBuilds exposes the counter for report aggregations.
func ReportBuilds() prometheus.Counter {
	RegisterMetrics()
	return reportBuildsTotal
}

// ReportRows exposes the counter for classified report rows.
func ReportRows() prometheus.Counter {
	RegisterMetrics()
	return reportBuildRowsTotal
}
