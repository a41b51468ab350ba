package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	adminRequestsTotal  *prometheus.CounterVec
	adminLatencySeconds *prometheus.HistogramVec
	adminErrorsTotal    *prometheus.CounterVec
	auditRecordedTotal  *prometheus.CounterVec
	auditDroppedTotal   prometheus.Counter
	auditFailuresTotal  prometheus.Counter
	auditQueueDepth     prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_errors_total",
			Help: "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		auditRecordedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_events_recorded_total",
			Help: "Total number of audit events persisted, by action.",
		}, []string{"action"})

		auditDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "audit_events_dropped_total",
			Help: "Total number of audit events dropped because the queue was full.",
		})

		auditFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "audit_persist_failures_total",
			Help: "Total number of audit events that failed to persist.",
		})

		auditQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "audit_queue_depth",
			Help: "Current number of audit events waiting to be persisted.",
		})

		prometheus.MustRegister(
			adminRequestsTotal,
			adminLatencySeconds,
			adminErrorsTotal,
			auditRecordedTotal,
			auditDroppedTotal,
			auditFailuresTotal,
			auditQueueDepth,
		)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}

// AuditEventsRecorded exposes the counter for persisted audit events.
func AuditEventsRecorded() *prometheus.CounterVec {
	RegisterMetrics()
	return auditRecordedTotal
}

// AuditEventsDropped exposes the counter for dropped audit events.
func AuditEventsDropped() prometheus.Counter {
	RegisterMetrics()
	return auditDroppedTotal
}

// AuditPersistFailures exposes the counter for failed audit inserts.
func AuditPersistFailures() prometheus.Counter {
	RegisterMetrics()
	return auditFailuresTotal
}

// AuditQueueDepth exposes the gauge tracking queued audit events.
func AuditQueueDepth() prometheus.Gauge {
	RegisterMetrics()
	return auditQueueDepth
}
