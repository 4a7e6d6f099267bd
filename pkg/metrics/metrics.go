// Package metrics provides Prometheus metrics for the tablet use report service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "tabletuse"
	subsystem = "report"
)

// Manager owns the service metrics and the registry they live on. A private
// registry keeps the scrape output down to what the service itself emits.
type Manager struct {
	registry *prometheus.Registry

	reportsProcessed prometheus.Counter
	uploadsRejected  prometheus.Counter
	rowsIngested     prometheus.Counter
	processingTime   prometheus.Histogram

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func NewManager() *Manager {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Manager{
		registry: registry,

		reportsProcessed: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reports_processed_total",
			Help:      "Total number of reports produced",
		}),
		uploadsRejected: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "uploads_rejected_total",
			Help:      "Total number of uploads rejected as structurally invalid",
		}),
		rowsIngested: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rows_ingested_total",
			Help:      "Total number of sales rows ingested across all reports",
		}),
		processingTime: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "processing_duration_seconds",
			Help:      "Time spent running the report pipeline",
			Buckets:   prometheus.DefBuckets,
		}),

		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route, method and status code",
		}, []string{"route", "method", "status_code"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by route, method and status code",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status_code"}),
	}
}

// Registry exposes the underlying registry for the scrape endpoint.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// RecordReport counts one produced report, its ingested rows and the time the
// pipeline took.
func (m *Manager) RecordReport(rows int, elapsed time.Duration) {
	m.reportsProcessed.Inc()
	m.rowsIngested.Add(float64(rows))
	m.processingTime.Observe(elapsed.Seconds())
}

// RecordUploadRejected counts one structurally invalid upload.
func (m *Manager) RecordUploadRejected() {
	m.uploadsRejected.Inc()
}

// RecordHTTPRequest records one served request.
func (m *Manager) RecordHTTPRequest(route, method, statusCode string, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, statusCode).Observe(elapsed.Seconds())
}
