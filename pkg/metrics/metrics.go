// Package metrics provides Prometheus metrics for the service
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ascomp_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ascomp_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// PDF metrics
	PDFRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ascomp_pdf_renders_total",
			Help: "Total number of PDF renders",
		},
		[]string{"renderer", "status"},
	)

	PDFRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ascomp_pdf_render_duration_seconds",
			Help:    "Time taken to render one report",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"renderer"},
	)

	// Import metrics
	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ascomp_import_rows_total",
			Help: "Imported rows by outcome",
		},
		[]string{"result"},
	)

	// Storage metrics
	StorageWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ascomp_storage_writes_total",
			Help: "Objects written to the file store",
		},
		[]string{"driver", "status"},
	)
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordRender records one PDF render.
func RecordRender(renderer string, started time.Time, err error) {
	PDFRendersTotal.WithLabelValues(renderer, status(err)).Inc()
	PDFRenderDuration.WithLabelValues(renderer).Observe(time.Since(started).Seconds())
}

// RecordStorageWrite records one upload.
func RecordStorageWrite(driver string, err error) {
	StorageWritesTotal.WithLabelValues(driver, status(err)).Inc()
}

// RecordImportRows adds n rows with the given result (valid, invalid,
// duplicate).
func RecordImportRows(result string, n int) {
	if n > 0 {
		ImportRowsTotal.WithLabelValues(result).Add(float64(n))
	}
}

// RecordHTTP records one served request.
func RecordHTTP(method, route, code string, started time.Time) {
	HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
}
