package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kegama_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kegama_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kegama_registrations_total",
			Help: "Guest registrations by source",
		},
		[]string{"source"},
	)

	LoginFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kegama_login_failures_total",
			Help: "Failed admin PIN attempts",
		},
	)

	PDFExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kegama_pdf_exports_total",
			Help: "PDF exports by report kind",
		},
		[]string{"kind"},
	)
)
