package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_bag_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_bag_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_bag_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Conversion metrics
var (
	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_bag_conversions_total",
			Help: "Total number of single-format conversions",
		},
		[]string{"kind", "format", "status"},
	)

	ConversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_bag_conversion_duration_seconds",
			Help:    "Duration of a single-format conversion in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"kind", "format"},
	)

	ConversionBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_bag_conversion_batches_total",
			Help: "Total number of orchestrated conversion batches",
		},
		[]string{"kind"},
	)

	ConversionOutputBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_bag_conversion_output_bytes",
			Help:    "Size of converted output payloads in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		},
		[]string{"kind", "format"},
	)

	TranscodeProcessesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_bag_transcode_processes_active",
			Help: "Number of ffmpeg processes currently running",
		},
	)
)

// Quota metrics
var (
	QuotaChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_bag_quota_checks_total",
			Help: "Total number of daily quota checks",
		},
		[]string{"outcome"}, // "allowed", "denied", "error"
	)
)
