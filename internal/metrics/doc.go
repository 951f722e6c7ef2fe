// Package metrics provides Prometheus instrumentation for the file-bag service.
//
// All metrics are prefixed with "file_bag_" to avoid naming collisions with
// other applications. The categories are:
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Conversion Metrics
//
//   - ConversionsTotal: Counter of single-format conversions by kind, format
//     and status
//   - ConversionDuration: Histogram of single-format conversion duration
//   - ConversionBatchesTotal: Counter of orchestrated batches by kind
//   - ConversionOutputBytes: Histogram of output payload sizes
//   - TranscodeProcessesActive: Gauge of ffmpeg processes currently running
//
// ## Quota Metrics
//
//   - QuotaChecksTotal: Counter of quota lookups by outcome
//
// Call InitializeMetrics once at startup to pre-populate the expected label
// combinations so every series is exported from the first scrape.
package metrics
