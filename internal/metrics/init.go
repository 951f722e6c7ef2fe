package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	imageFormats := []string{"webp", "avif", "png", "jpg"}
	videoFormats := []string{"mp4", "webm", "gif"}
	statuses := []string{"success", "error", "unsupported"}

	for _, f := range imageFormats {
		for _, s := range statuses {
			ConversionsTotal.WithLabelValues("image", f, s)
		}
		ConversionDuration.WithLabelValues("image", f)
		ConversionOutputBytes.WithLabelValues("image", f)
	}

	for _, f := range videoFormats {
		for _, s := range statuses {
			ConversionsTotal.WithLabelValues("video", f, s)
		}
		ConversionDuration.WithLabelValues("video", f)
		ConversionOutputBytes.WithLabelValues("video", f)
	}

	for _, kind := range []string{"image", "video"} {
		ConversionBatchesTotal.WithLabelValues(kind)
	}

	for _, outcome := range []string{"allowed", "denied", "error"} {
		QuotaChecksTotal.WithLabelValues(outcome)
	}
}
