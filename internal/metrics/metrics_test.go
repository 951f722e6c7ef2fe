package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"HTTPRequestsTotal", HTTPRequestsTotal},
		{"HTTPRequestDuration", HTTPRequestDuration},
		{"HTTPRequestsInFlight", HTTPRequestsInFlight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestConversionMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"ConversionsTotal", ConversionsTotal},
		{"ConversionDuration", ConversionDuration},
		{"ConversionBatchesTotal", ConversionBatchesTotal},
		{"ConversionOutputBytes", ConversionOutputBytes},
		{"TranscodeProcessesActive", TranscodeProcessesActive},
		{"QuotaChecksTotal", QuotaChecksTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestConversionsTotalIncrements(t *testing.T) {
	before := testutil.ToFloat64(ConversionsTotal.WithLabelValues("image", "webp", "success"))
	ConversionsTotal.WithLabelValues("image", "webp", "success").Inc()
	after := testutil.ToFloat64(ConversionsTotal.WithLabelValues("image", "webp", "success"))

	if after != before+1 {
		t.Errorf("Expected counter to increment by 1, got %f -> %f", before, after)
	}
}

func TestInitializeMetrics(t *testing.T) {
	// Must not panic and must be safe to call more than once.
	InitializeMetrics()
	InitializeMetrics()
}
