package imageconv

import (
	"context"
	"fmt"

	"file-bag/internal/convert"
)

// Config holds the encode policy knobs for image outputs.
type Config struct {
	WatermarkText string

	// QualityFree and QualityPremium drive the webp/jpg encoders. Avif uses
	// the same number minus AvifOffset; its perceptual quality curve sits
	// lower on the same scale.
	QualityFree    int
	QualityPremium int
	AvifOffset     int
}

// DefaultConfig returns the standard image encode policy.
func DefaultConfig() Config {
	return Config{
		WatermarkText:  "putthefilesinthebag.xyz",
		QualityFree:    85,
		QualityPremium: 90,
		AvifOffset:     5,
	}
}

func (c Config) quality(tier convert.Tier) int {
	if tier == convert.TierPremium {
		return c.QualityPremium
	}
	return c.QualityFree
}

func (c Config) avifQuality(tier convert.Tier) int {
	return c.quality(tier) - c.AvifOffset
}

// Strategy converts image inputs in memory. A single instance is shared by
// all requests; it carries no mutable state.
type Strategy struct {
	cfg Config
}

// New creates an image Strategy.
func New(cfg Config) *Strategy {
	return &Strategy{cfg: cfg}
}

// Convert decodes input, composites the watermark for free-tier requests,
// and re-encodes into format. Premium requests skip the overlay entirely.
func (s *Strategy) Convert(ctx context.Context, input []byte, format string, tier convert.Tier) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !convert.Supported(convert.KindImage, format) {
		return nil, fmt.Errorf("%w: %q for image input", convert.ErrUnsupportedFormat, format)
	}

	if IsVipsAvailable() {
		return s.convertVips(input, format, tier)
	}
	return s.convertFallback(input, format, tier)
}
