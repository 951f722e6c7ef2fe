package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"file-bag/internal/logging"
	"file-bag/internal/metrics"
)

// ImageStrategy converts image bytes to a single output format in memory.
// Implementations must be safe for concurrent use.
type ImageStrategy interface {
	Convert(ctx context.Context, input []byte, format string, tier Tier) ([]byte, error)
}

// VideoStrategy converts video bytes to a single output format, mediated
// through temp files and an external transcoder. Implementations must be
// safe for concurrent use.
type VideoStrategy interface {
	Convert(ctx context.Context, input []byte, originalName, format string, tier Tier) ([]byte, error)
}

// Converter orchestrates one conversion batch per call. It holds no mutable
// state and a single instance is shared by all requests.
type Converter struct {
	images  ImageStrategy
	videos  VideoStrategy
	baseURL string
}

// New creates a Converter. baseURL is the public prefix used when building
// embed snippets for converted files.
func New(images ImageStrategy, videos VideoStrategy, baseURL string) *Converter {
	return &Converter{
		images:  images,
		videos:  videos,
		baseURL: baseURL,
	}
}

// Convert runs one batch. Every requested format is attempted; a failing
// format is logged and omitted, never aborting the rest of the batch.
// An empty format list yields an empty result slice. The only hard error is
// a violated precondition at the boundary: absent input bytes with formats
// requested.
func (c *Converter) Convert(ctx context.Context, req Request) ([]Result, error) {
	if len(req.Formats) == 0 {
		return []Result{}, nil
	}
	if len(req.Input) == 0 {
		return nil, fmt.Errorf("convert: empty input for %q", req.OriginalName)
	}

	metrics.ConversionBatchesTotal.WithLabelValues(req.Kind.String()).Inc()

	baseName := strings.TrimSuffix(req.OriginalName, filepath.Ext(req.OriginalName))
	if baseName == "" {
		baseName = "converted"
	}

	results := make([]Result, 0, len(req.Formats))
	for _, format := range req.Formats {
		payload, err := c.convertOne(ctx, req, format)
		if err != nil {
			status := "error"
			if errors.Is(err, ErrUnsupportedFormat) {
				status = "unsupported"
			}
			metrics.ConversionsTotal.WithLabelValues(req.Kind.String(), format, status).Inc()
			logging.Warn("Conversion to %s failed for %q: %v", format, req.OriginalName, err)
			continue
		}

		metrics.ConversionsTotal.WithLabelValues(req.Kind.String(), format, "success").Inc()
		metrics.ConversionOutputBytes.WithLabelValues(req.Kind.String(), format).Observe(float64(len(payload)))

		filename := baseName + "." + format
		results = append(results, Result{
			Format:   format,
			Filename: filename,
			Size:     len(payload),
			Payload:  payload,
			Snippets: makeSnippets(c.baseURL, filename, format, req.Kind),
		})
	}

	return results, nil
}

func (c *Converter) convertOne(ctx context.Context, req Request, format string) ([]byte, error) {
	if !Supported(req.Kind, format) {
		return nil, fmt.Errorf("%w: %q for %s input", ErrUnsupportedFormat, format, req.Kind)
	}

	start := time.Now()
	defer func() {
		metrics.ConversionDuration.WithLabelValues(req.Kind.String(), format).Observe(time.Since(start).Seconds())
	}()

	if req.Kind == KindVideo {
		return c.videos.Convert(ctx, req.Input, req.OriginalName, format, req.Tier)
	}
	return c.images.Convert(ctx, req.Input, format, req.Tier)
}
