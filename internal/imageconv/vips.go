package imageconv

import (
	"fmt"
	"sync"

	"file-bag/internal/logging"

	"github.com/davidbyttow/govips/v2/vips"

	"file-bag/internal/convert"
)

var (
	vipsInitialized bool
	vipsInitMutex   sync.Mutex
	vipsAvailable   bool
)

// InitVips initializes the libvips library. Call once at startup; the image
// strategy falls back to the pure-Go pipeline until this has run.
func InitVips() error {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		return nil
	}

	// Bridge vips logging into ours, keeping only warnings and up unless
	// debug logging is on.
	vipsLogLevel := vips.LogLevelWarning
	if logging.IsDebugEnabled() {
		vipsLogLevel = vips.LogLevelInfo
	}
	vips.LoggingSettings(func(domain string, level vips.LogLevel, msg string) {
		switch {
		case level >= vips.LogLevelError:
			logging.Error("[%s] %s", domain, msg)
		case level == vips.LogLevelWarning:
			logging.Warn("[%s] %s", domain, msg)
		default:
			logging.Debug("[%s] %s", domain, msg)
		}
	}, vipsLogLevel)

	// Conservative memory settings; conversions are request-sized, not batch.
	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1,
		MaxCacheMem:      50 * 1024 * 1024,
		MaxCacheSize:     100,
	})

	vipsInitialized = true
	vipsAvailable = true
	logging.Info("libvips initialized (version: %s)", vips.Version)
	return nil
}

// ShutdownVips cleans up libvips resources.
func ShutdownVips() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		vips.Shutdown()
		vipsInitialized = false
		vipsAvailable = false
		logging.Info("libvips shutdown complete")
	}
}

// IsVipsAvailable returns whether libvips is initialized and available.
func IsVipsAvailable() bool {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()
	return vipsAvailable
}

// vipsEncoders is the registered encode function per output format,
// validated against the static catalog at package init.
var vipsEncoders = map[string]func(ref *vips.ImageRef, cfg Config, tier convert.Tier) ([]byte, error){
	"webp": func(ref *vips.ImageRef, cfg Config, tier convert.Tier) ([]byte, error) {
		p := vips.NewWebpExportParams()
		p.Quality = cfg.quality(tier)
		out, _, err := ref.ExportWebp(p)
		return out, err
	},
	"avif": func(ref *vips.ImageRef, cfg Config, tier convert.Tier) ([]byte, error) {
		p := vips.NewAvifExportParams()
		p.Quality = cfg.avifQuality(tier)
		out, _, err := ref.ExportAvif(p)
		return out, err
	},
	"png": func(ref *vips.ImageRef, cfg Config, tier convert.Tier) ([]byte, error) {
		p := vips.NewPngExportParams()
		out, _, err := ref.ExportPng(p)
		return out, err
	},
	"jpg": func(ref *vips.ImageRef, cfg Config, tier convert.Tier) ([]byte, error) {
		p := vips.NewJpegExportParams()
		p.Quality = cfg.quality(tier)
		p.OptimizeCoding = true
		out, _, err := ref.ExportJpeg(p)
		return out, err
	},
}

func init() {
	for _, format := range convert.Formats(convert.KindImage) {
		if _, ok := vipsEncoders[format]; !ok {
			panic(fmt.Sprintf("imageconv: no vips encoder registered for catalog format %q", format))
		}
	}
}

// convertVips runs the libvips pipeline: load from buffer, composite the
// overlay for free tier, export into the target format.
func (s *Strategy) convertVips(input []byte, format string, tier convert.Tier) ([]byte, error) {
	ref, err := vips.NewImageFromBuffer(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", convert.ErrCorruptInput, err)
	}
	defer ref.Close()

	if tier.Watermark() {
		if err := s.compositeWatermark(ref); err != nil {
			// The overlay is branding, not correctness; a failed composite
			// must not fail the conversion.
			logging.Warn("watermark composite failed, continuing without overlay: %v", err)
		}
	}

	encode := vipsEncoders[format]
	out, err := encode(ref, s.cfg, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return out, nil
}

// compositeWatermark renders the branding text as an SVG and composites it
// near the bottom-left corner, downscaling the overlay when the image is
// smaller than the reference overlay box.
func (s *Strategy) compositeWatermark(ref *vips.ImageRef) error {
	svg := []byte(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="200" height="50">`+
			`<text x="10" y="30" font-family="Arial" font-size="16" fill="rgba(255,255,255,0.5)">%s</text>`+
			`</svg>`, s.cfg.WatermarkText))

	overlay, err := vips.NewImageFromBuffer(svg)
	if err != nil {
		return fmt.Errorf("failed to render watermark svg: %w", err)
	}
	defer overlay.Close()

	// Shrink the overlay when it would not fit the image.
	scale := 1.0
	if w := float64(ref.Width()) / float64(overlay.Width()); w < scale {
		scale = w
	}
	if h := float64(ref.Height()) / float64(overlay.Height()); h < scale {
		scale = h
	}
	if scale < 1.0 {
		if err := overlay.Resize(scale, vips.KernelLanczos3); err != nil {
			return fmt.Errorf("failed to scale watermark: %w", err)
		}
	}

	x := 0
	y := ref.Height() - overlay.Height()
	if ref.Width() > overlay.Width()+10 {
		x = 10
	}
	if y > 10 {
		y -= 10
	} else if y < 0 {
		y = 0
	}

	return ref.Composite(overlay, vips.BlendModeOver, x, y)
}
