package imageconv

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"file-bag/internal/convert"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// fallbackEncoders is the pure-Go encode function per output format. Avif is
// deliberately absent: no pure-Go encoder exists for it.
var fallbackEncoders = map[string]func(img image.Image, q int) ([]byte, error){
	"webp": func(img image.Image, q int) ([]byte, error) {
		var buf bytes.Buffer
		if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(q)}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	},
	"png": func(img image.Image, _ int) ([]byte, error) {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	},
	"jpg": func(img image.Image, q int) ([]byte, error) {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	},
}

// convertFallback is the pure-Go pipeline used when libvips is unavailable.
func (s *Strategy) convertFallback(input []byte, format string, tier convert.Tier) ([]byte, error) {
	encode, ok := fallbackEncoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q requires libvips", convert.ErrUnsupportedFormat, format)
	}

	img, _, err := image.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", convert.ErrCorruptInput, err)
	}

	if tier.Watermark() {
		img = s.stampWatermark(img)
	}

	out, err := encode(img, s.cfg.quality(tier))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return out, nil
}

// stampWatermark draws the branding text near the bottom-left corner with a
// semi-transparent fill. Text that does not fit a small image is clipped by
// the drawer, never an error.
func (s *Strategy) stampWatermark(img image.Image) image.Image {
	canvas := imaging.Clone(img)
	bounds := canvas.Bounds()

	d := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 178}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(bounds.Min.X+8, bounds.Max.Y-8),
	}
	d.DrawString(s.cfg.WatermarkText)

	return canvas
}
