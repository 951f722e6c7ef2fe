package videoconv

import (
	"fmt"
	"strconv"
	"strings"

	"file-bag/internal/convert"
)

// Config holds the encode policy knobs. The free/premium split follows the
// tier contract: premium gets lower CRF (higher quality) and a larger,
// smoother GIF; free additionally gets the watermark overlay.
type Config struct {
	FFmpegPath    string
	WatermarkText string
	// FontFile is an optional path to a TTF for drawtext. When empty no
	// fontfile option is emitted and ffmpeg resolves one via fontconfig.
	FontFile string

	MP4CRFFree      int
	MP4CRFPremium   int
	WebMCRFFree     int
	WebMCRFPremium  int
	GIFFPSFree      int
	GIFFPSPremium   int
	GIFWidthFree    int
	GIFWidthPremium int
}

// DefaultConfig returns the standard encode policy.
func DefaultConfig() Config {
	return Config{
		FFmpegPath:      "ffmpeg",
		WatermarkText:   "putthefilesinthebag.xyz",
		MP4CRFFree:      23,
		MP4CRFPremium:   20,
		WebMCRFFree:     30,
		WebMCRFPremium:  28,
		GIFFPSFree:      10,
		GIFFPSPremium:   15,
		GIFWidthFree:    480,
		GIFWidthPremium: 640,
	}
}

// encodeSpec is the per-format slice of codec options plus the video filter
// steps that belong in the single composed -vf chain.
type encodeSpec struct {
	codecArgs []string
	filters   []string
}

type specFunc func(cfg Config, tier convert.Tier) encodeSpec

// specs is the registered encode specification per output format. It is
// validated against the static catalog at package init so an unregistered
// catalog format fails fast instead of falling through a switch at runtime.
var specs = map[string]specFunc{
	"mp4":  mp4Spec,
	"webm": webmSpec,
	"gif":  gifSpec,
}

func init() {
	for _, format := range convert.Formats(convert.KindVideo) {
		if _, ok := specs[format]; !ok {
			panic(fmt.Sprintf("videoconv: no encode spec registered for catalog format %q", format))
		}
	}
}

func mp4Spec(cfg Config, tier convert.Tier) encodeSpec {
	crf := cfg.MP4CRFFree
	if tier == convert.TierPremium {
		crf = cfg.MP4CRFPremium
	}
	return encodeSpec{
		codecArgs: []string{
			"-c:v", "libx264",
			"-preset", "faster",
			"-crf", strconv.Itoa(crf),
			"-c:a", "aac",
			"-movflags", "+faststart",
		},
	}
}

func webmSpec(cfg Config, tier convert.Tier) encodeSpec {
	crf := cfg.WebMCRFFree
	if tier == convert.TierPremium {
		crf = cfg.WebMCRFPremium
	}
	return encodeSpec{
		codecArgs: []string{
			"-c:v", "libvpx-vp9",
			"-crf", strconv.Itoa(crf),
			"-b:v", "0",
			"-c:a", "libopus",
			"-deadline", "realtime",
			"-cpu-used", "8",
		},
	}
}

func gifSpec(cfg Config, tier convert.Tier) encodeSpec {
	fps, width := cfg.GIFFPSFree, cfg.GIFWidthFree
	if tier == convert.TierPremium {
		fps, width = cfg.GIFFPSPremium, cfg.GIFWidthPremium
	}
	return encodeSpec{
		codecArgs: []string{"-an", "-f", "gif"},
		filters: []string{
			fmt.Sprintf("fps=%d", fps),
			fmt.Sprintf("scale=%d:-1:flags=lanczos", width),
		},
	}
}

// buildArgs composes the full ffmpeg argument list for one conversion.
// The watermark drawtext step is appended to the same filter chain as any
// scale/fps steps, so exactly one -vf option is ever emitted.
func buildArgs(cfg Config, inPath, outPath, format string, tier convert.Tier) ([]string, error) {
	specFn, ok := specs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q for video input", convert.ErrUnsupportedFormat, format)
	}
	spec := specFn(cfg, tier)

	filters := spec.filters
	if tier.Watermark() {
		filters = append(filters, drawtextFilter(cfg))
	}

	args := []string{"-y", "-i", inPath}
	args = append(args, spec.codecArgs...)
	if len(filters) > 0 {
		args = append(args, "-vf", strings.Join(filters, ","))
	}
	args = append(args, outPath)
	return args, nil
}

// drawtextFilter renders the branding text bottom-left on a semi-opaque box
// so it stays legible over arbitrary video content.
func drawtextFilter(cfg Config) string {
	f := fmt.Sprintf(
		"drawtext=text='%s':x=10:y=H-th-10:fontsize=18:fontcolor=white:box=1:boxcolor=black@0.7:boxborderw=5",
		escapeDrawtext(cfg.WatermarkText))
	if cfg.FontFile != "" {
		f += ":fontfile=" + cfg.FontFile
	}
	return f
}

// escapeDrawtext escapes the characters drawtext treats specially inside a
// quoted text value.
func escapeDrawtext(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`, `%`, `\%`)
	return r.Replace(s)
}
