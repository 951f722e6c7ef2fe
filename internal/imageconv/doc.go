// Package imageconv implements the image conversion strategy.
//
// The whole pipeline is in memory: decode the input bytes, composite the
// branding overlay for free-tier requests, and re-encode into the target
// format. The primary pipeline runs on libvips via govips; when vips has not
// been initialized a pure-Go fallback covers webp, png and jpg (avif encoding
// has no pure-Go implementation and is only available through vips).
//
// The strategy is a pure function of its inputs and safe for concurrent use.
package imageconv
