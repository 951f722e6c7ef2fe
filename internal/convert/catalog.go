package convert

// catalog is the static mapping from media kind to supported output formats.
// Requesting a format outside the catalog is a per-format failure, never a
// batch failure.
var catalog = map[MediaKind][]string{
	KindImage: {"webp", "avif", "png", "jpg"},
	KindVideo: {"mp4", "webm", "gif"},
}

// Supported reports whether format is a valid output for the given kind.
func Supported(kind MediaKind, format string) bool {
	for _, f := range catalog[kind] {
		if f == format {
			return true
		}
	}
	return false
}

// Formats returns a copy of the supported output formats for the given kind.
func Formats(kind MediaKind) []string {
	formats := catalog[kind]
	out := make([]string, len(formats))
	copy(out, formats)
	return out
}

// MIMEType returns the MIME type served for a converted output.
// The jpg identifier maps to image/jpeg; a gif produced from video input is
// still served as image/gif.
func MIMEType(kind MediaKind, format string) string {
	if kind == KindVideo && format != "gif" {
		return "video/" + format
	}
	if format == "jpg" {
		return "image/jpeg"
	}
	return "image/" + format
}
