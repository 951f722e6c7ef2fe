package convert

import "errors"

// Sentinel errors for the conversion error taxonomy. Strategies wrap these
// with context via fmt.Errorf and %w; callers match with errors.Is.
var (
	// ErrCorruptInput means the input bytes could not be decoded.
	ErrCorruptInput = errors.New("unsupported or corrupt input")

	// ErrUnsupportedFormat means the requested output format is not in the
	// catalog for the given media kind.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrTranscodeFailed means the external transcoding process reported an
	// error; the wrapping error carries the tool's diagnostic output.
	ErrTranscodeFailed = errors.New("transcode failed")

	// ErrEmptyOutput means the transcoder exited successfully but produced a
	// zero-length output file.
	ErrEmptyOutput = errors.New("transcoder produced empty output")

	// ErrScratch means a temp input could not be written or a temp output
	// could not be read back, distinct from a tool failure.
	ErrScratch = errors.New("scratch file I/O failed")
)
