// Package videoconv implements the video conversion strategy.
//
// Conversion is mediated through scratch files: the input bytes are written
// to a uniquely named temp file, ffmpeg is invoked with a format-specific
// encode specification, and the output file is read back into memory. Both
// temp files are removed on every exit path. All filters for an output
// (fps, scale, watermark) are composed into a single -vf chain so ffmpeg
// never silently drops an earlier filter directive.
package videoconv
