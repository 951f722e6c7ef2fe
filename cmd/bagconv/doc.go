// Command bagconv converts a local media file from the command line using
// the same conversion pipeline as the HTTP service.
//
// Usage:
//
//	bagconv -in photo.png -formats webp,avif [-tier premium] [-out ./dist]
//
// Flags:
//
//	-in       Path to the input image or video file (required).
//	-formats  Comma-separated output formats (required). Images support
//	          webp, avif, png and jpg; videos support mp4, webm and gif.
//	-tier     Account tier, "free" or "premium" (default: free). Free
//	          output carries the watermark and lower quality settings.
//	-out      Output directory (default: current directory).
//
// Environment:
//
//	SCRATCH_DIR  - Working directory for video temp files (default: system temp)
//	FFMPEG_PATH  - ffmpeg binary to use for video outputs (default: ffmpeg)
//
// The input kind is detected from file content, not the extension. Each
// requested format is converted independently; a failing format is reported
// and skipped without aborting the rest.
package main
