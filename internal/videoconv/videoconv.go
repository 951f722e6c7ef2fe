package videoconv

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"file-bag/internal/convert"
	"file-bag/internal/logging"
	"file-bag/internal/metrics"
	"file-bag/internal/scratch"
)

// Runner invokes the external transcoding tool and blocks until it exits.
// The error returned for a non-zero exit carries the tool's diagnostics.
type Runner interface {
	Run(ctx context.Context, args []string) error
}

// ffmpegRunner executes a real ffmpeg binary.
type ffmpegRunner struct {
	binary string
}

func (r *ffmpegRunner) Run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, r.binary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	metrics.TranscodeProcessesActive.Inc()
	defer metrics.TranscodeProcessesActive.Dec()

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%v: %s", err, lastLines(stderr.String(), 5))
	}
	return nil
}

// lastLines trims ffmpeg's chatty stderr down to the tail that actually
// names the failure.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// Strategy converts video inputs by driving ffmpeg through scratch files.
// A single instance is shared by all requests; per-call state lives entirely
// in uniquely named scratch paths.
type Strategy struct {
	cfg    Config
	space  *scratch.Space
	runner Runner
}

// New creates a video Strategy using the real ffmpeg binary from cfg.
func New(cfg Config, space *scratch.Space) *Strategy {
	return &Strategy{
		cfg:    cfg,
		space:  space,
		runner: &ffmpegRunner{binary: cfg.FFmpegPath},
	}
}

// Convert transcodes input into the requested format. The original filename
// is only used for its extension, which ffmpeg needs for input sniffing.
// Both scratch files are removed on every exit path; removal failures are
// logged, never propagated.
func (s *Strategy) Convert(ctx context.Context, input []byte, originalName, format string, tier convert.Tier) ([]byte, error) {
	if _, ok := specs[format]; !ok {
		return nil, fmt.Errorf("%w: %q for video input", convert.ErrUnsupportedFormat, format)
	}

	inExt := filepath.Ext(originalName)
	if inExt == "" {
		inExt = ".bin"
	}

	inPath := s.space.Acquire("in", inExt)
	defer s.space.Release(inPath)

	if err := os.WriteFile(inPath, input, 0600); err != nil {
		return nil, fmt.Errorf("%w: writing temp input: %v", convert.ErrScratch, err)
	}

	outPath := s.space.Acquire("out", format)
	defer s.space.Release(outPath)

	args, err := buildArgs(s.cfg, inPath, outPath, format, tier)
	if err != nil {
		return nil, err
	}

	logging.Debug("ffmpeg %s", strings.Join(args, " "))
	if err := s.runner.Run(ctx, args); err != nil {
		return nil, fmt.Errorf("%w: %v", convert.ErrTranscodeFailed, err)
	}

	output, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading temp output: %v", convert.ErrScratch, err)
	}
	if len(output) == 0 {
		return nil, fmt.Errorf("%w: %s", convert.ErrEmptyOutput, format)
	}

	return output, nil
}
