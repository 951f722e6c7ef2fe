package videoconv

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"file-bag/internal/convert"
	"file-bag/internal/scratch"
)

// generateTestClip renders a short synthetic clip with ffmpeg's testsrc.
func generateTestClip(t *testing.T) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.mp4")
	cmd := exec.Command("ffmpeg",
		"-f", "lavfi",
		"-i", "testsrc=duration=1:size=320x240:rate=15",
		"-pix_fmt", "yuv420p",
		"-y", path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to generate test clip: %v - %s", err, stderr.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read test clip: %v", err)
	}
	return data
}

func TestConvertWithRealFFmpeg(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping ffmpeg integration test in short mode")
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}

	clip := generateTestClip(t)

	dir := t.TempDir()
	space, err := scratch.New(dir)
	if err != nil {
		t.Fatalf("scratch.New() error: %v", err)
	}
	s := New(DefaultConfig(), space)

	// Premium so the pipeline does not depend on a system font for drawtext.
	for _, format := range convert.Formats(convert.KindVideo) {
		t.Run(format, func(t *testing.T) {
			out, err := s.Convert(context.Background(), clip, "clip.mp4", format, convert.TierPremium)
			if err != nil {
				t.Fatalf("Convert(%s) error: %v", format, err)
			}
			if len(out) == 0 {
				t.Fatalf("Convert(%s) produced empty output", format)
			}
		})
	}

	assertScratchEmpty(t, dir)
}
