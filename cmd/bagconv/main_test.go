package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"file-bag/internal/convert"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.NRGBA{R: 40, G: 90, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write test PNG: %v", err)
	}
}

func TestDetectKind(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}

	kind, err := detectKind(buf.Bytes())
	if err != nil {
		t.Fatalf("Expected PNG to be detected, got error: %v", err)
	}
	if kind != convert.KindImage {
		t.Errorf("Expected image kind, got %v", kind)
	}

	if _, err := detectKind([]byte("not a media file at all")); err == nil {
		t.Error("Expected error for non-media content")
	}
}

func TestRunConvertsImage(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "input.png")
	writeTestPNG(t, inPath)
	outDir := filepath.Join(dir, "out")

	t.Setenv("SCRATCH_DIR", filepath.Join(dir, "scratch"))

	if err := run(context.Background(), inPath, "png,jpg", "premium", outDir); err != nil {
		t.Fatalf("Expected conversion to succeed, got: %v", err)
	}

	for _, name := range []string{"input.png", "input.jpg"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("Expected output %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("Expected non-empty output %s", name)
		}
	}
}

func TestRunRejectsMissingInput(t *testing.T) {
	if err := run(context.Background(), filepath.Join(t.TempDir(), "missing.png"), "webp", "free", "."); err == nil {
		t.Error("Expected error for missing input file")
	}
}
