package videoconv

import (
	"strings"
	"testing"

	"file-bag/internal/convert"
)

func countFlag(args []string, flag string) int {
	n := 0
	for _, a := range args {
		if a == flag {
			n++
		}
	}
	return n
}

func flagValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, a := range args {
		if a == flag {
			if i+1 >= len(args) {
				t.Fatalf("Flag %s has no value in %v", flag, args)
			}
			return args[i+1]
		}
	}
	return ""
}

func TestBuildArgsMP4(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name          string
		tier          convert.Tier
		wantCRF       string
		wantWatermark bool
	}{
		{"Free", convert.TierFree, "23", true},
		{"Premium", convert.TierPremium, "20", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := buildArgs(cfg, "/tmp/in.mov", "/tmp/out.mp4", "mp4", tt.tier)
			if err != nil {
				t.Fatalf("buildArgs() error: %v", err)
			}

			if got := flagValue(t, args, "-crf"); got != tt.wantCRF {
				t.Errorf("Expected CRF %s, got %s", tt.wantCRF, got)
			}
			if got := flagValue(t, args, "-c:v"); got != "libx264" {
				t.Errorf("Expected libx264, got %s", got)
			}
			if got := flagValue(t, args, "-c:a"); got != "aac" {
				t.Errorf("Expected aac audio, got %s", got)
			}
			if got := flagValue(t, args, "-movflags"); got != "+faststart" {
				t.Errorf("Expected +faststart, got %s", got)
			}

			vf := flagValue(t, args, "-vf")
			if tt.wantWatermark && !strings.Contains(vf, "drawtext=") {
				t.Errorf("Free tier mp4 missing drawtext filter: %q", vf)
			}
			if !tt.wantWatermark && vf != "" {
				t.Errorf("Premium mp4 should have no filter chain, got %q", vf)
			}
			if args[len(args)-1] != "/tmp/out.mp4" {
				t.Errorf("Output path must be last, got %s", args[len(args)-1])
			}
		})
	}
}

func TestBuildArgsWebM(t *testing.T) {
	cfg := DefaultConfig()

	args, err := buildArgs(cfg, "/tmp/in.mov", "/tmp/out.webm", "webm", convert.TierPremium)
	if err != nil {
		t.Fatalf("buildArgs() error: %v", err)
	}

	if got := flagValue(t, args, "-c:v"); got != "libvpx-vp9" {
		t.Errorf("Expected libvpx-vp9, got %s", got)
	}
	if got := flagValue(t, args, "-crf"); got != "28" {
		t.Errorf("Expected premium CRF 28, got %s", got)
	}
	if got := flagValue(t, args, "-b:v"); got != "0" {
		t.Errorf("Expected unconstrained bitrate -b:v 0, got %s", got)
	}
	if got := flagValue(t, args, "-c:a"); got != "libopus" {
		t.Errorf("Expected libopus audio, got %s", got)
	}
}

func TestBuildArgsGIFSingleFilterChain(t *testing.T) {
	cfg := DefaultConfig()

	// Free tier: downscale, fps and watermark must be ONE composed chain,
	// not sequentially conflicting -vf options.
	args, err := buildArgs(cfg, "/tmp/in.mov", "/tmp/out.gif", "gif", convert.TierFree)
	if err != nil {
		t.Fatalf("buildArgs() error: %v", err)
	}

	if n := countFlag(args, "-vf"); n != 1 {
		t.Fatalf("Expected exactly one -vf option, got %d in %v", n, args)
	}

	vf := flagValue(t, args, "-vf")
	wantPrefix := "fps=10,scale=480:-1:flags=lanczos,drawtext="
	if !strings.HasPrefix(vf, wantPrefix) {
		t.Errorf("Free gif filter chain = %q, want prefix %q", vf, wantPrefix)
	}
	if countFlag(args, "-an") != 1 {
		t.Error("GIF output must drop the audio track")
	}
}

func TestBuildArgsGIFPremium(t *testing.T) {
	cfg := DefaultConfig()

	args, err := buildArgs(cfg, "/tmp/in.mov", "/tmp/out.gif", "gif", convert.TierPremium)
	if err != nil {
		t.Fatalf("buildArgs() error: %v", err)
	}

	vf := flagValue(t, args, "-vf")
	if vf != "fps=15,scale=640:-1:flags=lanczos" {
		t.Errorf("Premium gif filter chain = %q, want fps=15,scale=640:-1:flags=lanczos", vf)
	}
	if strings.Contains(vf, "drawtext") {
		t.Error("Premium gif must not include the drawtext filter")
	}
}

func TestBuildArgsUnsupportedFormat(t *testing.T) {
	_, err := buildArgs(DefaultConfig(), "/tmp/in.mov", "/tmp/out.avi", "avi", convert.TierFree)
	if err == nil {
		t.Fatal("Expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "avi") {
		t.Errorf("Error should name the offending format: %v", err)
	}
}

func TestDrawtextFilter(t *testing.T) {
	cfg := DefaultConfig()

	f := drawtextFilter(cfg)
	if !strings.Contains(f, "text='putthefilesinthebag.xyz'") {
		t.Errorf("Missing watermark text: %q", f)
	}
	if !strings.Contains(f, "boxcolor=black@0.7") {
		t.Errorf("Missing semi-opaque background box: %q", f)
	}
	if !strings.Contains(f, "y=H-th-10") {
		t.Errorf("Watermark should sit at the bottom edge: %q", f)
	}
	if strings.Contains(f, "fontfile") {
		t.Errorf("No fontfile expected when FontFile is unset: %q", f)
	}

	cfg.FontFile = "/usr/share/fonts/DejaVuSans.ttf"
	if !strings.Contains(drawtextFilter(cfg), "fontfile=/usr/share/fonts/DejaVuSans.ttf") {
		t.Error("Configured fontfile not emitted")
	}
}

func TestEscapeDrawtext(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a:b", `a\:b`},
		{"it's", `it\'s`},
		{"50%", `50\%`},
	}

	for _, tt := range tests {
		if got := escapeDrawtext(tt.in); got != tt.want {
			t.Errorf("escapeDrawtext(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
