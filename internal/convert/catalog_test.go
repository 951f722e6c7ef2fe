package convert

import "testing"

func TestSupported(t *testing.T) {
	tests := []struct {
		kind   MediaKind
		format string
		want   bool
	}{
		{KindImage, "webp", true},
		{KindImage, "avif", true},
		{KindImage, "png", true},
		{KindImage, "jpg", true},
		{KindImage, "gif", false},
		{KindImage, "mp4", false},
		{KindImage, "jpeg", false},
		{KindVideo, "mp4", true},
		{KindVideo, "webm", true},
		{KindVideo, "gif", true},
		{KindVideo, "webp", false},
		{KindVideo, "avi", false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.format, func(t *testing.T) {
			if got := Supported(tt.kind, tt.format); got != tt.want {
				t.Errorf("Supported(%s, %q) = %v, want %v", tt.kind, tt.format, got, tt.want)
			}
		})
	}
}

func TestFormatsReturnsCopy(t *testing.T) {
	formats := Formats(KindImage)
	if len(formats) != 4 {
		t.Fatalf("Expected 4 image formats, got %d", len(formats))
	}

	formats[0] = "tampered"
	if Formats(KindImage)[0] == "tampered" {
		t.Error("Formats() must return a copy, not the backing slice")
	}
}

func TestMIMEType(t *testing.T) {
	tests := []struct {
		kind   MediaKind
		format string
		want   string
	}{
		{KindImage, "webp", "image/webp"},
		{KindImage, "jpg", "image/jpeg"},
		{KindImage, "png", "image/png"},
		{KindVideo, "mp4", "video/mp4"},
		{KindVideo, "gif", "image/gif"},
	}

	for _, tt := range tests {
		if got := MIMEType(tt.kind, tt.format); got != tt.want {
			t.Errorf("MIMEType(%s, %q) = %q, want %q", tt.kind, tt.format, got, tt.want)
		}
	}
}
