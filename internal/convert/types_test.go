package convert

import "testing"

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"premium", TierPremium},
		{"PREMIUM", TierPremium},
		{"lifetime", TierPremium},
		{" premium ", TierPremium},
		{"free", TierFree},
		{"", TierFree},
		{"gold", TierFree},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseTier(tt.in); got != tt.want {
				t.Errorf("ParseTier(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTierWatermark(t *testing.T) {
	if !TierFree.Watermark() {
		t.Error("Free tier must watermark")
	}
	if TierPremium.Watermark() {
		t.Error("Premium tier must not watermark")
	}
}

func TestParseMediaKind(t *testing.T) {
	tests := []struct {
		in      string
		want    MediaKind
		wantErr bool
	}{
		{"image", KindImage, false},
		{"Video", KindVideo, false},
		{" image ", KindImage, false},
		{"audio", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMediaKind(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseMediaKind(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMediaKind(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMediaKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMediaKindString(t *testing.T) {
	if KindImage.String() != "image" || KindVideo.String() != "video" {
		t.Error("Unexpected MediaKind string values")
	}
	if MediaKind(9).String() != "kind(9)" {
		t.Errorf("Unexpected out-of-range string: %s", MediaKind(9).String())
	}
}
