package convert

import (
	"fmt"
	"strings"
)

// MediaKind identifies the family of an input blob.
type MediaKind int

const (
	// KindImage is a still image input
	KindImage MediaKind = iota
	// KindVideo is a video input
	KindVideo
)

// String returns the lowercase name of the media kind.
func (k MediaKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseMediaKind maps a MIME-style or plain kind string to a MediaKind.
func ParseMediaKind(s string) (MediaKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image":
		return KindImage, nil
	case "video":
		return KindVideo, nil
	default:
		return 0, fmt.Errorf("unknown media kind %q", s)
	}
}

// Tier is the account tier governing watermarking and quality.
type Tier int

const (
	// TierFree is the default tier: watermarked output, standard quality
	TierFree Tier = iota
	// TierPremium skips the watermark and uses higher quality settings
	TierPremium
)

// ParseTier resolves a tier designation supplied by the identity layer.
// Anything other than the premium designations maps to free.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "premium", "lifetime":
		return TierPremium
	default:
		return TierFree
	}
}

// String returns the lowercase name of the tier.
func (t Tier) String() string {
	if t == TierPremium {
		return "premium"
	}
	return "free"
}

// Watermark reports whether output for this tier carries the branding overlay.
func (t Tier) Watermark() bool {
	return t == TierFree
}

// Request describes one conversion batch. It is owned by a single Convert
// call and discarded afterwards; nothing in it is retained.
type Request struct {
	Input        []byte
	OriginalName string
	Kind         MediaKind
	Formats      []string
	Tier         Tier
}

// Snippets holds the three embed-code variants generated for a result.
type Snippets struct {
	HTML     string `json:"html"`
	React    string `json:"react"`
	Markdown string `json:"markdown"`
}

// Result is one successfully converted output format.
// Size always equals len(Payload).
type Result struct {
	Format   string   `json:"format"`
	Filename string   `json:"filename"`
	Size     int      `json:"size"`
	Payload  []byte   `json:"-"`
	Snippets Snippets `json:"codeSnippet"`
}
