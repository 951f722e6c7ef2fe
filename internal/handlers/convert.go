package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"file-bag/internal/convert"
	"file-bag/internal/logging"

	"github.com/gabriel-vasile/mimetype"
)

// convertedFile is one entry in the conversion response. Data is a base64
// data URL so the browser can offer the file without a second round trip.
type convertedFile struct {
	Format   string           `json:"format"`
	Filename string           `json:"filename"`
	Size     int              `json:"size"`
	Data     string           `json:"data"`
	Snippets convert.Snippets `json:"codeSnippet"`
}

type rateLimitInfo struct {
	Remaining int    `json:"remaining"`
	ResetAt   *int64 `json:"resetAt"`
}

type convertResponse struct {
	Success   bool            `json:"success"`
	Results   []convertedFile `json:"results"`
	RateLimit rateLimitInfo   `json:"rateLimit"`
}

// ConvertUpload runs one conversion batch for an uploaded file.
// POST /api/convert (multipart: file, formats; tier via X-User-Tier or form)
func (h *Handlers) ConvertUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeJSONError(w, "Invalid or oversized upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close upload: %v", err)
		}
	}()

	formats, err := parseFormats(r.FormValue("formats"))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	input, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, "Failed to read upload", http.StatusBadRequest)
		return
	}
	if len(input) == 0 {
		writeJSONError(w, "Uploaded file is empty", http.StatusBadRequest)
		return
	}

	kind, err := sniffMediaKind(input)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tier := resolveTier(r)
	identifier := resolveIdentifier(r)

	rl := rateLimitInfo{Remaining: 999999}
	if tier == convert.TierFree {
		status, err := h.quota.Consume(r.Context(), identifier, h.config.DailyFreeConversions)
		if err != nil {
			logging.Error("quota check failed for %s: %v", identifier, err)
			writeJSONError(w, "Rate limit check failed", http.StatusInternalServerError)
			return
		}
		if !status.Allowed {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			if err := json.NewEncoder(w).Encode(map[string]interface{}{
				"error": "Rate limit exceeded",
				"message": fmt.Sprintf("You've reached your daily limit of %d conversions. Resets at %s",
					h.config.DailyFreeConversions, status.ResetAt.Format(time.RFC1123)),
				"resetAt": status.ResetAt.Unix(),
			}); err != nil {
				logging.Error("failed to encode JSON response: %v", err)
			}
			return
		}
		reset := status.ResetAt.Unix()
		rl = rateLimitInfo{Remaining: status.Remaining, ResetAt: &reset}
	}

	results, err := h.converter.Convert(r.Context(), convert.Request{
		Input:        input,
		OriginalName: header.Filename,
		Kind:         kind,
		Formats:      formats,
		Tier:         tier,
	})
	if err != nil {
		logging.Error("conversion batch failed for %q: %v", header.Filename, err)
		writeJSONError(w, "Conversion failed", http.StatusInternalServerError)
		return
	}

	// Zero successful formats is a distinct failure for the client even
	// though the orchestrator treats it as a valid (empty) outcome.
	if len(results) == 0 {
		writeJSONError(w, "Conversion failed for all requested formats", http.StatusUnprocessableEntity)
		return
	}

	files := make([]convertedFile, len(results))
	for i, res := range results {
		files[i] = convertedFile{
			Format:   res.Format,
			Filename: res.Filename,
			Size:     res.Size,
			Data: fmt.Sprintf("data:%s;base64,%s",
				convert.MIMEType(kind, res.Format),
				base64.StdEncoding.EncodeToString(res.Payload)),
			Snippets: res.Snippets,
		}
	}

	writeJSON(w, convertResponse{
		Success:   true,
		Results:   files,
		RateLimit: rl,
	})
}

// ListFormats returns the static output-format catalog.
// GET /api/formats
func (h *Handlers) ListFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string][]string{
		"image": convert.Formats(convert.KindImage),
		"video": convert.Formats(convert.KindVideo),
	})
}

func parseFormats(raw string) ([]string, error) {
	if raw == "" {
		return nil, fmt.Errorf("No formats specified")
	}
	var formats []string
	if err := json.Unmarshal([]byte(raw), &formats); err != nil {
		return nil, fmt.Errorf("Invalid formats field")
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("At least one format must be selected")
	}
	return formats, nil
}

// sniffMediaKind classifies the upload by content, not by client-supplied
// Content-Type.
func sniffMediaKind(input []byte) (convert.MediaKind, error) {
	mime := mimetype.Detect(input).String()
	switch {
	case strings.HasPrefix(mime, "image/"):
		return convert.KindImage, nil
	case strings.HasPrefix(mime, "video/"):
		return convert.KindVideo, nil
	default:
		return 0, fmt.Errorf("Invalid file type %s. Only images and videos are supported", mime)
	}
}

func resolveTier(r *http.Request) convert.Tier {
	if v := r.Header.Get("X-User-Tier"); v != "" {
		return convert.ParseTier(v)
	}
	return convert.ParseTier(r.FormValue("tier"))
}

// resolveIdentifier keys the quota window: the upstream user id when present,
// otherwise the client address.
func resolveIdentifier(r *http.Request) string {
	if v := r.Header.Get("X-User-ID"); v != "" {
		return v
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
