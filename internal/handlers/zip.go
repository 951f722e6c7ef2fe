package handlers

import (
	"archive/zip"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"file-bag/internal/logging"
)

// BundleZip streams the uploaded files back as a single zip archive. The
// client posts the already-converted outputs as multipart parts named "files".
// POST /api/zip
func (h *Handlers) BundleZip(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize*4)

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeJSONError(w, "Invalid or oversized upload", http.StatusBadRequest)
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		writeJSONError(w, "No files to bundle", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="converted-files.zip"`)

	zw := zip.NewWriter(w)
	for i, header := range r.MultipartForm.File["files"] {
		name := header.Filename
		if name == "" {
			name = fmt.Sprintf("file-%d", i+1)
		}
		if err := addZipEntry(zw, name, header); err != nil {
			// Headers are already out; all we can do is log and stop.
			logging.Error("failed to add %q to archive: %v", name, err)
			break
		}
	}
	if err := zw.Close(); err != nil {
		logging.Error("failed to finalize zip archive: %v", err)
	}
}

func addZipEntry(zw *zip.Writer, name string, header *multipart.FileHeader) error {
	part, err := header.Open()
	if err != nil {
		return err
	}
	defer func() {
		if err := part.Close(); err != nil {
			logging.Warn("failed to close multipart file: %v", err)
		}
	}()

	entry, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, part)
	return err
}
