// Package scratch provides uniquely named temp-file paths for the video
// conversion pipeline. Uniqueness comes from random UUIDs rather than
// timestamps, so concurrent acquisitions in the same millisecond never
// collide.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"file-bag/internal/logging"

	"github.com/google/uuid"
)

// Space hands out unique paths under a single scratch directory. It holds no
// mutable state and is safe for concurrent use.
type Space struct {
	dir string
}

// New creates a Space rooted at dir, creating the directory if needed and
// verifying it is writable.
func New(dir string) (*Space, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write-probe-"+uuid.NewString())
	if err := os.WriteFile(probe, []byte("probe"), 0644); err != nil {
		return nil, fmt.Errorf("scratch directory %s is not writable: %w", dir, err)
	}
	if err := os.Remove(probe); err != nil {
		logging.Warn("failed to remove scratch write probe %s: %v", probe, err)
	}

	return &Space{dir: dir}, nil
}

// Dir returns the scratch directory root.
func (s *Space) Dir() string {
	return s.dir
}

// Acquire returns a unique path under the scratch directory. The prefix keys
// the purpose of the file ("in", "out") and ext is the desired extension,
// with or without the leading dot. No file is created; the caller owns the
// path until Release.
func (s *Space) Acquire(prefix, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	name := fmt.Sprintf("%s-%s", prefix, uuid.NewString())
	if ext != "" {
		name += "." + ext
	}
	return filepath.Join(s.dir, name)
}

// Release removes the file at path, best effort. A missing file is fine
// (the acquisition may never have materialized); any other removal failure
// is logged and swallowed since it cannot affect an already-obtained result.
func (s *Space) Release(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.Warn("failed to remove scratch file %s: %v", path, err)
	}
}
