package digest

import (
	"os"
	"path/filepath"

	"github.com/agentstation/utc"

	"github.com/agentstation/radar/pkg/constants"
	"github.com/agentstation/radar/pkg/dataset"
	"github.com/agentstation/radar/pkg/errors"
)

// Writer persists rendered digests under the digest directory, one file
// per calendar date.
type Writer struct {
	dir string
}

// NewWriter creates a digest writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the digest directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Filename returns the digest filename for a date.
func Filename(date utc.Time) string {
	return constants.DigestFilePrefix + dataset.FormatDate(date) + ".md"
}

// Write stores the rendered digest for a date and returns the written
// path. A digest for the same date is overwritten; other dates are
// never touched.
func (w *Writer) Write(date utc.Time, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", w.dir, err)
	}

	path := filepath.Join(w.dir, Filename(date))
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return path, nil
}
