package digest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilename(t *testing.T) {
	if got := Filename(date(2025, 6, 1)); got != "daily_2025-06-01.md" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestWriterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "digests")
	w := NewWriter(dir)

	path, err := w.Write(date(2025, 6, 1), []byte("# AI Radar — 2025-06-01\n"))
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if path != filepath.Join(dir, "daily_2025-06-01.md") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != "# AI Radar — 2025-06-01\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriterOverwritesSameDateOnly(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	if _, err := w.Write(date(2025, 6, 1), []byte("first")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if _, err := w.Write(date(2025, 6, 2), []byte("second day")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if _, err := w.Write(date(2025, 6, 1), []byte("rewritten")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	first, err := os.ReadFile(filepath.Join(dir, "daily_2025-06-01.md"))
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(first) != "rewritten" {
		t.Errorf("same-date digest = %q, want rewritten", first)
	}

	second, err := os.ReadFile(filepath.Join(dir, "daily_2025-06-02.md"))
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(second) != "second day" {
		t.Errorf("other date touched: %q", second)
	}
}
