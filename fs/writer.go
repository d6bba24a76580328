// Package fs writes the final text artifact to disk or a stream.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer delivers processed output either to a file or to a fallback
// stream when no path is given.
type Writer struct {
	stdout io.Writer
}

// NewWriter creates a Writer that falls back to stdout.
func NewWriter(stdout io.Writer) *Writer {
	return &Writer{stdout: stdout}
}

// Write stores content at path, or copies it to the fallback stream
// when path is empty. File writes are atomic: content lands in a
// temporary file in the target directory and is renamed into place, so
// a crash mid-write never leaves a truncated artifact.
func (w *Writer) Write(path, content string) error {
	if path == "" {
		_, err := io.WriteString(w.stdout, content)
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
