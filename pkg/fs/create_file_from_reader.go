package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CreateFileFromReader creates a file, and its parent directories, from a reader.
// An existing file at path is truncated.
func (f *realFS) CreateFileFromReader(path string, r io.Reader, perm os.FileMode) error {
	if err := f.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return file.Close()
}
