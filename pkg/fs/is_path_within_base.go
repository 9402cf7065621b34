package fs

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IsPathWithinBase checks if a target path is within the base path.
func (f *realFS) IsPathWithinBase(basePath, targetPath string) (bool, error) {
	if basePath == "" && targetPath == "" {
		return true, nil
	}
	if basePath == "" {
		return false, nil
	}

	// Archive entries may carry backslashes regardless of the host OS
	normalizedBase := filepath.Clean(strings.ReplaceAll(basePath, "\\", "/"))
	normalizedTarget := filepath.Clean(strings.ReplaceAll(targetPath, "\\", "/"))

	absBase, err := filepath.Abs(normalizedBase)
	if err != nil {
		return false, fmt.Errorf("%w: base path: %w", ErrPathResolution, err)
	}

	absTarget, err := filepath.Abs(normalizedTarget)
	if err != nil {
		return false, fmt.Errorf("%w: target path: %w", ErrPathResolution, err)
	}

	relPath, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return false, err
	}

	return relPath != ".." && !strings.HasPrefix(relPath, ".."+string(filepath.Separator)), nil
}
