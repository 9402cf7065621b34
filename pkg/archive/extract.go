package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lerenn/push-issues/pkg/template"
)

// maxEntrySize bounds a single extracted file.
const maxEntrySize = 16 << 20

func (f *realFetcher) extractTarGz(body io.Reader, dest string) error {
	gz, err := gzip.NewReader(body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}
	defer func() { _ = gz.Close() }()

	return f.extractTar(gz, dest)
}

func (f *realFetcher) extractTar(body io.Reader, dest string) error {
	tr := tar.NewReader(body)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrArchive, err)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			target, err := f.entryPath(dest, header.Name)
			if err != nil {
				return err
			}
			if err := f.fs.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("%w: %w", ErrArchive, err)
			}
		case tar.TypeReg:
			if err := f.writeEntry(dest, header.Name, tr); err != nil {
				return err
			}
		default:
			f.logger.Logf("Skipping archive entry %s of type %c", header.Name, header.Typeflag)
		}
	}
}

func (f *realFetcher) extractZip(body io.Reader, dest string) error {
	// zip needs random access, so the body is spooled to a temporary file.
	tmp, err := f.fs.CreateTemp("", "push-issues-*.zip")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}
	defer func() {
		_ = tmp.Close()
		_ = f.fs.RemoveAll(tmp.Name())
	}()

	size, err := io.Copy(tmp, body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}

	zr, err := zip.NewReader(tmp, size)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}

	for _, entry := range zr.File {
		mode := entry.Mode()
		switch {
		case mode.IsDir():
			target, err := f.entryPath(dest, entry.Name)
			if err != nil {
				return err
			}
			if err := f.fs.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("%w: %w", ErrArchive, err)
			}
		case mode.IsRegular():
			if err := f.writeZipEntry(dest, entry); err != nil {
				return err
			}
		default:
			f.logger.Logf("Skipping archive entry %s with mode %v", entry.Name, mode)
		}
	}
	return nil
}

func (f *realFetcher) writeZipEntry(dest string, entry *zip.File) error {
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrArchive, entry.Name, err)
	}
	defer func() { _ = rc.Close() }()

	return f.writeEntry(dest, entry.Name, rc)
}

func (f *realFetcher) writeEntry(dest, name string, r io.Reader) error {
	target, err := f.entryPath(dest, name)
	if err != nil {
		return err
	}

	limited := &io.LimitedReader{R: r, N: maxEntrySize + 1}
	if err := f.fs.CreateFileFromReader(target, limited, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}
	if limited.N == 0 {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrArchive, name, maxEntrySize)
	}
	return nil
}

// entryPath resolves an archive entry name under dest, rejecting names
// that would escape it.
func (f *realFetcher) entryPath(dest, name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}

	target := filepath.Join(dest, filepath.FromSlash(name))
	within, err := f.fs.IsPathWithinBase(dest, target)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}
	if !within {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}

// templateRoot returns dir, or its single subdirectory when the archive
// wraps its content in one top-level directory that is not itself a
// milestone (it has no README.md).
func (f *realFetcher) templateRoot(dir string) (string, error) {
	entries, err := f.fs.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}

	var visible []os.DirEntry
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), ".") {
			visible = append(visible, entry)
		}
	}
	if len(visible) != 1 || !visible[0].IsDir() {
		return dir, nil
	}

	wrapper := filepath.Join(dir, visible[0].Name())
	hasReadme, err := f.fs.Exists(filepath.Join(wrapper, template.ReadmeName))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}
	if hasReadme {
		return dir, nil
	}
	return wrapper, nil
}
