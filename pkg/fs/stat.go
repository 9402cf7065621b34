package fs

import "os"

// Stat returns the file info of path, following symbolic links.
func (f *realFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}
