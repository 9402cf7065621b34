package archive

import (
	"errors"
	"fmt"
)

// Archive errors.
var (
	// ErrArchive wraps every failure to fetch or extract an archive.
	ErrArchive = errors.New("archive error")

	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported archive format", ErrArchive)
	ErrUnsafePath        = fmt.Errorf("%w: entry escapes extraction directory", ErrArchive)
)
