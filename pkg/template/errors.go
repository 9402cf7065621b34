package template

import "errors"

// Template errors. Every error returned by this package wraps ErrTemplate.
var (
	ErrTemplate         = errors.New("invalid template")
	ErrMissingReadme    = errors.New("milestone directory has no README.md")
	ErrNotText          = errors.New("file is not valid UTF-8 text")
	ErrEmptyContent     = errors.New("file has no title line")
	ErrRootNotDirectory = errors.New("template root is not a directory")
	ErrBrokenLink       = errors.New("symbolic link target cannot be read")
)
