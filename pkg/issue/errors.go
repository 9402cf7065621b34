package issue

import "errors"

// Issue-specific error types.
var (
	ErrInvalidReference = errors.New("invalid repository reference, expected owner/repository")
)
