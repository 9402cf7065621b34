package remote

import "errors"

// Remote state errors.
var (
	ErrFetch = errors.New("failed to fetch remote state")
)
