// Package pusher provides the push-issues workflow and its error definitions.
package pusher

import "errors"

// Error definitions for pusher package.
var (
	ErrRepositoryRequired = errors.New("target repository is required: use --repo or set repository in the configuration")
	ErrMissingToken       = errors.New("no API token available")
	ErrConfirmationNeeded = errors.New("confirmation required: rerun with --yes to create items without a terminal")
	ErrAborted            = errors.New("aborted by user")
	ErrItemsFailed        = errors.New("some items could not be created")
)
