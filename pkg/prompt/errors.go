// Package prompt provides interactive prompt functionality for push-issues.
package prompt

import "errors"

// Error definitions for prompt package.
var (
	ErrInvalidConfirmationInput = errors.New("invalid input: please enter 'y' or 'n'")
	ErrNotInteractive           = errors.New("standard input is not a terminal")
	ErrEmptyToken               = errors.New("token cannot be empty")
)
