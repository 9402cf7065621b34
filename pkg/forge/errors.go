package forge

import (
	"errors"
	"fmt"
	"time"
)

// Forge-specific errors.
var (
	ErrUnsupportedForge = errors.New("unsupported forge")
	ErrRateLimited      = errors.New("rate limited by forge API")
	ErrServer           = errors.New("forge API server error")
	ErrTimeout          = errors.New("forge API request timed out")
	ErrNetwork          = errors.New("forge API unreachable")
	ErrUnauthorized     = errors.New("unauthorized access to forge API")
	ErrNotFound         = errors.New("forge resource not found")
	ErrValidation       = errors.New("forge API rejected the request")
	ErrUnexpected       = errors.New("unexpected forge API failure")
)

// APIError is a classified failure of a forge API call.
// It matches both its Kind sentinel and the underlying error with errors.Is.
type APIError struct {
	Op         string
	Kind       error
	StatusCode int
	// RetryAfter is the delay the server asked for, zero when unknown.
	RetryAfter time.Duration
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %v (HTTP %d): %v", e.Op, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the classification sentinel and the underlying error.
func (e *APIError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// IsTransient reports whether err is worth retrying: rate limiting,
// timeouts, network failures and server errors.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrNetwork) ||
		errors.Is(err, ErrServer)
}

// RetryAfter returns the delay requested by the server, if any.
func RetryAfter(err error) time.Duration {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return apiErr.RetryAfter
	}
	return 0
}
