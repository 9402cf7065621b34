package executor

import "errors"

// Executor errors.
var (
	// ErrTransientWrite wraps the last transient failure of an item whose
	// retries are exhausted.
	ErrTransientWrite = errors.New("transient write failure")
	// ErrWriteFailure reports an item that could not be created.
	ErrWriteFailure = errors.New("write failed")
	// ErrMilestoneUnavailable reports an issue whose milestone could not be created.
	ErrMilestoneUnavailable = errors.New("milestone unavailable")
)
