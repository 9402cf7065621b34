package hooks

import "errors"

// ErrNilHook is returned when registering a nil hook.
var ErrNilHook = errors.New("hook cannot be nil")
