// Package defaulthooks provides the default hook set of push-issues.
package defaulthooks

import (
	"github.com/lerenn/push-issues/pkg/hooks"
	"github.com/lerenn/push-issues/pkg/logger"
)

// NewDefaultHooksManager creates a hooks manager logging every given operation.
func NewDefaultHooksManager(l logger.Logger, operations ...string) (hooks.HookManagerInterface, error) {
	hm := hooks.NewHookManager()

	if err := hooks.NewLoggingHook(l).RegisterForOperations(hm, operations...); err != nil {
		return nil, err
	}

	return hm, nil
}
