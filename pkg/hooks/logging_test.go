//go:build unit

package hooks

import (
	"errors"
	"testing"

	"github.com/lerenn/push-issues/pkg/logger/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestLoggingHook_OnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mocks.NewMockLogger(ctrl)
	failure := errors.New("boom")

	l.EXPECT().Logf("Operation failed: %s, error: %v", "ApplyPlan", failure)

	err := NewLoggingHook(l).OnError(&HookContext{OperationName: "ApplyPlan", Error: failure})

	assert.NoError(t, err)
}
