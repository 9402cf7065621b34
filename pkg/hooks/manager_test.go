//go:build unit

package hooks

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lerenn/push-issues/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHook records its calls in a shared journal.
type recordingHook struct {
	name     string
	priority int
	journal  *[]string
	err      error
}

func (h *recordingHook) Name() string  { return h.name }
func (h *recordingHook) Priority() int { return h.priority }

func (h *recordingHook) PreExecute(_ *HookContext) error {
	*h.journal = append(*h.journal, "pre:"+h.name)
	return h.err
}

func (h *recordingHook) PostExecute(_ *HookContext) error {
	*h.journal = append(*h.journal, "post:"+h.name)
	return h.err
}

func (h *recordingHook) OnError(_ *HookContext) error {
	*h.journal = append(*h.journal, "error:"+h.name)
	return h.err
}

func TestHookManager_ExecutesByPriority(t *testing.T) {
	var journal []string
	hm := NewHookManager()
	late := &recordingHook{name: "late", priority: 200, journal: &journal}
	early := &recordingHook{name: "early", priority: 10, journal: &journal}

	require.NoError(t, hm.RegisterPreHook("push", late))
	require.NoError(t, hm.RegisterPreHook("push", early))
	require.NoError(t, hm.RegisterPostHook("push", late))
	require.NoError(t, hm.RegisterErrorHook("push", early))

	ctx := &HookContext{OperationName: "push"}
	require.NoError(t, hm.ExecutePreHooks("push", ctx))
	require.NoError(t, hm.ExecutePostHooks("push", ctx))
	require.NoError(t, hm.ExecuteErrorHooks("push", ctx))
	require.NoError(t, hm.ExecutePreHooks("other", ctx))

	assert.Equal(t, []string{"pre:early", "pre:late", "post:late", "error:early"}, journal)
}

func TestHookManager_StopsOnFailure(t *testing.T) {
	var journal []string
	hm := NewHookManager()
	boom := errors.New("boom")
	require.NoError(t, hm.RegisterPreHook("push", &recordingHook{name: "a", priority: 1, journal: &journal, err: boom}))
	require.NoError(t, hm.RegisterPreHook("push", &recordingHook{name: "b", priority: 2, journal: &journal}))

	err := hm.ExecutePreHooks("push", &HookContext{})

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "pre-hook a failed")
	assert.Equal(t, []string{"pre:a"}, journal)
}

func TestHookManager_RejectsNilHook(t *testing.T) {
	hm := NewHookManager()

	assert.ErrorIs(t, hm.RegisterPreHook("push", nil), ErrNilHook)
	assert.ErrorIs(t, hm.RegisterPostHook("push", nil), ErrNilHook)
	assert.ErrorIs(t, hm.RegisterErrorHook("push", nil), ErrNilHook)
}

func TestLoggingHook(t *testing.T) {
	var buf bytes.Buffer
	hm := NewHookManager()
	require.NoError(t, NewLoggingHook(logger.NewWriterLogger(&buf, "")).RegisterForOperations(hm, "push", "plan"))

	ctx := &HookContext{
		OperationName: "push",
		Parameters:    map[string]interface{}{"source": "./template"},
		Results:       map[string]interface{}{"created": 3},
		Error:         errors.New("network down"),
	}
	require.NoError(t, hm.ExecutePreHooks("push", ctx))
	require.NoError(t, hm.ExecutePostHooks("push", ctx))
	require.NoError(t, hm.ExecuteErrorHooks("push", ctx))

	out := buf.String()
	assert.Contains(t, out, "Starting operation: push with params: map[source:./template]")
	assert.Contains(t, out, "Operation completed: push with results: map[created:3]")
	assert.Contains(t, out, "Operation failed: push, error: network down")
}
