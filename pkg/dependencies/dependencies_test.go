//go:build unit

package dependencies

import (
	"testing"

	"github.com/lerenn/push-issues/pkg/archive"
	"github.com/lerenn/push-issues/pkg/config"
	"github.com/lerenn/push-issues/pkg/logger"
	"github.com/lerenn/push-issues/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func complete() *Dependencies {
	deps := New()
	return deps.
		WithConfig(config.NewManager(deps.FS, config.DefaultConfigPath)).
		WithLoader(template.NewLoader(template.NewLoaderParams{FS: deps.FS})).
		WithArchive(archive.NewFetcher(archive.NewFetcherParams{FS: deps.FS}))
}

// TestDependencies_New_Defaults tests that New() creates a Dependencies instance with proper defaults
func TestDependencies_New_Defaults(t *testing.T) {
	deps := New()

	assert.NotNil(t, deps.FS)
	assert.NotNil(t, deps.Logger)
	assert.NotNil(t, deps.Prompt)
	assert.NotNil(t, deps.HookManager)
	assert.NotNil(t, deps.ForgeManager)
	assert.Nil(t, deps.Config)
	assert.Nil(t, deps.Loader)
	assert.Nil(t, deps.Archive)
	assert.ErrorIs(t, deps.Validate(), ErrConfigMissing)
}

func TestDependencies_Validate_Complete(t *testing.T) {
	require.NoError(t, complete().Validate())
}

func TestDependencies_Validate_Missing(t *testing.T) {
	tests := []struct {
		name   string
		unset  func(d *Dependencies)
		expect error
	}{
		{name: "fs", unset: func(d *Dependencies) { d.FS = nil }, expect: ErrFSMissing},
		{name: "config", unset: func(d *Dependencies) { d.Config = nil }, expect: ErrConfigMissing},
		{name: "logger", unset: func(d *Dependencies) { d.Logger = nil }, expect: ErrLoggerMissing},
		{name: "prompt", unset: func(d *Dependencies) { d.Prompt = nil }, expect: ErrPromptMissing},
		{name: "hook manager", unset: func(d *Dependencies) { d.HookManager = nil }, expect: ErrHookManagerMissing},
		{name: "forge manager", unset: func(d *Dependencies) { d.ForgeManager = nil }, expect: ErrForgeManagerMissing},
		{name: "loader", unset: func(d *Dependencies) { d.Loader = nil }, expect: ErrLoaderMissing},
		{name: "archive", unset: func(d *Dependencies) { d.Archive = nil }, expect: ErrArchiveMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := complete()
			tt.unset(deps)
			assert.ErrorIs(t, deps.Validate(), tt.expect)
		})
	}
}

// TestDependencies_Validate_AllMissing tests validation failure when all dependencies are missing
func TestDependencies_Validate_AllMissing(t *testing.T) {
	deps := &Dependencies{}

	// The first missing dependency is reported.
	assert.ErrorIs(t, deps.Validate(), ErrFSMissing)
}

func TestDependencies_With(t *testing.T) {
	l := logger.NewNoopLogger()
	deps := New().WithLogger(l)

	assert.Same(t, l, deps.Logger)
}
