// Package dependencies provides a centralized dependency container for push-issues.
// Related dependencies are grouped together and configured through a fluent API.
package dependencies

import (
	"errors"

	"github.com/lerenn/push-issues/pkg/archive"
	"github.com/lerenn/push-issues/pkg/config"
	"github.com/lerenn/push-issues/pkg/forge"
	"github.com/lerenn/push-issues/pkg/fs"
	"github.com/lerenn/push-issues/pkg/hooks"
	"github.com/lerenn/push-issues/pkg/logger"
	"github.com/lerenn/push-issues/pkg/prompt"
	"github.com/lerenn/push-issues/pkg/template"
)

// Validation errors for missing dependencies.
var (
	ErrFSMissing           = errors.New("fs dependency is required but not set")
	ErrConfigMissing       = errors.New("config dependency is required but not set")
	ErrLoggerMissing       = errors.New("logger dependency is required but not set")
	ErrPromptMissing       = errors.New("prompt dependency is required but not set")
	ErrHookManagerMissing  = errors.New("hook manager dependency is required but not set")
	ErrForgeManagerMissing = errors.New("forge manager dependency is required but not set")
	ErrLoaderMissing       = errors.New("template loader dependency is required but not set")
	ErrArchiveMissing      = errors.New("archive fetcher dependency is required but not set")
)

// Dependencies holds shared dependencies across the application.
type Dependencies struct {
	FS           fs.FS
	Config       config.Manager
	Logger       logger.Logger
	Prompt       prompt.Prompter
	HookManager  hooks.HookManagerInterface
	ForgeManager forge.ManagerInterface
	Loader       template.Loader
	Archive      archive.Fetcher
}

// New creates a new Dependencies instance with sensible defaults.
func New() *Dependencies {
	return &Dependencies{
		FS:           fs.NewFS(),
		Logger:       logger.NewNoopLogger(),
		Prompt:       prompt.NewPrompt(),
		HookManager:  hooks.NewHookManager(),
		ForgeManager: forge.NewManager(nil),
		// Config, Loader and Archive depend on the final FS and Logger, so
		// they are set via With* methods.
	}
}

// WithFS sets the filesystem and returns the instance for chaining.
func (d *Dependencies) WithFS(fs fs.FS) *Dependencies {
	d.FS = fs
	return d
}

// WithConfig sets the config manager and returns the instance for chaining.
func (d *Dependencies) WithConfig(cfg config.Manager) *Dependencies {
	d.Config = cfg
	return d
}

// WithLogger sets the logger and returns the instance for chaining.
func (d *Dependencies) WithLogger(logger logger.Logger) *Dependencies {
	d.Logger = logger
	return d
}

// WithPrompt sets the prompt and returns the instance for chaining.
func (d *Dependencies) WithPrompt(prompt prompt.Prompter) *Dependencies {
	d.Prompt = prompt
	return d
}

// WithHookManager sets the hook manager and returns the instance for chaining.
func (d *Dependencies) WithHookManager(hm hooks.HookManagerInterface) *Dependencies {
	d.HookManager = hm
	return d
}

// WithForgeManager sets the forge manager and returns the instance for chaining.
func (d *Dependencies) WithForgeManager(fm forge.ManagerInterface) *Dependencies {
	d.ForgeManager = fm
	return d
}

// WithLoader sets the template loader and returns the instance for chaining.
func (d *Dependencies) WithLoader(loader template.Loader) *Dependencies {
	d.Loader = loader
	return d
}

// WithArchive sets the archive fetcher and returns the instance for chaining.
func (d *Dependencies) WithArchive(fetcher archive.Fetcher) *Dependencies {
	d.Archive = fetcher
	return d
}

// dependencyCheck represents a dependency validation check.
type dependencyCheck struct {
	dep interface{}
	err error
}

// Validate checks that all required dependencies are set and returns an error if any are missing.
func (d *Dependencies) Validate() error {
	checks := []dependencyCheck{
		{d.FS, ErrFSMissing},
		{d.Config, ErrConfigMissing},
		{d.Logger, ErrLoggerMissing},
		{d.Prompt, ErrPromptMissing},
		{d.HookManager, ErrHookManagerMissing},
		{d.ForgeManager, ErrForgeManagerMissing},
		{d.Loader, ErrLoaderMissing},
		{d.Archive, ErrArchiveMissing},
	}

	for _, check := range checks {
		if check.dep == nil {
			return check.err
		}
	}
	return nil
}
