// Package cli provides common configuration and utility functions for the push-issues CLI.
package cli

import (
	"github.com/lerenn/push-issues/pkg/config"
	"github.com/lerenn/push-issues/pkg/fs"
	"github.com/lerenn/push-issues/pkg/logger"
)

var (
	// Quiet suppresses all output except errors.
	Quiet bool
	// Verbose enables verbose output.
	Verbose bool
	// ConfigPath specifies a custom config file path.
	ConfigPath string
)

// GetConfigPath returns the config file path that would be used by NewConfigManager.
func GetConfigPath() string {
	if ConfigPath != "" {
		return ConfigPath
	}
	return config.DefaultConfigPath
}

// NewConfigManager creates a new Manager with the appropriate config path.
func NewConfigManager(fileSystem fs.FS) config.Manager {
	return config.NewManager(fileSystem, GetConfigPath())
}

// NewLogger returns the verbose logger when --verbose is set, a noop one otherwise.
func NewLogger() logger.Logger {
	if Verbose && !Quiet {
		return logger.NewVerboseLogger()
	}
	return logger.NewNoopLogger()
}
