package config

import "errors"

// Error definitions for config package.
var (
	// Configuration file errors.
	ErrConfigNotFound          = errors.New("configuration file not found")
	ErrConfigFileParse         = errors.New("failed to parse config file")
	ErrUnsupportedConfigFormat = errors.New("unsupported configuration file format")
	// Configuration validation errors.
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrInvalidDuration = errors.New("invalid duration")
)
