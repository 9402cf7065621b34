// Package config provides configuration management functionality for push-issues.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/lerenn/push-issues/pkg/issue"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Repository string          `yaml:"repository" toml:"repository"`
	TokenEnv   string          `yaml:"token_env" toml:"token_env"`
	BaseURL    string          `yaml:"base_url" toml:"base_url"`
	Workers    int             `yaml:"workers" toml:"workers"`
	Timeout    Duration        `yaml:"timeout" toml:"timeout"`
	Retry      RetryConfig     `yaml:"retry" toml:"retry"`
	RateLimit  RateLimitConfig `yaml:"rate_limit" toml:"rate_limit"`
}

// RetryConfig configures retries of transient write failures.
type RetryConfig struct {
	MaxAttempts  int      `yaml:"max_attempts" toml:"max_attempts"`
	InitialDelay Duration `yaml:"initial_delay" toml:"initial_delay"`
	MaxDelay     Duration `yaml:"max_delay" toml:"max_delay"`
	Multiplier   float64  `yaml:"multiplier" toml:"multiplier"`
	Jitter       bool     `yaml:"jitter" toml:"jitter"`
}

// RateLimitConfig configures the client-side pacing of API calls.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int     `yaml:"burst" toml:"burst"`
}

// Duration is a time.Duration written as a string such as "1s" or "500ms".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDuration, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDuration, err)
	}
	return d.UnmarshalText([]byte(raw))
}

// MarshalYAML formats the duration as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Repository != "" {
		if _, err := issue.ParseReference(c.Repository); err != nil {
			return fmt.Errorf("%w: repository: %w", ErrInvalidConfig, err)
		}
	}
	if strings.TrimSpace(c.TokenEnv) == "" {
		return fmt.Errorf("%w: token_env cannot be empty", ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.Timeout.Duration <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if err := c.Retry.validate(); err != nil {
		return err
	}
	return c.RateLimit.validate()
}

func (r *RetryConfig) validate() error {
	if r.MaxAttempts < 1 {
		return fmt.Errorf("%w: retry.max_attempts must be at least 1, got %d", ErrInvalidConfig, r.MaxAttempts)
	}
	if r.InitialDelay.Duration < 0 || r.MaxDelay.Duration < 0 {
		return fmt.Errorf("%w: retry delays cannot be negative", ErrInvalidConfig)
	}
	if r.MaxDelay.Duration > 0 && r.MaxDelay.Duration < r.InitialDelay.Duration {
		return fmt.Errorf("%w: retry.max_delay (%v) is below retry.initial_delay (%v)",
			ErrInvalidConfig, r.MaxDelay, r.InitialDelay)
	}
	if r.Multiplier < 1 {
		return fmt.Errorf("%w: retry.multiplier must be at least 1, got %v", ErrInvalidConfig, r.Multiplier)
	}
	return nil
}

func (r *RateLimitConfig) validate() error {
	if r.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: rate_limit.requests_per_second cannot be negative", ErrInvalidConfig)
	}
	if r.RequestsPerSecond > 0 && r.Burst < 1 {
		return fmt.Errorf("%w: rate_limit.burst must be at least 1 when limiting", ErrInvalidConfig)
	}
	return nil
}
