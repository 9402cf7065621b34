package pusher

import (
	"context"
	"fmt"
	"os"

	"github.com/lerenn/push-issues/pkg/config"
	"github.com/lerenn/push-issues/pkg/dependencies"
	"github.com/lerenn/push-issues/pkg/executor"
	"github.com/lerenn/push-issues/pkg/hooks"
	"github.com/lerenn/push-issues/pkg/logger"
	"github.com/lerenn/push-issues/pkg/report"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=pusher.go -destination=mocks/pusher.gen.go -package=mocks

// Pusher interface provides the push-issues workflow.
type Pusher interface {
	// Push creates in the target project every milestone and issue of the
	// template at source that does not exist yet. The report is returned
	// whenever a plan was computed, including alongside ErrItemsFailed and
	// cancellation errors.
	Push(ctx context.Context, source string, opts PushOpts) (*report.Report, error)
	// SetLogger sets the logger for this Pusher instance.
	SetLogger(logger logger.Logger)
}

// PushOpts contains options for Push. Zero values fall back to the configuration.
type PushOpts struct {
	Repository string
	// TokenEnv names the environment variable holding the token.
	TokenEnv    string
	Token       string
	Workers     int
	MaxAttempts int
	DryRun      bool
	// Yes skips the confirmation prompt.
	Yes bool
}

// NewPusherParams contains parameters for creating a new Pusher instance.
type NewPusherParams struct {
	Dependencies *dependencies.Dependencies
	// Getenv reads environment variables; defaults to os.Getenv.
	Getenv func(key string) string
}

type realPusher struct {
	deps   *dependencies.Dependencies
	getenv func(key string) string
}

// NewPusher creates a new Pusher instance.
func NewPusher(params NewPusherParams) (Pusher, error) {
	deps := params.Dependencies
	if deps == nil {
		deps = dependencies.New()
	}
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if params.Getenv == nil {
		params.Getenv = os.Getenv
	}

	return &realPusher{
		deps:   deps,
		getenv: params.Getenv,
	}, nil
}

// VerbosePrint logs a formatted message using the current logger.
func (p *realPusher) VerbosePrint(msg string, args ...interface{}) {
	if p.deps.Logger != nil {
		p.deps.Logger.Logf(msg, args...)
	}
}

// SetLogger sets the logger for this Pusher instance.
func (p *realPusher) SetLogger(logger logger.Logger) {
	p.deps.Logger = logger
}

// getConfig loads the configuration with fallback and applies the options on top of it.
func (p *realPusher) getConfig(opts PushOpts) (config.Config, error) {
	cfg, err := p.deps.Config.GetConfigWithFallback()
	if err != nil {
		return config.Config{}, err
	}

	if opts.Repository != "" {
		cfg.Repository = opts.Repository
	}
	if opts.TokenEnv != "" {
		cfg.TokenEnv = opts.TokenEnv
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	if opts.MaxAttempts > 0 {
		cfg.Retry.MaxAttempts = opts.MaxAttempts
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// retryPolicy converts the retry configuration for the executor.
func retryPolicy(cfg config.Config) executor.RetryPolicy {
	return executor.RetryPolicy{
		MaxAttempts:  cfg.Retry.MaxAttempts,
		InitialDelay: cfg.Retry.InitialDelay.Duration,
		MaxDelay:     cfg.Retry.MaxDelay.Duration,
		Multiplier:   cfg.Retry.Multiplier,
		Jitter:       cfg.Retry.Jitter,
	}
}

// executeWithHooks executes an operation with pre and post hooks.
func (p *realPusher) executeWithHooks(
	operationName string, params map[string]interface{}, operation func(results map[string]interface{}) error) error {
	ctx := &hooks.HookContext{
		OperationName: operationName,
		Parameters:    params,
		Results:       make(map[string]interface{}),
		Metadata:      make(map[string]interface{}),
	}
	// Execute pre-hooks (if hook manager is available)
	if err := p.executePreHooks(operationName, ctx); err != nil {
		return err
	}
	// Execute operation
	var resultErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				resultErr = fmt.Errorf("panic in %s: %v", operationName, r)
			}
		}()
		resultErr = operation(ctx.Results)
	}()
	// Update context with results
	ctx.Error = resultErr
	if resultErr == nil {
		ctx.Results["success"] = true
	}
	// Execute post-hooks or error-hooks (if hook manager is available)
	if hookErr := p.executeHooks(operationName, ctx, resultErr); hookErr != nil {
		return hookErr
	}
	return resultErr
}

// executeHooks executes post-hooks or error-hooks based on the operation result.
func (p *realPusher) executeHooks(operationName string, ctx *hooks.HookContext, resultErr error) error {
	if p.deps.HookManager == nil {
		return nil
	}

	if resultErr != nil {
		return p.deps.HookManager.ExecuteErrorHooks(operationName, ctx)
	}
	return p.deps.HookManager.ExecutePostHooks(operationName, ctx)
}

// executePreHooks executes pre-hooks if hook manager is available.
func (p *realPusher) executePreHooks(operationName string, ctx *hooks.HookContext) error {
	if p.deps.HookManager == nil {
		return nil
	}
	return p.deps.HookManager.ExecutePreHooks(operationName, ctx)
}
