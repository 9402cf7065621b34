// Package executor applies a creation plan to a remote issue tracker.
package executor

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/lerenn/push-issues/pkg/forge"
	"github.com/lerenn/push-issues/pkg/issue"
	"github.com/lerenn/push-issues/pkg/logger"
	"github.com/lerenn/push-issues/pkg/plan"
	"github.com/lerenn/push-issues/pkg/remote"
	"github.com/lerenn/push-issues/pkg/report"
	"golang.org/x/sync/errgroup"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=executor.go -destination=mocks/executor.gen.go -package=mocks

// Executor applies plans.
type Executor interface {
	// Execute applies the plan in order and records every outcome. The
	// snapshot is updated as creations succeed. Item failures are reported,
	// not returned; the returned error is either a plan invariant violation
	// or the context error when the run was cancelled, in which case the
	// partial report is returned with it.
	Execute(ctx context.Context, p *plan.Plan, snapshot *remote.Snapshot) (*report.Report, error)
}

// AbandonCheckTimeout bounds the existence check of an item whose create
// request was in flight when the run was cancelled.
const AbandonCheckTimeout = 10 * time.Second

// SleepFunc waits for a duration or until the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// NewExecutorParams contains parameters for creating a new Executor.
type NewExecutorParams struct {
	Forge   forge.Forge
	Limiter Limiter
	Retry   RetryPolicy
	// Workers bounds the concurrent issue creations of one milestone.
	Workers int
	Logger  logger.Logger
	// Sleep and Rand default to a timer-based sleep and a time-seeded source.
	Sleep SleepFunc
	Rand  *rand.Rand
}

type realExecutor struct {
	forge   forge.Forge
	limiter Limiter
	retry   RetryPolicy
	workers int
	logger  logger.Logger
	sleep   SleepFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewExecutor creates a new Executor instance.
func NewExecutor(params NewExecutorParams) Executor {
	if params.Logger == nil {
		params.Logger = logger.NewNoopLogger()
	}
	if params.Limiter == nil {
		params.Limiter = NewLimiter(0, 0)
	}
	if params.Retry.MaxAttempts < 1 {
		params.Retry.MaxAttempts = 1
	}
	if params.Workers < 1 {
		params.Workers = 1
	}
	if params.Sleep == nil {
		params.Sleep = sleepContext
	}
	if params.Rand == nil {
		params.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &realExecutor{
		forge:   params.Forge,
		limiter: params.Limiter,
		retry:   params.Retry,
		workers: params.Workers,
		logger:  params.Logger,
		sleep:   params.Sleep,
		rng:     params.Rand,
	}
}

// Execute applies the plan group by group.
func (e *realExecutor) Execute(ctx context.Context, p *plan.Plan, snapshot *remote.Snapshot) (*report.Report, error) {
	if err := p.Validate(snapshot); err != nil {
		return nil, err
	}

	r := report.New(e.forge.Project().String(), p)
	outcomes := make([]report.Outcome, len(p.Operations))

	var fatal error
	for _, group := range p.Groups() {
		if ctx.Err() != nil {
			break
		}
		if fatal = e.executeGroup(ctx, p, group, snapshot, outcomes); fatal != nil {
			break
		}
	}

	// Slots left empty were never started.
	for idx, op := range p.Operations {
		if outcomes[idx].Status != "" {
			continue
		}
		cause := ctx.Err()
		if fatal != nil {
			cause = fatal
		}
		outcomes[idx] = failed(newOutcome(op), cause)
	}
	r.Add(outcomes...)

	if fatal != nil {
		return r, fatal
	}
	return r, ctx.Err()
}

// executeGroup creates the group's milestone, if any, then its issues on
// the worker pool. Each worker writes its own outcome slot.
func (e *realExecutor) executeGroup(
	ctx context.Context,
	p *plan.Plan,
	group plan.Group,
	snapshot *remote.Snapshot,
	outcomes []report.Outcome,
) error {
	if group.Milestone >= 0 {
		outcome := e.createMilestone(ctx, p.Operations[group.Milestone], snapshot)
		outcomes[group.Milestone] = outcome
		if outcome.Status == report.StatusFailed {
			if ctx.Err() != nil {
				return nil
			}
			for _, idx := range group.Issues {
				outcomes[idx] = failed(newOutcome(p.Operations[idx]),
					fmt.Errorf("%w: %q", ErrMilestoneUnavailable, group.MilestoneTitle))
			}
			return nil
		}
	}

	milestone, exists := snapshot.Milestone(group.MilestoneTitle)
	if !exists {
		return fmt.Errorf("%w: milestone %q is neither on the remote nor created by the plan",
			plan.ErrPlanInvariant, group.MilestoneTitle)
	}

	var eg errgroup.Group
	eg.SetLimit(e.workers)
	for _, idx := range group.Issues {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			outcomes[idx] = e.createIssue(ctx, p.Operations[idx], milestone, snapshot)
			return nil
		})
	}
	return eg.Wait()
}

func (e *realExecutor) createMilestone(ctx context.Context, op plan.Operation, snapshot *remote.Snapshot) report.Outcome {
	return e.withRetries(ctx, op,
		func(ctx context.Context) (int, error) {
			m, err := e.forge.CreateMilestone(ctx, op.Title(), op.Body())
			if err != nil {
				return 0, err
			}
			snapshot.AddMilestone(m)
			return m.Number, nil
		},
		func(ctx context.Context) (int, bool, error) {
			milestones, err := e.forge.ListMilestones(ctx)
			if err != nil {
				return 0, false, err
			}
			for _, m := range milestones {
				if m.Title == op.Title() {
					snapshot.AddMilestone(m)
					return m.Number, true, nil
				}
			}
			return 0, false, nil
		},
	)
}

func (e *realExecutor) createIssue(
	ctx context.Context,
	op plan.Operation,
	milestone issue.Milestone,
	snapshot *remote.Snapshot,
) report.Outcome {
	return e.withRetries(ctx, op,
		func(ctx context.Context) (int, error) {
			info, err := e.forge.CreateIssue(ctx, op.Title(), op.Body(), milestone.Number)
			if err != nil {
				return 0, err
			}
			if info.MilestoneNumber == 0 {
				info.MilestoneNumber = milestone.Number
			}
			snapshot.AddIssue(info)
			return info.Number, nil
		},
		func(ctx context.Context) (int, bool, error) {
			issues, err := e.forge.ListIssues(ctx, milestone.Number)
			if err != nil {
				return 0, false, err
			}
			for _, info := range issues {
				if info.Title == op.Title() {
					snapshot.AddIssue(info)
					return info.Number, true, nil
				}
			}
			return 0, false, nil
		},
	)
}

type createFunc func(ctx context.Context) (number int, err error)

type lookupFunc func(ctx context.Context) (number int, found bool, err error)

// withRetries runs create until it succeeds, fails terminally or the
// attempts are exhausted. Before every retry, lookup checks whether a
// previous attempt created the item despite reporting a failure.
func (e *realExecutor) withRetries(ctx context.Context, op plan.Operation, create createFunc, lookup lookupFunc) report.Outcome {
	outcome := newOutcome(op)

	var lastErr error
	sent := false
	for attempt := 1; attempt <= e.retry.MaxAttempts; attempt++ {
		outcome.Attempts = attempt

		if attempt > 1 {
			delay := e.retryDelay(attempt-1, lastErr)
			e.logger.Logf("Retrying %s in %v (attempt %d/%d): %v", op, delay, attempt, e.retry.MaxAttempts, lastErr)
			if err := e.sleep(ctx, delay); err != nil {
				return e.abandon(ctx, op, outcome, sent, lookup, err)
			}

			number, found, err := e.lookup(ctx, lookup)
			if ctx.Err() != nil {
				return e.abandon(ctx, op, outcome, sent, lookup, ctx.Err())
			}
			if err != nil {
				e.logger.Logf("Existence check for %s failed: %v", op, err)
				lastErr = err
				continue
			}
			if found {
				return existing(e.logger, op, outcome, number)
			}
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return e.abandon(ctx, op, outcome, sent, lookup, err)
		}
		sent = true
		number, err := create(ctx)
		if err == nil {
			e.logger.Logf("Applied %s as #%d", op, number)
			outcome.Status = report.StatusCreated
			outcome.Number = number
			return outcome
		}
		if ctx.Err() != nil {
			return e.abandon(ctx, op, outcome, sent, lookup, ctx.Err())
		}
		lastErr = err
		if !forge.IsTransient(err) {
			return failed(outcome, fmt.Errorf("%w: %w", ErrWriteFailure, err))
		}
	}

	return failed(outcome, fmt.Errorf("%w: %w: %w", ErrWriteFailure, ErrTransientWrite, lastErr))
}

// abandon ends an item that cannot continue. Without cancellation, err is a
// terminal failure. On cancellation, an item whose create request was
// already sent is looked up once more, detached from the cancelled context,
// since the server may have applied it.
func (e *realExecutor) abandon(
	ctx context.Context,
	op plan.Operation,
	outcome report.Outcome,
	sent bool,
	lookup lookupFunc,
	err error,
) report.Outcome {
	if ctx.Err() == nil {
		return failed(outcome, fmt.Errorf("%w: %w", ErrWriteFailure, err))
	}
	if !sent {
		return failed(outcome, ctx.Err())
	}

	checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), AbandonCheckTimeout)
	defer cancel()

	number, found, lookupErr := e.lookup(checkCtx, lookup)
	if lookupErr != nil {
		e.logger.Logf("Existence check for cancelled %s failed: %v", op, lookupErr)
		return failed(outcome, ctx.Err())
	}
	if found {
		return existing(e.logger, op, outcome, number)
	}
	return failed(outcome, ctx.Err())
}

func (e *realExecutor) lookup(ctx context.Context, lookup lookupFunc) (int, bool, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return 0, false, err
	}
	return lookup(ctx)
}

// retryDelay returns the backoff delay for a retry, raised to the
// server's retry-after hint and capped by the policy's maximum delay.
func (e *realExecutor) retryDelay(retry int, lastErr error) time.Duration {
	e.rngMu.Lock()
	delay := NextBackoffDelay(e.retry, retry, e.rng)
	e.rngMu.Unlock()

	if hint := forge.RetryAfter(lastErr); hint > delay {
		delay = hint
	}
	if e.retry.MaxDelay > 0 && delay > e.retry.MaxDelay {
		delay = e.retry.MaxDelay
	}
	return delay
}

func newOutcome(op plan.Operation) report.Outcome {
	return report.Outcome{
		Kind:           op.Kind,
		MilestoneTitle: op.MilestoneTitle(),
		Title:          op.Title(),
	}
}

func existing(l logger.Logger, op plan.Operation, outcome report.Outcome, number int) report.Outcome {
	l.Logf("Found %s already applied as #%d", op, number)
	outcome.Status = report.StatusExisting
	outcome.Number = number
	return outcome
}

func failed(outcome report.Outcome, err error) report.Outcome {
	outcome.Status = report.StatusFailed
	outcome.Err = err
	return outcome
}
