package remote

import (
	"context"
	"fmt"

	"github.com/lerenn/push-issues/pkg/forge"
	"github.com/lerenn/push-issues/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=fetcher.go -destination=mocks/fetcher.gen.go -package=mocks

// Fetcher reads the remote state of a project.
type Fetcher interface {
	// Fetch returns a snapshot of every milestone and every issue attached
	// to a milestone. Failures are returned, never retried.
	Fetch(ctx context.Context) (*Snapshot, error)
}

// NewFetcherParams contains parameters for creating a new Fetcher.
type NewFetcherParams struct {
	Forge  forge.Forge
	Logger logger.Logger
}

type realFetcher struct {
	forge  forge.Forge
	logger logger.Logger
}

// NewFetcher creates a new Fetcher instance.
func NewFetcher(params NewFetcherParams) Fetcher {
	if params.Logger == nil {
		params.Logger = logger.NewNoopLogger()
	}
	return &realFetcher{
		forge:  params.Forge,
		logger: params.Logger,
	}
}

// Fetch returns a snapshot of the project's milestones and issues.
func (f *realFetcher) Fetch(ctx context.Context) (*Snapshot, error) {
	milestones, err := f.forge.ListMilestones(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	issues, err := f.forge.ListIssues(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	snapshot := NewSnapshot()
	for _, m := range milestones {
		snapshot.AddMilestone(m)
	}
	for _, i := range issues {
		snapshot.AddIssue(i)
	}

	f.logger.Logf("Fetched %d milestone(s) and %d milestone issue(s)", len(milestones), snapshot.IssueCount())
	return snapshot, nil
}
