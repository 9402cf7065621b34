//go:build unit

package remote

import (
	"context"
	"errors"
	"testing"

	forgemocks "github.com/lerenn/push-issues/pkg/forge/mocks"
	"github.com/lerenn/push-issues/pkg/issue"
	"github.com/lerenn/push-issues/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFetcher_Fetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockForge := forgemocks.NewMockForge(ctrl)
	fetcher := NewFetcher(NewFetcherParams{Forge: mockForge, Logger: logger.NewNoopLogger()})

	mockForge.EXPECT().ListMilestones(gomock.Any()).Return([]issue.Milestone{
		{Number: 1, Title: "milestone-1"},
		{Number: 2, Title: "milestone-2"},
	}, nil)
	mockForge.EXPECT().ListIssues(gomock.Any(), 0).Return([]issue.Info{
		{Number: 5, Title: "issue-1.1", MilestoneNumber: 1},
		{Number: 6, Title: "issue-2.1", MilestoneNumber: 2},
	}, nil)

	snapshot, err := fetcher.Fetch(context.Background())
	require.NoError(t, err)

	assert.Len(t, snapshot.Milestones(), 2)
	_, ok := snapshot.Issue("milestone-1", "issue-1.1")
	assert.True(t, ok)
	_, ok = snapshot.Issue("milestone-2", "issue-2.1")
	assert.True(t, ok)
	_, ok = snapshot.Issue("milestone-1", "issue-2.1")
	assert.False(t, ok)
}

func TestFetcher_Fetch_MilestonesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockForge := forgemocks.NewMockForge(ctrl)
	fetcher := NewFetcher(NewFetcherParams{Forge: mockForge})

	cause := errors.New("unauthorized")
	mockForge.EXPECT().ListMilestones(gomock.Any()).Return(nil, cause)

	_, err := fetcher.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, cause)
}

func TestFetcher_Fetch_IssuesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockForge := forgemocks.NewMockForge(ctrl)
	fetcher := NewFetcher(NewFetcherParams{Forge: mockForge})

	mockForge.EXPECT().ListMilestones(gomock.Any()).Return(nil, nil)
	mockForge.EXPECT().ListIssues(gomock.Any(), 0).Return(nil, errors.New("boom"))

	_, err := fetcher.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
}
