package forge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/lerenn/push-issues/pkg/issue"
	"github.com/lerenn/push-issues/pkg/logger"
)

const (
	// GitHubName is the name identifier for GitHub forge.
	GitHubName = "github"
	// DefaultTimeout bounds a single GitHub API request.
	DefaultTimeout = 30 * time.Second
	// pageSize is the maximum page size accepted by the GitHub API.
	pageSize = 100
)

// GitHub represents the GitHub forge implementation.
type GitHub struct {
	client  *github.Client
	project issue.Reference
	timeout time.Duration
	logger  logger.Logger
}

// NewGitHub creates a new GitHub forge instance bound to a project.
func NewGitHub(params Params) (*GitHub, error) {
	if params.Project.Owner == "" || params.Project.Repository == "" {
		return nil, fmt.Errorf("%w: empty project", issue.ErrInvalidReference)
	}

	client := github.NewClient(nil)
	if params.Token != "" {
		client = client.WithAuthToken(params.Token)
	}
	if params.BaseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(params.BaseURL, params.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub base URL %q: %w", params.BaseURL, err)
		}
	}

	if params.Timeout <= 0 {
		params.Timeout = DefaultTimeout
	}
	if params.Logger == nil {
		params.Logger = logger.NewNoopLogger()
	}

	return &GitHub{
		client:  client,
		project: params.Project,
		timeout: params.Timeout,
		logger:  params.Logger,
	}, nil
}

// Name returns the name of the forge.
func (g *GitHub) Name() string {
	return GitHubName
}

// Project returns the project the forge is bound to.
func (g *GitHub) Project() issue.Reference {
	return g.project
}

// ListMilestones lists every milestone of the project, open and closed.
func (g *GitHub) ListMilestones(ctx context.Context) ([]issue.Milestone, error) {
	opts := &github.MilestoneListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	var milestones []issue.Milestone
	for {
		g.logger.Logf("Listing milestones of %s (page %d)", g.project, max(opts.Page, 1))

		reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
		page, resp, err := g.client.Issues.ListMilestones(reqCtx, g.project.Owner, g.project.Repository, opts)
		cancel()
		if err != nil {
			return nil, g.handleGitHubError(ctx, "list milestones", err, resp)
		}

		for _, m := range page {
			milestones = append(milestones, toMilestone(m))
		}

		if resp.NextPage == 0 {
			return milestones, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListIssues lists every issue of the project attached to the given milestone.
// Pull requests are excluded.
func (g *GitHub) ListIssues(ctx context.Context, milestone int) ([]issue.Info, error) {
	filter := "*"
	if milestone > 0 {
		filter = strconv.Itoa(milestone)
	}
	opts := &github.IssueListByRepoOptions{
		Milestone:   filter,
		State:       "all",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	var issues []issue.Info
	for {
		g.logger.Logf("Listing issues of %s with milestone %s (page %d)", g.project, filter, max(opts.Page, 1))

		reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
		page, resp, err := g.client.Issues.ListByRepo(reqCtx, g.project.Owner, g.project.Repository, opts)
		cancel()
		if err != nil {
			return nil, g.handleGitHubError(ctx, "list issues", err, resp)
		}

		for _, i := range page {
			if i.IsPullRequest() {
				continue
			}
			issues = append(issues, toInfo(i))
		}

		if resp.NextPage == 0 {
			return issues, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateMilestone creates a milestone and returns it with its assigned number.
func (g *GitHub) CreateMilestone(ctx context.Context, title, description string) (issue.Milestone, error) {
	reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	m, resp, err := g.client.Issues.CreateMilestone(reqCtx, g.project.Owner, g.project.Repository, &github.Milestone{
		Title:       github.String(title),
		Description: github.String(description),
	})
	if err != nil {
		return issue.Milestone{}, g.handleGitHubError(ctx, "create milestone", err, resp)
	}

	return toMilestone(m), nil
}

// CreateIssue creates an issue attached to a milestone.
func (g *GitHub) CreateIssue(ctx context.Context, title, body string, milestone int) (issue.Info, error) {
	reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	}
	if milestone > 0 {
		req.Milestone = github.Int(milestone)
	}

	i, resp, err := g.client.Issues.Create(reqCtx, g.project.Owner, g.project.Repository, req)
	if err != nil {
		return issue.Info{}, g.handleGitHubError(ctx, "create issue", err, resp)
	}

	return toInfo(i), nil
}

// handleGitHubError classifies GitHub API errors. ctx is the caller's
// context: its cancellation is returned as is, never as a timeout.
func (g *GitHub) handleGitHubError(ctx context.Context, op string, err error, resp *github.Response) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}

	apiErr := &APIError{Op: op, Kind: ErrUnexpected, Err: err}
	if resp != nil && resp.Response != nil {
		apiErr.StatusCode = resp.StatusCode
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var netErr net.Error

	switch {
	case errors.As(err, &rateErr):
		apiErr.Kind = ErrRateLimited
		if !rateErr.Rate.Reset.Time.IsZero() {
			apiErr.RetryAfter = time.Until(rateErr.Rate.Reset.Time)
		}
	case errors.As(err, &abuseErr):
		apiErr.Kind = ErrRateLimited
		if abuseErr.RetryAfter != nil {
			apiErr.RetryAfter = *abuseErr.RetryAfter
		}
	case errors.Is(err, context.DeadlineExceeded):
		apiErr.Kind = ErrTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		apiErr.Kind = ErrTimeout
	case resp != nil && resp.Response != nil:
		classifyStatus(apiErr, resp.Response)
	case errors.As(err, &netErr):
		apiErr.Kind = ErrNetwork
	}

	if apiErr.RetryAfter < 0 {
		apiErr.RetryAfter = 0
	}
	return apiErr
}

// classifyStatus sets the error kind, and retry hint, from an HTTP response.
func classifyStatus(apiErr *APIError, resp *http.Response) {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.Kind = ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		apiErr.Kind = ErrUnauthorized
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			apiErr.Kind = ErrRateLimited
			apiErr.RetryAfter = parseRetryAfter(resp.Header)
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		apiErr.Kind = ErrRateLimited
		apiErr.RetryAfter = parseRetryAfter(resp.Header)
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Kind = ErrNotFound
	case resp.StatusCode == http.StatusUnprocessableEntity, resp.StatusCode == http.StatusBadRequest:
		apiErr.Kind = ErrValidation
	case resp.StatusCode == http.StatusRequestTimeout:
		apiErr.Kind = ErrTimeout
	case resp.StatusCode >= http.StatusInternalServerError:
		apiErr.Kind = ErrServer
	}
}

// parseRetryAfter reads a Retry-After header expressed in seconds.
func parseRetryAfter(header http.Header) time.Duration {
	seconds, err := strconv.Atoi(header.Get("Retry-After"))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func toMilestone(m *github.Milestone) issue.Milestone {
	return issue.Milestone{
		Number: m.GetNumber(),
		Title:  m.GetTitle(),
		State:  m.GetState(),
		URL:    m.GetHTMLURL(),
	}
}

func toInfo(i *github.Issue) issue.Info {
	info := issue.Info{
		Number: i.GetNumber(),
		Title:  i.GetTitle(),
		State:  i.GetState(),
		URL:    i.GetHTMLURL(),
	}
	if i.Milestone != nil {
		info.MilestoneNumber = i.Milestone.GetNumber()
	}
	return info
}
