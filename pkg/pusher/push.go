package pusher

import (
	"context"
	"fmt"

	"github.com/lerenn/push-issues/pkg/archive"
	"github.com/lerenn/push-issues/pkg/config"
	"github.com/lerenn/push-issues/pkg/executor"
	"github.com/lerenn/push-issues/pkg/forge"
	"github.com/lerenn/push-issues/pkg/issue"
	"github.com/lerenn/push-issues/pkg/plan"
	"github.com/lerenn/push-issues/pkg/pusher/consts"
	"github.com/lerenn/push-issues/pkg/remote"
	"github.com/lerenn/push-issues/pkg/report"
	"github.com/lerenn/push-issues/pkg/template"
)

// Push loads the template, reconciles it with the remote state and applies the plan.
func (p *realPusher) Push(ctx context.Context, source string, opts PushOpts) (*report.Report, error) {
	params := map[string]interface{}{
		"source":     source,
		"repository": opts.Repository,
		"dry_run":    opts.DryRun,
	}

	var result *report.Report
	err := p.executeWithHooks(consts.Push, params, func(results map[string]interface{}) error {
		var err error
		result, err = p.push(ctx, source, opts)
		if result != nil {
			counts := result.Counts()
			results["created"] = counts.Created
			results["existing"] = counts.Existing
			results["failed"] = counts.Failed
			results["planned"] = counts.Planned
		}
		return err
	})
	return result, err
}

func (p *realPusher) push(ctx context.Context, source string, opts PushOpts) (*report.Report, error) {
	cfg, err := p.getConfig(opts)
	if err != nil {
		return nil, err
	}

	if cfg.Repository == "" {
		return nil, ErrRepositoryRequired
	}
	project, err := issue.ParseReference(cfg.Repository)
	if err != nil {
		return nil, err
	}

	root, cleanup, err := p.resolveSource(ctx, source)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	tmpl, err := p.loadTemplate(root)
	if err != nil {
		return nil, err
	}

	token, err := p.resolveToken(cfg, opts)
	if err != nil {
		return nil, err
	}

	f, err := p.deps.ForgeManager.GetForge(forge.GitHubName, forge.Params{
		Project: project,
		Token:   token,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout.Duration,
		Logger:  p.deps.Logger,
	})
	if err != nil {
		return nil, err
	}

	snapshot, err := p.fetchRemoteState(ctx, f)
	if err != nil {
		return nil, err
	}

	pl := plan.Reconcile(tmpl, snapshot)
	milestones, issues := pl.Count()
	p.VerbosePrint("Plan for %s: %d milestone(s) and %d issue(s) to create, %d item(s) skipped",
		project, milestones, issues, len(pl.Skipped))

	if opts.DryRun {
		return report.NewDryRun(project.String(), pl), nil
	}
	if pl.IsEmpty() {
		return report.New(project.String(), pl), nil
	}

	if err := p.confirm(project, milestones, issues, opts); err != nil {
		return nil, err
	}

	return p.applyPlan(ctx, f, cfg, pl, snapshot)
}

// resolveSource returns the local template root, downloading and
// extracting the source first when it is a URL.
func (p *realPusher) resolveSource(ctx context.Context, source string) (string, func(), error) {
	if !archive.IsURL(source) {
		return source, func() {}, nil
	}

	var root string
	cleanup := func() {}
	err := p.executeWithHooks(consts.FetchArchive, map[string]interface{}{"url": source},
		func(results map[string]interface{}) error {
			var err error
			root, cleanup, err = p.deps.Archive.Fetch(ctx, source)
			results["root"] = root
			return err
		})
	if err != nil {
		return "", nil, err
	}
	return root, cleanup, nil
}

func (p *realPusher) loadTemplate(root string) (*template.Template, error) {
	var tmpl *template.Template
	err := p.executeWithHooks(consts.LoadTemplate, map[string]interface{}{"root": root},
		func(results map[string]interface{}) error {
			var err error
			tmpl, err = p.deps.Loader.Load(root)
			if err == nil {
				results["milestones"] = len(tmpl.Milestones)
				results["issues"] = tmpl.IssueCount()
			}
			return err
		})
	return tmpl, err
}

func (p *realPusher) fetchRemoteState(ctx context.Context, f forge.Forge) (*remote.Snapshot, error) {
	var snapshot *remote.Snapshot
	err := p.executeWithHooks(consts.FetchRemoteState, map[string]interface{}{"project": f.Project().String()},
		func(results map[string]interface{}) error {
			var err error
			snapshot, err = remote.NewFetcher(remote.NewFetcherParams{
				Forge:  f,
				Logger: p.deps.Logger,
			}).Fetch(ctx)
			if err == nil {
				results["milestones"] = len(snapshot.Milestones())
				results["issues"] = snapshot.IssueCount()
			}
			return err
		})
	return snapshot, err
}

// resolveToken returns the token from the options, the configured
// environment variable or a hidden prompt, in that order. Dry runs do not
// prompt and may run unauthenticated.
func (p *realPusher) resolveToken(cfg config.Config, opts PushOpts) (string, error) {
	if opts.Token != "" {
		return opts.Token, nil
	}
	if token := p.getenv(cfg.TokenEnv); token != "" {
		return token, nil
	}
	if opts.DryRun {
		p.VerbosePrint("No token in %s, fetching remote state anonymously", cfg.TokenEnv)
		return "", nil
	}
	if !p.deps.Prompt.IsInteractive() {
		return "", fmt.Errorf("%w: set %s", ErrMissingToken, cfg.TokenEnv)
	}
	return p.deps.Prompt.PromptForToken(cfg.TokenEnv)
}

func (p *realPusher) confirm(project issue.Reference, milestones, issues int, opts PushOpts) error {
	if opts.Yes {
		return nil
	}
	if !p.deps.Prompt.IsInteractive() {
		return ErrConfirmationNeeded
	}

	ok, err := p.deps.Prompt.PromptForConfirmation(
		fmt.Sprintf("Create %d milestone(s) and %d issue(s) in %s?", milestones, issues, project), false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

func (p *realPusher) applyPlan(
	ctx context.Context,
	f forge.Forge,
	cfg config.Config,
	pl *plan.Plan,
	snapshot *remote.Snapshot,
) (*report.Report, error) {
	var result *report.Report
	params := map[string]interface{}{
		"operations": len(pl.Operations),
		"workers":    cfg.Workers,
	}
	err := p.executeWithHooks(consts.ApplyPlan, params, func(results map[string]interface{}) error {
		exec := executor.NewExecutor(executor.NewExecutorParams{
			Forge:   f,
			Limiter: executor.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
			Retry:   retryPolicy(cfg),
			Workers: cfg.Workers,
			Logger:  p.deps.Logger,
		})

		var err error
		result, err = exec.Execute(ctx, pl, snapshot)
		if err != nil {
			return err
		}
		if failed := result.Failed(); len(failed) > 0 {
			results["failed"] = len(failed)
			return fmt.Errorf("%w: %d of %d", ErrItemsFailed, len(failed), len(pl.Operations))
		}
		return nil
	})
	return result, err
}
