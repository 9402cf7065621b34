package cli

import (
	"github.com/lerenn/push-issues/pkg/archive"
	"github.com/lerenn/push-issues/pkg/dependencies"
	"github.com/lerenn/push-issues/pkg/forge"
	"github.com/lerenn/push-issues/pkg/fs"
	defaulthooks "github.com/lerenn/push-issues/pkg/hooks/default"
	"github.com/lerenn/push-issues/pkg/pusher"
	"github.com/lerenn/push-issues/pkg/pusher/consts"
	"github.com/lerenn/push-issues/pkg/template"
)

// NewPusher creates a new Pusher wired with the production dependencies.
func NewPusher() (pusher.Pusher, error) {
	fileSystem := fs.NewFS()
	l := NewLogger()

	hookManager, err := defaulthooks.NewDefaultHooksManager(l, consts.Operations...)
	if err != nil {
		return nil, err
	}

	return pusher.NewPusher(pusher.NewPusherParams{
		Dependencies: dependencies.New().
			WithFS(fileSystem).
			WithLogger(l).
			WithConfig(NewConfigManager(fileSystem)).
			WithHookManager(hookManager).
			WithForgeManager(forge.NewManager(l)).
			WithLoader(template.NewLoader(template.NewLoaderParams{
				FS:     fileSystem,
				Logger: l,
			})).
			WithArchive(archive.NewFetcher(archive.NewFetcherParams{
				FS:     fileSystem,
				Logger: l,
			})),
	})
}
