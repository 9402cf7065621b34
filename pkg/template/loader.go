package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lerenn/push-issues/pkg/fs"
	"github.com/lerenn/push-issues/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=loader.go -destination=mocks/loader.gen.go -package=mocks

// Loader reads a template tree into memory.
type Loader interface {
	// Load walks root and returns its milestones and issues, in order.
	Load(root string) (*Template, error)
}

// NewLoaderParams contains parameters for creating a new Loader.
type NewLoaderParams struct {
	FS     fs.FS
	Logger logger.Logger
}

type realLoader struct {
	fs     fs.FS
	logger logger.Logger
}

// NewLoader creates a new Loader instance.
func NewLoader(params NewLoaderParams) Loader {
	if params.FS == nil {
		params.FS = fs.NewFS()
	}
	if params.Logger == nil {
		params.Logger = logger.NewNoopLogger()
	}
	return &realLoader{
		fs:     params.FS,
		logger: params.Logger,
	}
}

// Load walks root and returns its milestones and issues, in order.
func (l *realLoader) Load(root string) (*Template, error) {
	isDir, err := l.fs.IsDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %s: %w", ErrTemplate, ErrRootNotDirectory, root, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%w: %w: %s", ErrTemplate, ErrRootNotDirectory, root)
	}

	entries, err := l.fs.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrTemplate, root, err)
	}

	tmpl := &Template{Root: root}
	names, err := l.sortedNames(root, entries, true)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		milestone, err := l.loadMilestone(filepath.Join(root, name))
		if err != nil {
			return nil, err
		}
		tmpl.Milestones = append(tmpl.Milestones, *milestone)
	}

	l.logger.Logf("Loaded %d milestone(s) and %d issue(s) from %s",
		len(tmpl.Milestones), tmpl.IssueCount(), root)
	return tmpl, nil
}

// loadMilestone reads one milestone directory.
func (l *realLoader) loadMilestone(dir string) (*Milestone, error) {
	readme := filepath.Join(dir, ReadmeName)
	exists, err := l.fs.Exists(readme)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat %s: %w", ErrTemplate, readme, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %w: %s", ErrTemplate, ErrMissingReadme, dir)
	}

	title, body, err := l.parseFile(readme)
	if err != nil {
		return nil, err
	}

	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrTemplate, dir, err)
	}

	milestone := &Milestone{
		Name:  filepath.Base(dir),
		Title: title,
		Body:  body,
	}
	names, err := l.sortedNames(dir, entries, false)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if name == ReadmeName {
			continue
		}
		issueTitle, issueBody, err := l.parseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		milestone.Issues = append(milestone.Issues, Issue{
			Name:  name,
			Title: issueTitle,
			Body:  issueBody,
		})
	}

	l.logger.Logf("Milestone %q: %q with %d issue(s)", milestone.Name, milestone.Title, len(milestone.Issues))
	return milestone, nil
}

// parseFile reads and parses one Markdown file, adding its path to errors.
func (l *realLoader) parseFile(path string) (string, string, error) {
	content, err := l.fs.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("%w: failed to read %s: %w", ErrTemplate, path, err)
	}

	title, body, err := Parse(content)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", path, err)
	}
	return title, body, nil
}

// sortedNames returns the visible directory (dirs=true) or regular file
// (dirs=false) names among the entries of dir, in natural order. Symbolic
// links are classified by their target.
func (l *realLoader) sortedNames(dir string, entries []os.DirEntry, dirs bool) ([]string, error) {
	var names []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		isDir, isRegular := entry.IsDir(), entry.Type().IsRegular()
		if entry.Type()&os.ModeSymlink != 0 {
			path := filepath.Join(dir, entry.Name())
			info, err := l.fs.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("%w: %w: %s: %w", ErrTemplate, ErrBrokenLink, path, err)
			}
			isDir, isRegular = info.IsDir(), info.Mode().IsRegular()
		}

		if (dirs && isDir) || (!dirs && isRegular) {
			names = append(names, entry.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})
	return names, nil
}
