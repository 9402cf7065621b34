//go:build integration

package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lerenn/push-issues/pkg/fs"
	"github.com/lerenn/push-issues/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root from a path -> content map.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func newTestLoader() Loader {
	return NewLoader(NewLoaderParams{FS: fs.NewFS(), Logger: logger.NewNoopLogger()})
}

func TestLoader_Load(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"milestone-10/README.md":    "# Milestone 10\n",
		"milestone-2/README.md":     "# Milestone 2\n\nSecond.\n",
		"milestone-2/issue-2.1.md":  "# Issue 2.1\n",
		"milestone-1/README.md":     "# Milestone 1\n\nFirst milestone.\n",
		"milestone-1/issue-1.2.md":  "# Issue 1.2\n\nBody 1.2\n",
		"milestone-1/issue-1.1.md":  "# Issue 1.1\n\nBody 1.1\n",
		"milestone-1/issue-1.10.md": "Issue 1.10",
		"milestone-1/.hidden.md":    "# Hidden\n",
		"milestone-1/nested/x.md":   "# Nested\n",
		".git/README.md":            "# Not a milestone\n",
		"LICENSE":                   "top-level files are ignored",
	})

	tmpl, err := newTestLoader().Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, tmpl.Root)
	require.Len(t, tmpl.Milestones, 3)

	m1 := tmpl.Milestones[0]
	assert.Equal(t, "milestone-1", m1.Name)
	assert.Equal(t, "Milestone 1", m1.Title)
	assert.Equal(t, "First milestone.\n", m1.Body)
	require.Len(t, m1.Issues, 3)
	assert.Equal(t, Issue{Name: "issue-1.1.md", Title: "Issue 1.1", Body: "Body 1.1\n"}, m1.Issues[0])
	assert.Equal(t, Issue{Name: "issue-1.2.md", Title: "Issue 1.2", Body: "Body 1.2\n"}, m1.Issues[1])
	assert.Equal(t, Issue{Name: "issue-1.10.md", Title: "Issue 1.10"}, m1.Issues[2])

	assert.Equal(t, "milestone-2", tmpl.Milestones[1].Name)
	assert.Len(t, tmpl.Milestones[1].Issues, 1)

	assert.Equal(t, "milestone-10", tmpl.Milestones[2].Name)
	assert.Empty(t, tmpl.Milestones[2].Issues)

	assert.Equal(t, 4, tmpl.IssueCount())
}

func TestLoader_Load_MissingReadme(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"milestone-1/issue-1.1.md": "# Issue 1.1\n",
	})

	_, err := newTestLoader().Load(root)
	assert.ErrorIs(t, err, ErrTemplate)
	assert.ErrorIs(t, err, ErrMissingReadme)
	assert.Contains(t, err.Error(), "milestone-1")
}

func TestLoader_Load_BinaryIssue(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"milestone-1/README.md": "# Milestone 1\n",
		"milestone-1/logo.png":  "\x89PNG\r\n\x1a\n\xff\xfe",
	})

	_, err := newTestLoader().Load(root)
	assert.ErrorIs(t, err, ErrTemplate)
	assert.ErrorIs(t, err, ErrNotText)
	assert.Contains(t, err.Error(), "logo.png")
}

func TestLoader_Load_EmptyIssue(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"milestone-1/README.md": "# Milestone 1\n",
		"milestone-1/empty.md":  "\n\n",
	})

	_, err := newTestLoader().Load(root)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestLoader_Load_RootErrors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.md")
	require.NoError(t, os.WriteFile(file, []byte("# x\n"), 0644))

	_, err := newTestLoader().Load(file)
	assert.ErrorIs(t, err, ErrRootNotDirectory)

	_, err = newTestLoader().Load(filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, ErrTemplate)
	assert.ErrorIs(t, err, ErrRootNotDirectory)
}

func TestLoader_Load_EmptyRoot(t *testing.T) {
	tmpl, err := newTestLoader().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, tmpl.Milestones)
}

func TestLoader_Load_FollowsSymlinks(t *testing.T) {
	root := t.TempDir()
	shared := t.TempDir()
	writeTree(t, root, map[string]string{
		"milestone-1/README.md": "# Milestone 1\n",
		"milestone-1/a.md":      "# A\n",
	})
	writeTree(t, shared, map[string]string{
		"ci.md":                 "# Set up CI\n\nUse the shared pipeline.\n",
		"milestone-2/README.md": "# Milestone 2\n",
		"milestone-2/b.md":      "# B\n",
	})
	require.NoError(t, os.Symlink(filepath.Join(shared, "ci.md"), filepath.Join(root, "milestone-1", "ci.md")))
	require.NoError(t, os.Symlink(filepath.Join(shared, "milestone-2"), filepath.Join(root, "milestone-2")))

	tmpl, err := newTestLoader().Load(root)
	require.NoError(t, err)

	require.Len(t, tmpl.Milestones, 2)
	assert.Equal(t, []Issue{
		{Name: "a.md", Title: "A"},
		{Name: "ci.md", Title: "Set up CI", Body: "Use the shared pipeline.\n"},
	}, tmpl.Milestones[0].Issues)
	assert.Equal(t, "Milestone 2", tmpl.Milestones[1].Title)
	assert.Equal(t, []Issue{{Name: "b.md", Title: "B"}}, tmpl.Milestones[1].Issues)
}

func TestLoader_Load_BrokenSymlink(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"milestone-1/README.md": "# Milestone 1\n",
	})
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.md"), filepath.Join(root, "milestone-1", "gone.md")))

	_, err := newTestLoader().Load(root)

	assert.ErrorIs(t, err, ErrTemplate)
	assert.ErrorIs(t, err, ErrBrokenLink)
}
