//go:build integration

package pusher

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/lerenn/push-issues/pkg/archive"
	"github.com/lerenn/push-issues/pkg/config"
	"github.com/lerenn/push-issues/pkg/dependencies"
	"github.com/lerenn/push-issues/pkg/forge"
	"github.com/lerenn/push-issues/pkg/fs"
	"github.com/lerenn/push-issues/pkg/report"
	"github.com/lerenn/push-issues/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var templateFiles = map[string]string{
	"milestone-1/README.md":    "# Milestone 1\n\nFirst steps.\n",
	"milestone-1/issue-1.1.md": "# Issue 1.1\n\nBody 1.1\n",
	"milestone-1/issue-1.2.md": "Issue 1.2\n",
	"milestone-2/README.md":    "# Milestone 2\n",
	"milestone-2/issue-2.1.md": "# Issue 2.1\n\nBody 2.1\n",
}

type fakeMilestone struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
}

type fakeIssue struct {
	Number    int           `json:"number"`
	Title     string        `json:"title"`
	State     string        `json:"state"`
	Milestone fakeMilestone `json:"milestone"`
}

// fakeGitHub serves the milestone and issue endpoints of one repository
// from memory, under the GitHub Enterprise API prefix.
type fakeGitHub struct {
	mu         sync.Mutex
	milestones []fakeMilestone
	issues     []fakeIssue
	next       int
	// failIssueCreations answers that many issue creations with a 502.
	failIssueCreations int
	writes             int
	archive            []byte
}

func newFakeGitHub(t *testing.T) (*fakeGitHub, *httptest.Server) {
	t.Helper()
	g := &fakeGitHub{next: 1}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/owner/repo/milestones", g.handleMilestones)
	mux.HandleFunc("/api/v3/repos/owner/repo/issues", g.handleIssues)
	mux.HandleFunc("/template.tar.gz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/gzip")
		_, _ = w.Write(g.archive)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return g, server
}

func (g *fakeGitHub) handleMilestones(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, g.milestones)
	case http.MethodPost:
		var payload struct {
			Title string `json:"title"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		m := fakeMilestone{Number: g.next, Title: payload.Title, State: "open"}
		g.next++
		g.writes++
		g.milestones = append(g.milestones, m)
		writeJSON(w, http.StatusCreated, m)
	}
}

func (g *fakeGitHub) handleIssues(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		filter := r.URL.Query().Get("milestone")
		issues := []fakeIssue{}
		for _, i := range g.issues {
			if filter == "*" || filter == strconv.Itoa(i.Milestone.Number) {
				issues = append(issues, i)
			}
		}
		writeJSON(w, http.StatusOK, issues)
	case http.MethodPost:
		if g.failIssueCreations > 0 {
			g.failIssueCreations--
			writeJSON(w, http.StatusBadGateway, map[string]string{"message": "Bad Gateway"})
			return
		}
		var payload struct {
			Title     string `json:"title"`
			Milestone int    `json:"milestone"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var milestone fakeMilestone
		for _, m := range g.milestones {
			if m.Number == payload.Milestone {
				milestone = m
			}
		}
		i := fakeIssue{Number: g.next, Title: payload.Title, State: "open", Milestone: milestone}
		g.next++
		g.writes++
		g.issues = append(g.issues, i)
		writeJSON(w, http.StatusCreated, i)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeTemplate(t *testing.T, root string) {
	t.Helper()
	for name, content := range templateFiles {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func templateArchive(t *testing.T, prefix string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range templateFiles {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     prefix + name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func newIntegrationPusher(t *testing.T, serverURL string) Pusher {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf(`repository: owner/repo
base_url: %s
workers: 2
retry:
  max_attempts: 3
  initial_delay: 0s
  max_delay: 0s
  multiplier: 1
  jitter: false
rate_limit:
  requests_per_second: 0
`, serverURL)), 0644))

	fileSystem := fs.NewFS()
	p, err := NewPusher(NewPusherParams{
		Dependencies: dependencies.New().
			WithFS(fileSystem).
			WithConfig(config.NewManager(fileSystem, configPath)).
			WithForgeManager(forge.NewManager(nil)).
			WithLoader(template.NewLoader(template.NewLoaderParams{FS: fileSystem})).
			WithArchive(archive.NewFetcher(archive.NewFetcherParams{FS: fileSystem})),
		Getenv: func(key string) string {
			if key == "GITHUB_TOKEN" {
				return "token"
			}
			return ""
		},
	})
	require.NoError(t, err)
	return p
}

func TestPush_EndToEnd(t *testing.T) {
	g, server := newFakeGitHub(t)
	g.failIssueCreations = 1
	root := t.TempDir()
	writeTemplate(t, root)
	p := newIntegrationPusher(t, server.URL)

	r, err := p.Push(context.Background(), root, PushOpts{Yes: true})
	require.NoError(t, err)
	assert.Equal(t, 5, r.Counts().Created)
	assert.Equal(t, 5, g.writes)

	titles := make([]string, 0, len(g.issues))
	for _, i := range g.issues {
		titles = append(titles, i.Milestone.Title+"/"+i.Title)
	}
	assert.ElementsMatch(t, []string{
		"Milestone 1/Issue 1.1",
		"Milestone 1/Issue 1.2",
		"Milestone 2/Issue 2.1",
	}, titles)

	// A second run finds everything and writes nothing.
	r, err = p.Push(context.Background(), root, PushOpts{Yes: true})
	require.NoError(t, err)
	assert.Equal(t, 5, r.Counts().Existing)
	assert.Equal(t, 5, g.writes)
}

func TestPush_EndToEnd_PartialRemote(t *testing.T) {
	g, server := newFakeGitHub(t)
	g.milestones = []fakeMilestone{{Number: 1, Title: "Milestone 1", State: "closed"}}
	g.issues = []fakeIssue{{Number: 2, Title: "Issue 1.1", State: "closed", Milestone: g.milestones[0]}}
	g.next = 3
	root := t.TempDir()
	writeTemplate(t, root)
	p := newIntegrationPusher(t, server.URL)

	r, err := p.Push(context.Background(), root, PushOpts{Yes: true})

	require.NoError(t, err)
	c := r.Counts()
	assert.Equal(t, 3, c.Created)
	assert.Equal(t, 2, c.Existing)
}

func TestPush_EndToEnd_DryRun(t *testing.T) {
	g, server := newFakeGitHub(t)
	root := t.TempDir()
	writeTemplate(t, root)
	p := newIntegrationPusher(t, server.URL)

	r, err := p.Push(context.Background(), root, PushOpts{DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, 5, r.Counts().Planned)
	assert.Zero(t, g.writes)

	var out bytes.Buffer
	require.NoError(t, report.Render(&out, r, report.FormatYAML))
	assert.Contains(t, out.String(), "dry_run: true")
}

func TestPush_EndToEnd_Archive(t *testing.T) {
	g, server := newFakeGitHub(t)
	g.archive = templateArchive(t, "course-main/")
	p := newIntegrationPusher(t, server.URL)

	r, err := p.Push(context.Background(), server.URL+"/template.tar.gz", PushOpts{Yes: true})

	require.NoError(t, err)
	assert.Equal(t, 5, r.Counts().Created)
	assert.Len(t, g.milestones, 2)
}
