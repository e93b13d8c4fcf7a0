package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/nexus/internal/model"
)

// run executes the CLI against a config file in dir.
func run(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("NEXUS_AI_API_KEY", "")
	t.Setenv("NEXUS_COLOR_SCHEME", "dark")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.yaml")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, "", args...)
	require.NoError(t, err, out)
	return out
}

func TestLs_SeedData(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "ls")
	for _, title := range []string{"GitHub", "Dribbble", "MDN Web Docs", "ChatGPT"} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "1  +124 -2 (liked)  GitHub")

	out = mustRun(t, dir, "ls", "--category", "Learning")
	assert.Contains(t, out, "MDN Web Docs")
	assert.NotContains(t, out, "GitHub")

	out = mustRun(t, dir, "ls", "-q", "zzz")
	assert.Equal(t, "No bookmarks found\n", out)
}

func TestAdd_PersistsAndPrepends(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "add", "https://go.dev", "--title", "Go", "--tags", "go,lang")
	assert.Contains(t, out, "Go")

	out = mustRun(t, dir, "ls", "--json")
	assert.True(t, strings.HasPrefix(out, `[{"id":`))
	first := strings.Index(out, "https://go.dev")
	github := strings.Index(out, "https://github.com")
	require.NotEqual(t, -1, first)
	assert.Less(t, first, github, "new bookmark comes first")
	assert.Contains(t, out, `"tags":["go","lang"]`)
	assert.FileExists(t, filepath.Join(dir, "store.json"))
}

func TestAdd_AnalyzeFallsBackWithoutKey(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "add", "https://example.com", "--analyze", "--category", "Mine")
	assert.Contains(t, out, "Unknown site")
	assert.Contains(t, out, "Mine")
	assert.Contains(t, out, "#to-sort")
}

func TestRm_Confirmation(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "n\n", "rm", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted")
	assert.Contains(t, mustRun(t, dir, "ls"), "Dribbble")

	out, err = run(t, dir, "y\n", "rm", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 bookmark(s)")
	assert.NotContains(t, mustRun(t, dir, "ls"), "Dribbble")

	out = mustRun(t, dir, "rm", "--yes", "2", "missing")
	assert.NotContains(t, out, "Deleted")
}

func TestVote(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "vote", "2", "like")
	assert.Contains(t, out, "+90 -5 (liked)")

	out = mustRun(t, dir, "vote", "2", "like")
	assert.Contains(t, out, "+89 -5  Dribbble")

	_, err := run(t, dir, "", "vote", "2", "meh")
	assert.ErrorIs(t, err, model.ErrInvalidVote)

	_, err = run(t, dir, "", "vote", "missing", "like")
	assert.ErrorIs(t, err, model.ErrBookmarkNotFound)
}

func TestCategories(t *testing.T) {
	out := mustRun(t, t.TempDir(), "categories")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "all"))
	assert.True(t, strings.HasSuffix(lines[0], " 4"))
	assert.True(t, strings.HasPrefix(lines[1], "Developer Tools"))
}

func TestTheme(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, "system (dark)\n", mustRun(t, dir, "theme"))
	assert.Equal(t, "light (light)\n", mustRun(t, dir, "theme", "cycle"))
	assert.Equal(t, "dark (dark)\n", mustRun(t, dir, "theme", "cycle"))
	assert.Equal(t, "light (light)\n", mustRun(t, dir, "theme", "light"))
	assert.Equal(t, "light (light)\n", mustRun(t, dir, "theme"))

	_, err := run(t, dir, "", "theme", "sepia")
	assert.Error(t, err)
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "export.html")

	out := mustRun(t, dir, "export", exportPath)
	assert.Contains(t, out, "Exported 4 bookmarks")
	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE NETSCAPE-Bookmark-file-1>")

	// Same URLs again: everything is a duplicate.
	out = mustRun(t, dir, "import", exportPath)
	assert.Equal(t, "Imported 0 bookmarks (4 duplicates skipped)\n", out)

	other := t.TempDir()
	mustRun(t, other, "rm", "--yes", "1", "2", "3", "4")
	out = mustRun(t, other, "import", exportPath)
	assert.Equal(t, "Imported 4 bookmarks\n", out)
	assert.Contains(t, mustRun(t, other, "ls", "-C", "Learning"), "MDN Web Docs")
}

func TestSearch_Print(t *testing.T) {
	out := mustRun(t, t.TempDir(), "search", "--print", "github")
	assert.Contains(t, out, "GitHub\thttps://github.com")

	out = mustRun(t, t.TempDir(), "search", "--print", "qqqqq")
	assert.Contains(t, out, "No bookmarks found")
}

func TestAnalyze_JSONFallback(t *testing.T) {
	out := mustRun(t, t.TempDir(), "analyze", "--json", "https://example.com")
	assert.Contains(t, out, `"fallback": true`)
	assert.Contains(t, out, `"title": "Unknown site"`)
}

func TestCheck_Prune(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusGone)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dir := t.TempDir()
	mustRun(t, dir, "rm", "--yes", "1", "2", "3", "4")
	mustRun(t, dir, "add", srv.URL+"/ok", "--title", "Alive")
	mustRun(t, dir, "add", srv.URL+"/gone", "--title", "Gone")

	out := mustRun(t, dir, "check")
	assert.Contains(t, out, "2 checked, 1 dead, 0 unreachable")
	assert.Contains(t, out, "/gone")

	out, err := run(t, dir, "n\n", "check", "--prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted")

	out = mustRun(t, dir, "check", "--prune", "--yes")
	assert.Contains(t, out, "Deleted 1 bookmark(s)")

	out = mustRun(t, dir, "ls")
	assert.Contains(t, out, "Alive")
	assert.NotContains(t, out, "Gone")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" y \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if got := confirm(strings.NewReader(tt.input), &out, "Sure?"); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.HasPrefix(out.String(), "Sure? [y/N] ") {
			t.Errorf("unexpected prompt %q", out.String())
		}
	}
}
