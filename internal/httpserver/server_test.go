package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/nexus/internal/ai"
	"github.com/nikbrunner/nexus/internal/config"
	"github.com/nikbrunner/nexus/internal/httpserver"
	"github.com/nikbrunner/nexus/internal/httpserver/deps"
	"github.com/nikbrunner/nexus/internal/library"
	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/storage"
	"github.com/nikbrunner/nexus/internal/theme"
)

type failingStore struct{}

func (failingStore) Load(context.Context) (*model.Collection, storage.Origin) {
	return model.DefaultCollection(), storage.OriginSeed
}

func (failingStore) Save(context.Context, *model.Collection) error {
	return errors.New("disk full")
}

type stubAnalyzer struct{ result ai.Analysis }

func (s stubAnalyzer) Analyze(_ context.Context, url string) ai.Analysis {
	r := s.result
	r.URL = url
	return r
}

type bookmarkJSON struct {
	ID        string   `json:"id"`
	URL       string   `json:"url"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"createdAt"`
	Likes     int      `json:"likes"`
	Dislikes  int      `json:"dislikes"`
	UserVote  *string  `json:"userVote"`
}

func newDeps(store library.Store) deps.Deps {
	log := logger.NewNop()
	return deps.Deps{
		Logger:  log,
		Library: library.Open(context.Background(), store, log),
		Themes:  storage.NewThemeStore(storage.NewMemoryKV(), log),
	}
}

func memoryStore() library.Store {
	return storage.NewBookmarkStore(storage.NewMemoryKV(), logger.NewNop())
}

func newHandler(t *testing.T, d deps.Deps) http.Handler {
	t.Helper()
	cfg := config.ServerConfig{RequestTimeout: 5 * time.Second}
	return httpserver.New(cfg, logger.NewNop(), d).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	h := newHandler(t, newDeps(memoryStore()))

	rec := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "seed", body["origin"])
}

func TestListBookmarks(t *testing.T) {
	h := newHandler(t, newDeps(memoryStore()))

	tests := []struct {
		name   string
		path   string
		titles []string
	}{
		{"all", "/api/bookmarks", []string{"GitHub", "Dribbble", "MDN Web Docs", "ChatGPT"}},
		{"category", "/api/bookmarks?category=Learning", []string{"MDN Web Docs"}},
		{"query", "/api/bookmarks?q=AI", []string{"ChatGPT"}},
		{"query in category", "/api/bookmarks?category=Learning&q=git", []string{}},
		{"unknown category", "/api/bookmarks?category=Nope", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code)

			got := decode[[]bookmarkJSON](t, rec)
			titles := make([]string, len(got))
			for i, b := range got {
				titles[i] = b.Title
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestGetBookmark(t *testing.T) {
	h := newHandler(t, newDeps(memoryStore()))

	rec := do(t, h, http.MethodGet, "/api/bookmarks/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	b := decode[bookmarkJSON](t, rec)
	assert.Equal(t, "GitHub", b.Title)
	assert.Equal(t, int64(1715000000000), b.CreatedAt)
	require.NotNil(t, b.UserVote)
	assert.Equal(t, "like", *b.UserVote)

	rec = do(t, h, http.MethodGet, "/api/bookmarks/2", "")
	assert.Contains(t, rec.Body.String(), `"userVote":null`)

	rec = do(t, h, http.MethodGet, "/api/bookmarks/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBookmark(t *testing.T) {
	d := newDeps(memoryStore())
	h := newHandler(t, d)

	rec := do(t, h, http.MethodPost, "/api/bookmarks",
		`{"url":" https://go.dev ","tags":[" go ","","lang"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	b := decode[bookmarkJSON](t, rec)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "https://go.dev", b.URL)
	assert.Equal(t, "https://go.dev", b.Title)
	assert.Equal(t, model.DefaultCategory, b.Category)
	assert.Equal(t, []string{"go", "lang"}, b.Tags)
	assert.Zero(t, b.Likes)
	assert.Nil(t, b.UserVote)

	assert.Equal(t, b.ID, d.Library.Bookmarks()[0].ID, "new bookmark is prepended")
}

func TestCreateBookmark_BadRequests(t *testing.T) {
	h := newHandler(t, newDeps(memoryStore()))

	tests := []struct {
		name string
		body string
	}{
		{"missing url", `{"title":"x"}`},
		{"blank url", `{"url":"   "}`},
		{"malformed", `{"url":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/bookmarks", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateBookmark_RequiresJSON(t *testing.T) {
	h := newHandler(t, newDeps(memoryStore()))

	req := httptest.NewRequest(http.MethodPost, "/api/bookmarks", strings.NewReader("url=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestDeleteBookmark_Idempotent(t *testing.T) {
	d := newDeps(memoryStore())
	h := newHandler(t, d)

	rec := do(t, h, http.MethodDelete, "/api/bookmarks/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, d.Library.Get("2"))
	assert.Len(t, d.Library.Bookmarks(), 3)

	rec = do(t, h, http.MethodDelete, "/api/bookmarks/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, d.Library.Bookmarks(), 3)
}

func TestVoteBookmark(t *testing.T) {
	h := newHandler(t, newDeps(memoryStore()))

	rec := do(t, h, http.MethodPost, "/api/bookmarks/2/vote", `{"vote":"like"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	b := decode[bookmarkJSON](t, rec)
	assert.Equal(t, 90, b.Likes)
	require.NotNil(t, b.UserVote)
	assert.Equal(t, "like", *b.UserVote)

	rec = do(t, h, http.MethodPost, "/api/bookmarks/2/vote", `{"vote":"dislike"}`)
	b = decode[bookmarkJSON](t, rec)
	assert.Equal(t, 89, b.Likes)
	assert.Equal(t, 6, b.Dislikes)

	rec = do(t, h, http.MethodPost, "/api/bookmarks/2/vote", `{"vote":"dislike"}`)
	b = decode[bookmarkJSON](t, rec)
	assert.Equal(t, 5, b.Dislikes)
	assert.Nil(t, b.UserVote)
}

func TestVoteBookmark_Errors(t *testing.T) {
	h := newHandler(t, newDeps(memoryStore()))

	rec := do(t, h, http.MethodPost, "/api/bookmarks/2/vote", `{"vote":"meh"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/bookmarks/missing/vote", `{"vote":"like"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPersistFailureIsAWarning(t *testing.T) {
	d := newDeps(failingStore{})
	h := newHandler(t, d)

	rec := do(t, h, http.MethodPost, "/api/bookmarks/2/vote", `{"vote":"like"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Warning"), "not persisted")
	assert.Equal(t, 90, d.Library.Get("2").Likes)

	rec = do(t, h, http.MethodDelete, "/api/bookmarks/3", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Warning"))
}

func TestListCategories(t *testing.T) {
	h := newHandler(t, newDeps(memoryStore()))

	rec := do(t, h, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		[]string{"all", "Developer Tools", "Design Inspiration", "Learning", "Artificial Intelligence"},
		decode[[]string](t, rec))
}

func TestAnalyze(t *testing.T) {
	d := newDeps(memoryStore())
	d.Analyzer = stubAnalyzer{result: ai.Analysis{Metadata: ai.Metadata{
		Title: "Go", Category: "Programming", Tags: []string{"go"},
	}}}
	h := newHandler(t, d)

	rec := do(t, h, http.MethodPost, "/api/analyze", `{"url":"https://go.dev"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "https://go.dev", body["url"])
	assert.Equal(t, false, body["fallback"])
	assert.NotContains(t, body, "error")
	assert.Equal(t, "Go", body["metadata"].(map[string]any)["title"])
}

func TestAnalyze_FallbackIsNotAServerError(t *testing.T) {
	d := newDeps(memoryStore())
	d.Analyzer = stubAnalyzer{result: ai.Analysis{
		Metadata: ai.Fallback(),
		Fallback: true,
		Err:      errors.New("upstream timeout"),
	}}
	h := newHandler(t, d)

	rec := do(t, h, http.MethodPost, "/api/analyze", `{"url":"https://slow.example"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["fallback"])
	assert.Equal(t, "upstream timeout", body["error"])
	assert.Equal(t, "Unknown site", body["metadata"].(map[string]any)["title"])
}

func TestAnalyze_WithoutAnalyzer(t *testing.T) {
	h := newHandler(t, newDeps(memoryStore()))

	rec := do(t, h, http.MethodPost, "/api/analyze", `{"url":"https://go.dev"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode[map[string]any](t, rec)["fallback"])

	rec = do(t, h, http.MethodPost, "/api/analyze", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTheme(t *testing.T) {
	d := newDeps(memoryStore())
	d.Signal = theme.SignalFunc(func() bool { return true })
	h := newHandler(t, d)

	rec := do(t, h, http.MethodGet, "/api/theme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mode":"system","scheme":"dark"}`, rec.Body.String())

	var modes []string
	for range 3 {
		rec = do(t, h, http.MethodPost, "/api/theme/cycle", "")
		require.Equal(t, http.StatusOK, rec.Code)
		modes = append(modes, decode[map[string]string](t, rec)["mode"])
	}
	assert.Equal(t, []string{"light", "dark", "system"}, modes)

	rec = do(t, h, http.MethodPut, "/api/theme", `{"mode":"light"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mode":"light","scheme":"light"}`, rec.Body.String())
	assert.Equal(t, theme.Light, d.Themes.Load(context.Background()))

	rec = do(t, h, http.MethodPut, "/api/theme", `{"mode":"sepia"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnforceHost(t *testing.T) {
	cfg := config.ServerConfig{AllowedHosts: []string{"localhost"}}
	h := httpserver.New(cfg, logger.NewNop(), newDeps(memoryStore())).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Host = "localhost:7777"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Host = "evil.example:7777"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
