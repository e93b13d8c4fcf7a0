package handlers

import (
	"net/http"
	"sync"

	"github.com/nikbrunner/nexus/internal/httpserver/deps"
	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/nikbrunner/nexus/internal/theme"
)

type themeResponse struct {
	Mode   theme.Mode   `json:"mode"`
	Scheme theme.Scheme `json:"scheme"`
}

type themeRequest struct {
	Mode string `json:"mode"`
}

// Theme serves the theme preference. The returned handlers share a lock so
// that a cycle reads and writes the preference atomically.
type Theme struct {
	d  deps.Deps
	mu sync.Mutex
}

func NewTheme(d deps.Deps) *Theme {
	return &Theme{d: d}
}

func (t *Theme) respond(w http.ResponseWriter, mode theme.Mode) {
	writeJSON(w, http.StatusOK, themeResponse{
		Mode:   mode,
		Scheme: theme.Resolve(mode, t.d.Signal),
	})
}

func (t *Theme) Get(w http.ResponseWriter, r *http.Request) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.respond(w, t.d.Themes.Load(r.Context()))
}

func (t *Theme) Put(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	mode, err := theme.Parse(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.save(w, r, mode)
}

// Cycle advances system -> light -> dark -> system.
func (t *Theme) Cycle(w http.ResponseWriter, r *http.Request) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.save(w, r, t.d.Themes.Load(r.Context()).Next())
}

func (t *Theme) save(w http.ResponseWriter, r *http.Request, mode theme.Mode) {
	if err := t.d.Themes.Save(r.Context(), mode); err != nil {
		t.d.Logger.Error("failed to save theme", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save theme")
		return
	}
	t.respond(w, mode)
}
