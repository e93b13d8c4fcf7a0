package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/nikbrunner/nexus/internal/httpserver/deps"
	"github.com/nikbrunner/nexus/internal/httpserver/handlers"
)

func init() { Register(registerTheme) }

func registerTheme(r chi.Router, d deps.Deps) {
	h := handlers.NewTheme(d)
	r.Get("/api/theme", h.Get)
	r.Put("/api/theme", h.Put)
	r.Post("/api/theme/cycle", h.Cycle)
}
