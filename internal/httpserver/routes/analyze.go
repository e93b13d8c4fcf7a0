package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nikbrunner/nexus/internal/httpserver/deps"
	"github.com/nikbrunner/nexus/internal/httpserver/handlers"
)

func init() {
	Register(registerAnalyze, middleware.AllowContentType("application/json"))
}

func registerAnalyze(r chi.Router, d deps.Deps) {
	r.Post("/api/analyze", handlers.Analyze(d))
}
