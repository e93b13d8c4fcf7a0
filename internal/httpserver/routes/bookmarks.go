package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nikbrunner/nexus/internal/httpserver/deps"
	"github.com/nikbrunner/nexus/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/api/bookmarks", func(r chi.Router) {
		r.Get("/", handlers.ListBookmarks(d))
		r.With(middleware.AllowContentType("application/json")).Post("/", handlers.CreateBookmark(d))
		r.Get("/{id}", handlers.GetBookmark(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))
		r.With(middleware.AllowContentType("application/json")).Post("/{id}/vote", handlers.VoteBookmark(d))
	})
	r.Get("/api/categories", handlers.ListCategories(d))
}
