package forum

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts under /forum-posts. /featured-posts is registered by the
// caller.
func Routes(h *Handler, verify func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.Patch("/{id}/vote", h.HandleVote)

	r.Group(func(r chi.Router) {
		r.Use(verify)
		r.Post("/", h.HandleCreate)
		r.Patch("/{id}", h.HandleEdit)
	})
	return r
}
