package reviews

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts under /reviews.
func Routes(h *Handler, verify func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.With(verify).Post("/", h.HandleCreate)
	return r
}
