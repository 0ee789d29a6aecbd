package overview

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts under /admin.
func Routes(h *Handler, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(adminOnly).Get("/overview", h.ServeOverview)
	return r
}
