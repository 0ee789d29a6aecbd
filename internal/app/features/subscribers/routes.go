package subscribers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts under /subscribers. adminOnly guards the listing and limit
// throttles sign-ups per client.
func Routes(h *Handler, adminOnly, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(adminOnly).Get("/", h.HandleList)
	r.With(limit).Post("/", h.HandleSubscribe)
	return r
}
