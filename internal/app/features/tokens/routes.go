package tokens

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts under /jwt. limit throttles token requests per client.
func Routes(h *Handler, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(limit).Post("/", h.HandleIssue)
	return r
}
