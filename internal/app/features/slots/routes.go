package slots

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts under /slots. /single-slot/{id} is registered by the caller.
func Routes(h *Handler, trainerOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{email}", h.HandleByTrainer)

	r.Group(func(r chi.Router) {
		r.Use(trainerOnly)
		r.Post("/", h.HandleCreate)
		r.Delete("/{id}", h.HandleDelete)
	})
	return r
}
