package classes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts under /classes. /featured-classes is registered by the
// caller at the top level.
//
// GET and PUT address a class by id; PATCH and DELETE by name.
func Routes(h *Handler, verify, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(verify)
		r.Patch("/increment-bookings/{name}", h.HandleIncrementBookings)
		r.Patch("/{name}", h.HandleAddTrainer)
	})

	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		r.Post("/", h.HandleCreate)
		r.Put("/{id}", h.HandleEdit)
		r.Delete("/{name}", h.HandleDelete)
	})
	return r
}
