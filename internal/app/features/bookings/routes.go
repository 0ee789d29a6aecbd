package bookings

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts under /bookings.
func Routes(h *Handler, verify func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(verify).Post("/", h.HandleCreate)
	r.Get("/{email}", h.HandleByUser)
	return r
}
