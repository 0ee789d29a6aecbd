package payments

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts under /create-payment-intent.
func Routes(h *Handler, verify func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(verify).Post("/", h.HandleCreateIntent)
	return r
}
