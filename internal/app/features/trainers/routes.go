package trainers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts under /trainers. The two lookup-by-email routes live at the
// top level and are registered by the caller.
func Routes(h *Handler, verify, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.With(verify).Post("/", h.HandleApply)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		r.Patch("/applicants/confirm/{id}", h.HandleConfirm)
		r.Patch("/applicants/reject/{id}", h.HandleReject)
		r.Delete("/{id}", h.HandleDelete)
	})
	return r
}
