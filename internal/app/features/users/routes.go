package users

import "github.com/go-chi/chi/v5"

// Routes mounts under /users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/role/{email}", h.HandleRole)
	r.Post("/{email}", h.HandleSignIn)
	r.Get("/{email}", h.HandleGet)
	r.Patch("/{id}", h.HandleUpdate)
	return r
}
