package home

import (
	"net/http"

	"go.uber.org/zap"
)

// Greeting is the liveness text served at the root.
const Greeting = "Hello From FitTrack Server"

// Handler serves the root liveness text.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – liveness                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(Greeting))
}
