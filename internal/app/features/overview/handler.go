package overview

import (
	"net/http"

	"github.com/dalemusser/fittrack/internal/app/store/queries/overview"
	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"github.com/dalemusser/fittrack/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// ServeOverview handles GET /admin/overview.
func (h *Handler) ServeOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin overview")
	defer cancel()

	rep, err := overview.Fetch(ctx, h.DB)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, rep)
}
