package slots

import (
	"context"
	"net/http"

	slotstore "github.com/dalemusser/fittrack/internal/app/store/slots"
	"github.com/dalemusser/fittrack/internal/app/store/storeerr"
	"github.com/dalemusser/fittrack/internal/app/system/authz"
	"github.com/dalemusser/fittrack/internal/app/system/inputval"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"github.com/dalemusser/fittrack/internal/app/system/timeouts"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Slots *slotstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Slots: slotstore.New(db), Log: logger}
}

// HandleByTrainer handles GET /slots/{email}.
func (h *Handler) HandleByTrainer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Slots.ByTrainer(ctx, chi.URLParam(r, "email"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, list)
}

// HandleGet handles GET /single-slot/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := storeerr.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sl, err := h.Slots.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, sl)
}

type createInput struct {
	TrainerName string   `json:"trainerName" validate:"max=200"`
	SlotName    string   `json:"slotName" validate:"required,max=200"`
	SlotTime    string   `json:"slotTime" validate:"max=100"`
	Days        []string `json:"days"`
	Classes     []string `json:"classes"`
}

// HandleCreate handles POST /slots. The slot belongs to the calling trainer.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	email, ok := authz.Email(r)
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthorized access")
		return
	}
	var in createInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if normalize.Name(in.SlotName) == "" {
		respond.Error(w, r, h.Log, &inputval.Error{Message: "invalid request", Fields: map[string]string{"slotName": "is required"}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sl, err := h.Slots.Create(ctx, models.Slot{
		TrainerEmail: email,
		TrainerName:  normalize.Name(in.TrainerName),
		SlotName:     normalize.Name(in.SlotName),
		SlotTime:     in.SlotTime,
		Days:         in.Days,
		Classes:      in.Classes,
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, respond.Inserted{Acknowledged: true, InsertedID: sl.ID})
}

// HandleDelete handles DELETE /slots/{id}. A trainer can only remove their
// own slots; anyone else's slot reads as not found.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	email, ok := authz.Email(r)
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthorized access")
		return
	}
	id, err := storeerr.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Slots.Delete(ctx, id, email)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, respond.Deleted{Acknowledged: true, DeletedCount: n})
}
