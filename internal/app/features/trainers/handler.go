package trainers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/fittrack/internal/app/store/storeerr"
	trainerstore "github.com/dalemusser/fittrack/internal/app/store/trainers"
	"github.com/dalemusser/fittrack/internal/app/system/auth"
	"github.com/dalemusser/fittrack/internal/app/system/inputval"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"github.com/dalemusser/fittrack/internal/app/system/timeouts"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Trainers *trainerstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Trainers: trainerstore.New(db, logger), Log: logger}
}

func idParam(r *http.Request) (primitive.ObjectID, error) {
	return storeerr.ParseID(chi.URLParam(r, "id"))
}

// HandleList handles GET /trainers?status=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Trainers.List(ctx, query.Get(r, "status"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, list)
}

type applyInput struct {
	Name          string   `json:"name" validate:"max=200"`
	Image         string   `json:"image" validate:"omitempty,url"`
	Age           int      `json:"age" validate:"gte=0,lte=120"`
	Bio           string   `json:"bio" validate:"max=5000"`
	Skills        []string `json:"skills"`
	AvailableDays []string `json:"availableDays"`
	AvailableTime string   `json:"availableTime"`
	Experience    int      `json:"experience" validate:"gte=0"`
}

// HandleApply handles POST /trainers. The applicant is the token holder.
// A second application while one is pending or verified returns the
// existing one.
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFrom(r.Context())
	var in applyInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	name := in.Name
	if normalize.Name(name) == "" {
		name = claims.Name
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, created, err := h.Trainers.Apply(ctx, models.Trainer{
		Email:         claims.Email,
		Name:          name,
		Image:         in.Image,
		Age:           in.Age,
		Bio:           in.Bio,
		Skills:        in.Skills,
		AvailableDays: in.AvailableDays,
		AvailableTime: in.AvailableTime,
		Experience:    in.Experience,
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if !created {
		respond.OK(w, t)
		return
	}
	h.Log.Info("trainer application filed", zap.String("email", t.Email), zap.String("id", t.ID.Hex()))
	respond.OK(w, respond.Inserted{Acknowledged: true, InsertedID: t.ID})
}

// HandleGet handles GET /trainers/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.Trainers.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, t)
}

// HandleStatus handles GET /trainer-status/{email}: the latest application
// filed by email, whatever its state.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.Trainers.LatestByEmail(ctx, chi.URLParam(r, "email"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, t)
}

type idOutput struct {
	ID primitive.ObjectID `json:"id"`
}

// HandleVerifiedID handles GET /trainer-id/{email}.
func (h *Handler) HandleVerifiedID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := h.Trainers.VerifiedIDByEmail(ctx, chi.URLParam(r, "email"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, idOutput{ID: id})
}

// HandleConfirm handles PATCH /trainers/applicants/confirm/{id}.
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, err := h.Trainers.Confirm(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("trainer confirmed", zap.String("email", t.Email), zap.String("id", t.ID.Hex()))
	respond.OK(w, t)
}

type rejectInput struct {
	Feedback string `json:"feedback" validate:"max=2000"`
}

// HandleReject handles PATCH /trainers/applicants/reject/{id}.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var in rejectInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.Trainers.Reject(ctx, id, in.Feedback)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("trainer rejected", zap.String("email", t.Email), zap.String("id", t.ID.Hex()))
	respond.OK(w, t)
}

// HandleDelete handles DELETE /trainers/{id}?email=. It removes the trainer
// with their slots and class listings and demotes the user to member.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "trainer cascade delete")
	defer cancel()

	res, err := h.Trainers.Delete(ctx, id, query.Get(r, "email"))
	if errors.Is(err, trainerstore.ErrEmailMismatch) {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("trainer deleted",
		zap.String("id", id.Hex()),
		zap.Int64("slots", res.SlotsDeleted),
		zap.Int64("classes", res.ClassesUpdated))
	respond.OK(w, res)
}
