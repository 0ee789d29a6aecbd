package classes

import (
	"context"
	"net/http"

	classstore "github.com/dalemusser/fittrack/internal/app/store/classes"
	"github.com/dalemusser/fittrack/internal/app/store/queries/featured"
	"github.com/dalemusser/fittrack/internal/app/store/storeerr"
	"github.com/dalemusser/fittrack/internal/app/system/inputval"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/app/system/paging"
	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"github.com/dalemusser/fittrack/internal/app/system/timeouts"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// TrainerAlreadyAdded is reported when a class already lists the trainer.
const TrainerAlreadyAdded = "trainer already added"

type Handler struct {
	DB      *mongo.Database
	Classes *classstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Classes: classstore.New(db), Log: logger}
}

func nameParam(r *http.Request) (string, error) {
	name := normalize.Name(chi.URLParam(r, "name"))
	if name == "" {
		return "", &inputval.Error{Message: "class name is required"}
	}
	return name, nil
}

// HandleFeatured handles GET /featured-classes.
func (h *Handler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := featured.Classes(ctx, h.DB)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, list)
}

// HandleList handles GET /classes?page=&limit=&search=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, total, err := h.Classes.List(ctx, query.Get(r, "search"), p)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, paging.NewPage(items, p, total))
}

type createInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Image       string `json:"image" validate:"omitempty,url"`
	Details     string `json:"details" validate:"max=10000"`
}

// HandleCreate handles POST /classes. A taken name is a 409.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if normalize.Name(in.Name) == "" {
		respond.Error(w, r, h.Log, &inputval.Error{Message: "invalid request", Fields: map[string]string{"name": "is required"}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Classes.Create(ctx, models.Class{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		Details:     in.Details,
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("class created", zap.String("name", c.Name), zap.String("id", c.ID.Hex()))
	respond.OK(w, respond.Inserted{Acknowledged: true, InsertedID: c.ID})
}

// HandleGet handles GET /classes/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := storeerr.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Classes.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, c)
}

type addTrainerInput struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"max=200"`
	Image string `json:"image" validate:"omitempty,url"`
}

type alreadyAddedOutput struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Trainer models.ClassTrainer `json:"trainer"`
}

// HandleAddTrainer handles PATCH /classes/{name}: lists a trainer on the
// class unless they are already listed.
func (h *Handler) HandleAddTrainer(w http.ResponseWriter, r *http.Request) {
	name, err := nameParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var in addTrainerInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	tid, err := storeerr.ParseID(in.ID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tr := models.ClassTrainer{ID: tid, Name: normalize.Name(in.Name), Image: in.Image}
	added, existing, err := h.Classes.AddTrainer(ctx, name, tr)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if !added {
		respond.OK(w, alreadyAddedOutput{Success: false, Message: TrainerAlreadyAdded, Trainer: existing})
		return
	}
	respond.OK(w, respond.Modified{Acknowledged: true, ModifiedCount: 1})
}

type editInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
	Details     *string `json:"details,omitempty" validate:"omitempty,max=10000"`
}

// HandleEdit handles PUT /classes/{id}. The response echoes the payload.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := storeerr.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var in editInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if in.Name != nil && normalize.Name(*in.Name) == "" {
		respond.Error(w, r, h.Log, &inputval.Error{Message: "invalid request", Fields: map[string]string{"name": "must not be blank"}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Classes.Update(ctx, id, classstore.Update{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		Details:     in.Details,
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, in)
}

// HandleIncrementBookings handles PATCH /classes/increment-bookings/{name}.
func (h *Handler) HandleIncrementBookings(w http.ResponseWriter, r *http.Request) {
	name, err := nameParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Classes.IncrementBookings(ctx, name); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, respond.Modified{Acknowledged: true, ModifiedCount: 1})
}

// HandleDelete handles DELETE /classes/{name}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	name, err := nameParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Classes.DeleteByName(ctx, name)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("class deleted", zap.String("name", name))
	respond.OK(w, respond.Deleted{Acknowledged: true, DeletedCount: n})
}
