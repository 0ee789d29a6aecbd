package subscribers

import (
	"context"
	"net/http"

	subscriberstore "github.com/dalemusser/fittrack/internal/app/store/subscribers"
	"github.com/dalemusser/fittrack/internal/app/system/inputval"
	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"github.com/dalemusser/fittrack/internal/app/system/timeouts"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AlreadySubscribed is the soft-duplicate message for a repeat sign-up.
const AlreadySubscribed = "already subscribed"

type Handler struct {
	Subscribers *subscriberstore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Subscribers: subscriberstore.New(db), Log: logger}
}

// HandleList handles GET /subscribers.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subs, err := h.Subscribers.List(ctx)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, subs)
}

type subscribeInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=200"`
}

type duplicateOutput struct {
	Message    string `json:"message"`
	InsertedID any    `json:"insertedId"`
}

// HandleSubscribe handles POST /subscribers. A repeat email is answered with
// 200 and a message rather than an error.
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var in subscribeInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, dup, err := h.Subscribers.Subscribe(ctx, models.Subscriber{Email: in.Email, Name: in.Name})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if dup {
		respond.OK(w, duplicateOutput{Message: AlreadySubscribed})
		return
	}
	respond.OK(w, respond.Inserted{Acknowledged: true, InsertedID: id})
}
