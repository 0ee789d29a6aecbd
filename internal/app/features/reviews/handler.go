package reviews

import (
	"context"
	"net/http"

	reviewstore "github.com/dalemusser/fittrack/internal/app/store/reviews"
	"github.com/dalemusser/fittrack/internal/app/system/auth"
	"github.com/dalemusser/fittrack/internal/app/system/inputval"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"github.com/dalemusser/fittrack/internal/app/system/sanitize"
	"github.com/dalemusser/fittrack/internal/app/system/timeouts"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Reviews *reviewstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Reviews: reviewstore.New(db), Log: logger}
}

type createInput struct {
	ClassName string `json:"className" validate:"max=200"`
	UserName  string `json:"userName" validate:"max=200"`
	UserImage string `json:"userImage" validate:"omitempty,url"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Feedback  string `json:"feedback" validate:"max=5000"`
}

// HandleCreate handles POST /reviews.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFrom(r.Context())
	var in createInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	name := normalize.Name(in.UserName)
	if name == "" {
		name = claims.Name
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rv, err := h.Reviews.Create(ctx, models.Review{
		ClassName: normalize.Name(in.ClassName),
		UserEmail: claims.Email,
		UserName:  name,
		UserImage: in.UserImage,
		Rating:    in.Rating,
		Feedback:  sanitize.Text(in.Feedback),
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, respond.Inserted{Acknowledged: true, InsertedID: rv.ID})
}

// HandleList handles GET /reviews.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Reviews.List(ctx)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, list)
}
