package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/fittrack/internal/app/store/users"
	"github.com/dalemusser/fittrack/internal/app/store/storeerr"
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
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Log: logger}
}

func emailParam(r *http.Request) (string, error) {
	email := normalize.Email(chi.URLParam(r, "email"))
	if !inputval.IsValidEmail(email) {
		return "", &inputval.Error{Message: "invalid email", Fields: map[string]string{"email": "must be a valid email"}}
	}
	return email, nil
}

type signInInput struct {
	Name  string `json:"name"`
	Image string `json:"image" validate:"omitempty,url"`
}

// HandleSignIn handles POST /users/{email}. The first call creates a member;
// later calls return the stored user unchanged.
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	email, err := emailParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var in signInInput
	// The body is optional for this route.
	if err := inputval.Decode(w, r, &in); err != nil && !errors.Is(err, inputval.ErrEmptyBody) {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, created, err := h.Users.EnsureByEmail(ctx, models.User{Email: email, Name: in.Name, Image: in.Image})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if !created {
		respond.OK(w, u)
		return
	}
	h.Log.Info("user created", zap.String("email", u.Email), zap.String("id", u.ID.Hex()))
	respond.OK(w, respond.Inserted{Acknowledged: true, InsertedID: u.ID})
}

// HandleGet handles GET /users/{email}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	email, err := emailParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, u)
}

type roleOutput struct {
	Role models.Role `json:"role"`
}

// HandleRole handles GET /users/role/{email}.
func (h *Handler) HandleRole(w http.ResponseWriter, r *http.Request) {
	email, err := emailParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	role, err := h.Users.RoleByEmail(ctx, email)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, roleOutput{Role: role})
}

type profileInput struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Image *string `json:"image,omitempty" validate:"omitempty,url"`
}

// HandleUpdate handles PATCH /users/{id}. The response echoes the payload.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := storeerr.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var in profileInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, id, userstore.ProfileUpdate{Name: in.Name, Image: in.Image}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, in)
}
