package tokens

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/fittrack/internal/app/store/users"
	"github.com/dalemusser/fittrack/internal/app/system/auth"
	"github.com/dalemusser/fittrack/internal/app/system/inputval"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"github.com/dalemusser/fittrack/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler issues bearer tokens.
type Handler struct {
	Users  *userstore.Store
	Tokens *auth.Tokens
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *auth.Tokens, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Tokens: tokens, Log: logger}
}

type issueInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

type issueOutput struct {
	Token string `json:"token"`
}

// HandleIssue handles POST /jwt.
//
// The role in the token is read from the users collection; callers cannot
// pick their own. Unknown emails get a member token.
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	var in issueInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	email := normalize.Email(in.Email)
	role, err := h.Users.RoleByEmail(ctx, email)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	tok, err := h.Tokens.Issue(auth.Claims{Email: email, Name: normalize.Name(in.Name), Role: role})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, issueOutput{Token: tok})
}
