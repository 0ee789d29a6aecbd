package forum

import (
	"context"
	"net/http"

	poststore "github.com/dalemusser/fittrack/internal/app/store/forumposts"
	"github.com/dalemusser/fittrack/internal/app/store/queries/featured"
	"github.com/dalemusser/fittrack/internal/app/store/storeerr"
	"github.com/dalemusser/fittrack/internal/app/system/auth"
	"github.com/dalemusser/fittrack/internal/app/system/authz"
	"github.com/dalemusser/fittrack/internal/app/system/inputval"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/app/system/paging"
	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"github.com/dalemusser/fittrack/internal/app/system/sanitize"
	"github.com/dalemusser/fittrack/internal/app/system/timeouts"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB    *mongo.Database
	Posts *poststore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Posts: poststore.New(db), Log: logger}
}

func titleRequired() error {
	return &inputval.Error{Message: "invalid request", Fields: map[string]string{"title": "is required"}}
}

// HandleFeatured handles GET /featured-posts: the newest posts.
func (h *Handler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := featured.Posts(ctx, h.DB)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, list)
}

// HandleList handles GET /forum-posts?page=&limit=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, total, err := h.Posts.List(ctx, p)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, paging.NewPage(items, p, total))
}

type authorInput struct {
	Name  string `json:"name" validate:"max=200"`
	Image string `json:"image" validate:"omitempty,url"`
}

type postInput struct {
	Title   string       `json:"title" validate:"required,max=300"`
	Content string       `json:"content" validate:"max=50000"`
	Image   string       `json:"image" validate:"omitempty,url"`
	Author  *authorInput `json:"author,omitempty"`
}

// HandleCreate handles POST /forum-posts. The author is the token holder.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFrom(r.Context())
	var in postInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	title := sanitize.Text(in.Title)
	if title == "" {
		respond.Error(w, r, h.Log, titleRequired())
		return
	}

	author := models.PostAuthor{Name: claims.Name, Email: claims.Email, Role: claims.Role}
	if in.Author != nil {
		if n := normalize.Name(in.Author.Name); n != "" {
			author.Name = sanitize.Text(n)
		}
		author.Image = in.Author.Image
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Posts.Create(ctx, models.ForumPost{
		Title:   title,
		Content: sanitize.Content(in.Content),
		Image:   in.Image,
		Author:  author,
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, respond.Inserted{Acknowledged: true, InsertedID: p.ID})
}

type voteInput struct {
	Type string `json:"type"`
}

// HandleVote handles PATCH /forum-posts/{id}/vote. "up" is an upvote; any
// other type counts as a downvote.
func (h *Handler) HandleVote(w http.ResponseWriter, r *http.Request) {
	id, err := storeerr.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var in voteInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Posts.Vote(ctx, id, in.Type); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, respond.Modified{Acknowledged: true, ModifiedCount: 1})
}

// HandleEdit handles PATCH /forum-posts/{id}. Only the author or an admin
// may edit. The stored author keeps the original email; name and image
// come from the payload when given. The response echoes the payload.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := storeerr.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var in postInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	title := sanitize.Text(in.Title)
	if title == "" {
		respond.Error(w, r, h.Log, titleRequired())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if !authz.IsSelfOrAdmin(r, post.Author.Email) {
		email, _ := authz.Email(r)
		h.Log.Info("forum edit denied", zap.String("post", id.Hex()), zap.String("email", email))
		respond.Message(w, http.StatusForbidden, "forbidden")
		return
	}

	author := post.Author
	if in.Author != nil {
		if n := normalize.Name(in.Author.Name); n != "" {
			author.Name = sanitize.Text(n)
		}
		if in.Author.Image != "" {
			author.Image = in.Author.Image
		}
	}

	if err := h.Posts.Edit(ctx, id, title, sanitize.Content(in.Content), author); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, in)
}
