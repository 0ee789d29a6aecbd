package forum_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/fittrack/internal/app/features/forum"
	"github.com/dalemusser/fittrack/internal/app/system/auth"
	"github.com/dalemusser/fittrack/internal/app/system/paging"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/dalemusser/fittrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type env struct {
	db     *mongo.Database
	fx     *testutil.Fixtures
	tok    *auth.Tokens
	h      *forum.Handler
	router http.Handler
}

func setup(t *testing.T) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tok := testutil.Tokens(t)
	h := forum.NewHandler(db, zap.NewNop())
	return env{db: db, fx: testutil.NewFixtures(t, db), tok: tok, h: h, router: forum.Routes(h, tok.Verify)}
}

func (e env) do(t *testing.T, method, target string, body any, email string, role models.Role) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.JSONRequest(t, method, target, body)
	if email != "" {
		req.Header.Set("Authorization", testutil.BearerToken(t, e.tok, email, role))
	}
	return testutil.Do(e.router, req)
}

func (e env) load(t *testing.T, id primitive.ObjectID) models.ForumPost {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	var p models.ForumPost
	if err := e.db.Collection("forum_posts").FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		t.Fatalf("load post: %v", err)
	}
	return p
}

func TestCreate_SanitizesAndSetsAuthor(t *testing.T) {
	e := setup(t)
	body := map[string]string{
		"title":   "<b>Leg day</b>",
		"content": `<p>Squats</p><script>alert(1)</script>`,
	}

	testutil.AssertStatus(t, e.do(t, "POST", "/", body, "", ""), http.StatusUnauthorized)

	rec := e.do(t, "POST", "/", body, "m@x.com", models.RoleMember)
	testutil.AssertStatus(t, rec, http.StatusOK)
	var ins struct {
		InsertedID primitive.ObjectID `json:"insertedId"`
	}
	testutil.DecodeJSON(t, rec, &ins)

	p := e.load(t, ins.InsertedID)
	if p.Title != "Leg day" {
		t.Errorf("title = %q", p.Title)
	}
	if strings.Contains(p.Content, "script") || !strings.Contains(p.Content, "<p>Squats</p>") {
		t.Errorf("content = %q", p.Content)
	}
	if p.Author.Email != "m@x.com" || p.Author.Role != models.RoleMember {
		t.Errorf("author = %+v", p.Author)
	}
	if p.Votes != (models.Votes{}) {
		t.Errorf("votes = %+v, want zero", p.Votes)
	}
}

func TestVote(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	p := e.fx.CreatePost(ctx, "Hello", "a@x.com", time.Now().UTC())

	for _, typ := range []string{"up", "up", "down", "sideways"} {
		rec := e.do(t, "PATCH", "/"+p.ID.Hex()+"/vote", map[string]string{"type": typ}, "", "")
		testutil.AssertStatus(t, rec, http.StatusOK)
	}
	got := e.load(t, p.ID)
	if got.Votes.Upvotes != 2 || got.Votes.Downvotes != 2 {
		t.Errorf("votes = %+v, want 2 up 2 down", got.Votes)
	}

	rec := e.do(t, "PATCH", "/"+primitive.NewObjectID().Hex()+"/vote", map[string]string{"type": "up"}, "", "")
	testutil.AssertStatus(t, rec, http.StatusNotFound)
	testutil.AssertMessage(t, rec, "forum post not found")
}

func TestEdit_AuthorOrAdmin(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	p := e.fx.CreatePost(ctx, "Draft", "a@x.com", time.Now().UTC())
	target := "/" + p.ID.Hex()

	rec := e.do(t, "PATCH", target, map[string]string{"title": "Hijack"}, "b@x.com", models.RoleMember)
	testutil.AssertStatus(t, rec, http.StatusForbidden)
	if got := e.load(t, p.ID); got.Title != "Draft" {
		t.Errorf("title changed to %q by a non-author", got.Title)
	}

	body := map[string]string{"title": "Final", "content": "<p>done</p>"}
	rec = e.do(t, "PATCH", target, body, "A@x.com", models.RoleMember)
	testutil.AssertStatus(t, rec, http.StatusOK)
	var echo map[string]string
	testutil.DecodeJSON(t, rec, &echo)
	if echo["title"] != "Final" || echo["content"] != "<p>done</p>" {
		t.Errorf("echo = %v", echo)
	}

	rec = e.do(t, "PATCH", target, map[string]string{"title": "Moderated"}, "boss@x.com", models.RoleAdmin)
	testutil.AssertStatus(t, rec, http.StatusOK)
	got := e.load(t, p.ID)
	if got.Title != "Moderated" || got.Author.Email != "a@x.com" {
		t.Errorf("after admin edit: %+v", got)
	}

	rec = e.do(t, "PATCH", "/"+primitive.NewObjectID().Hex(), body, "boss@x.com", models.RoleAdmin)
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestListAndFeatured(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		e.fx.CreatePost(ctx, fmt.Sprintf("Post %d", i), "a@x.com", base.Add(time.Duration(i)*time.Hour))
	}

	rec := e.do(t, "GET", "/?page=2&limit=5", nil, "", "")
	testutil.AssertStatus(t, rec, http.StatusOK)
	var page paging.Page[models.ForumPost]
	testutil.DecodeJSON(t, rec, &page)
	if page.Total != 8 || page.TotalPages != 2 || len(page.Items) != 3 {
		t.Errorf("page 2 = total %d pages %d items %d", page.Total, page.TotalPages, len(page.Items))
	}

	rec = testutil.Do(http.HandlerFunc(e.h.HandleFeatured), httptest.NewRequest("GET", "/featured-posts", nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var featured []models.ForumPost
	testutil.DecodeJSON(t, rec, &featured)
	if len(featured) != 6 {
		t.Fatalf("featured has %d posts, want 6", len(featured))
	}
	if featured[0].Title != "Post 7" || featured[5].Title != "Post 2" {
		t.Errorf("featured order: first %q, last %q", featured[0].Title, featured[5].Title)
	}
}
