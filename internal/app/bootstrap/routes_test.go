package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/fittrack/internal/app/features/home"
	"github.com/dalemusser/fittrack/internal/app/system/indexes"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/dalemusser/fittrack/internal/testutil"
	"github.com/go-chi/chi/v5"
)

type stubIntents struct{}

func (stubIntents) CreateIntent(context.Context, int64, string) (string, error) {
	return "secret", nil
}

func testRouter(t *testing.T) (chi.Router, *testutil.Fixtures, func(email string, role models.Role) string) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	tok := testutil.Tokens(t)
	cfg := AppConfig{
		PaymentCurrency:    "usd",
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		RateLimitPerMinute: 100,
	}
	r := newRouter(cfg, DBDeps{MongoClient: db.Client(), MongoDatabase: db}, tok, stubIntents{}, testLogger())
	bearer := func(email string, role models.Role) string {
		return testutil.BearerToken(t, tok, email, role)
	}
	return r, testutil.NewFixtures(t, db), bearer
}

func TestRouter_RootAndNotFound(t *testing.T) {
	r, _, _ := testRouter(t)

	rec := testutil.Do(r, httptest.NewRequest("GET", "/", nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
	if rec.Body.String() != home.Greeting {
		t.Errorf("root body = %q", rec.Body.String())
	}

	rec = testutil.Do(r, httptest.NewRequest("GET", "/does-not-exist", nil))
	testutil.AssertStatus(t, rec, http.StatusNotFound)
	testutil.AssertMessage(t, rec, "not found")

	rec = testutil.Do(r, httptest.NewRequest("GET", "/health", nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
}

func TestRouter_Gates(t *testing.T) {
	r, _, bearer := testRouter(t)

	tests := []struct {
		method, path string
		auth         string
		want         int
	}{
		{"GET", "/subscribers", "", http.StatusUnauthorized},
		{"GET", "/subscribers", bearer("m@x.com", models.RoleMember), http.StatusForbidden},
		{"GET", "/subscribers", bearer("a@x.com", models.RoleAdmin), http.StatusOK},
		{"GET", "/admin/overview", bearer("t@x.com", models.RoleTrainer), http.StatusForbidden},
		{"GET", "/admin/overview", bearer("a@x.com", models.RoleAdmin), http.StatusOK},
		{"POST", "/slots", bearer("a@x.com", models.RoleAdmin), http.StatusForbidden},
		{"GET", "/single-slot/000000000000000000000000", "", http.StatusUnauthorized},
		{"GET", "/single-slot/000000000000000000000000", "Bearer junk", http.StatusForbidden},
		{"POST", "/create-payment-intent", "", http.StatusUnauthorized},
		{"GET", "/featured-classes", "", http.StatusOK},
		{"GET", "/featured-posts", "", http.StatusOK},
		{"GET", "/reviews", "", http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		if tt.auth != "" {
			req.Header.Set("Authorization", tt.auth)
		}
		rec := testutil.Do(r, req)
		if rec.Code != tt.want {
			t.Errorf("%s %s (auth=%v): status %d, want %d", tt.method, tt.path, tt.auth != "", rec.Code, tt.want)
		}
	}
}

func TestRouter_ClassKeys(t *testing.T) {
	r, fx, bearer := testRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateClass(ctx, "Power Yoga", 0)

	// GET addresses the class by id.
	rec := testutil.Do(r, httptest.NewRequest("GET", "/classes/"+c.ID.Hex(), nil))
	testutil.AssertStatus(t, rec, http.StatusOK)

	// PATCH addresses it by name.
	req := testutil.JSONRequest(t, "PATCH", "/classes/Power%20Yoga", map[string]string{"id": c.ID.Hex(), "name": "T"})
	req.Header.Set("Authorization", bearer("t@x.com", models.RoleTrainer))
	rec = testutil.Do(r, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	req = testutil.JSONRequest(t, "PATCH", "/classes/increment-bookings/Power%20Yoga", nil)
	req.Header.Set("Authorization", bearer("m@x.com", models.RoleMember))
	testutil.AssertStatus(t, testutil.Do(r, req), http.StatusOK)
}

func TestRouter_CORSPreflight(t *testing.T) {
	r, _, _ := testRouter(t)

	req := httptest.NewRequest("OPTIONS", "/jwt", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, Authorization")
	rec := testutil.Do(r, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q", got)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Errorf("Allow-Methods = %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}
}
