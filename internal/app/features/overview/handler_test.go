package overview_test

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/dalemusser/fittrack/internal/app/features/overview"
	queries "github.com/dalemusser/fittrack/internal/app/store/queries/overview"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/dalemusser/fittrack/internal/testutil"
	"go.uber.org/zap"
)

func TestServeOverview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateSubscriber(ctx, "s1@x.com")
	fx.CreateSubscriber(ctx, "s2@x.com")
	fx.CreateBooking(ctx, "a@x.com", 10)
	fx.CreateBooking(ctx, "b@x.com", 20.5)

	tok := testutil.Tokens(t)
	router := overview.Routes(overview.NewHandler(db, zap.NewNop()), tok.RequireRole(models.RoleAdmin))

	req := httptest.NewRequest("GET", "/overview", nil)
	req.Header.Set("Authorization", testutil.BearerToken(t, tok, "t@x.com", models.RoleTrainer))
	testutil.AssertStatus(t, testutil.Do(router, req), http.StatusForbidden)

	req = httptest.NewRequest("GET", "/overview", nil)
	req.Header.Set("Authorization", testutil.BearerToken(t, tok, "boss@x.com", models.RoleAdmin))
	rec := testutil.Do(router, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var rep queries.Report
	testutil.DecodeJSON(t, rec, &rep)
	if rep.TotalSubscribers != 2 || rep.TotalBalance != 30.5 || len(rep.Bookings) != 2 {
		t.Fatalf("report = %+v", rep)
	}
	date := regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	for _, b := range rep.Bookings {
		if !date.MatchString(b.Date) {
			t.Errorf("booking date %q is not dd/mm/yyyy", b.Date)
		}
	}
}

func TestServeOverview_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := overview.NewHandler(db, zap.NewNop())

	rec := testutil.Do(http.HandlerFunc(h.ServeOverview), httptest.NewRequest("GET", "/admin/overview", nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var raw map[string]any
	testutil.DecodeJSON(t, rec, &raw)
	if raw["totalBalance"] != float64(0) || raw["totalSubscribers"] != float64(0) {
		t.Errorf("empty report = %v", raw)
	}
}
