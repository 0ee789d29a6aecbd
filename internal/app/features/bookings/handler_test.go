package bookings_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/fittrack/internal/app/features/bookings"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/dalemusser/fittrack/internal/testutil"
	"go.uber.org/zap"
)

func TestCreateAndListByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateBooking(ctx, "other@x.com", 10)

	tok := testutil.Tokens(t)
	router := bookings.Routes(bookings.NewHandler(db, zap.NewNop()), tok.Verify)

	body := map[string]any{"packageName": "Pro", "price": 49.5, "paymentId": "pi_1", "className": "Spin"}
	testutil.AssertStatus(t, testutil.Do(router, testutil.JSONRequest(t, "POST", "/", body)), http.StatusUnauthorized)

	req := testutil.JSONRequest(t, "POST", "/", body)
	req.Header.Set("Authorization", testutil.BearerToken(t, tok, "Me@x.com", models.RoleMember))
	testutil.AssertStatus(t, testutil.Do(router, req), http.StatusOK)

	rec := testutil.Do(router, httptest.NewRequest("GET", "/me@x.com", nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var list []models.Booking
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("got %d bookings, want 1", len(list))
	}
	b := list[0]
	if b.UserEmail != "me@x.com" || b.Price != 49.5 || b.PackageName != "Pro" || b.Date.IsZero() {
		t.Errorf("booking = %+v", b)
	}
}

func TestCreate_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := bookings.NewHandler(db, zap.NewNop())

	tests := []map[string]any{
		{"packageName": "Pro", "price": 10},
		{"paymentId": "pi_1", "price": 10},
		{"packageName": "Pro", "paymentId": "pi_1", "price": -1},
	}
	for _, body := range tests {
		req := testutil.WithClaims(testutil.JSONRequest(t, "POST", "/bookings", body), "me@x.com", models.RoleMember)
		rec := testutil.Do(http.HandlerFunc(h.HandleCreate), req)
		testutil.AssertStatus(t, rec, http.StatusBadRequest)
	}
}
