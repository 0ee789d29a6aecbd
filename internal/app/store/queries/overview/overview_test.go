package overview_test

import (
	"testing"

	"github.com/dalemusser/fittrack/internal/app/store/queries/overview"
	"github.com/dalemusser/fittrack/internal/testutil"
)

func TestFetch_Totals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateSubscriber(ctx, "s1@example.com")
	fx.CreateSubscriber(ctx, "s2@example.com")
	fx.CreateBooking(ctx, "m@example.com", 10)
	fx.CreateBooking(ctx, "m@example.com", 20)
	last := fx.CreateBooking(ctx, "n@example.com", 30)

	rep, err := overview.Fetch(ctx, db)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if rep.TotalSubscribers != 2 {
		t.Errorf("totalSubscribers = %d, want 2", rep.TotalSubscribers)
	}
	if rep.TotalBalance != 60 {
		t.Errorf("totalBalance = %v, want 60", rep.TotalBalance)
	}
	if len(rep.Bookings) != 3 {
		t.Fatalf("bookings = %d, want 3", len(rep.Bookings))
	}
	if rep.Bookings[0].ID != last.ID.Hex() {
		t.Error("expected newest booking first")
	}
	wantDate := last.ID.Timestamp().UTC().Format("02/01/2006")
	if rep.Bookings[0].Date != wantDate {
		t.Errorf("date = %q, want %q", rep.Bookings[0].Date, wantDate)
	}
}

func TestFetch_NoBookings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rep, err := overview.Fetch(ctx, db)
	if err != nil {
		t.Fatalf("Fetch with no bookings: %v", err)
	}
	if rep.TotalBalance != 0 || rep.TotalSubscribers != 0 {
		t.Errorf("got %+v", rep)
	}
	if rep.Bookings == nil || len(rep.Bookings) != 0 {
		t.Errorf("bookings = %#v, want empty slice", rep.Bookings)
	}
}
