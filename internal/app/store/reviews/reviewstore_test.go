package reviewstore_test

import (
	"testing"

	reviewstore "github.com/dalemusser/fittrack/internal/app/store/reviews"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/dalemusser/fittrack/internal/testutil"
)

func TestCreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reviewstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	empty, err := store.List(ctx)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("List(empty) = %#v, %v", empty, err)
	}

	a, err := store.Create(ctx, models.Review{ClassName: "Yoga", UserEmail: "A@example.com", Rating: 5, Feedback: "great"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.UserEmail != "a@example.com" || a.CreatedAt.IsZero() {
		t.Errorf("got %+v", a)
	}
	b, _ := store.Create(ctx, models.Review{ClassName: "HIIT", Rating: 3})

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].ID != b.ID {
		t.Errorf("expected 2 reviews newest first, got %+v", all)
	}
}
