package classstore_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	classstore "github.com/dalemusser/fittrack/internal/app/store/classes"
	"github.com/dalemusser/fittrack/internal/app/store/storeerr"
	"github.com/dalemusser/fittrack/internal/app/system/indexes"
	"github.com/dalemusser/fittrack/internal/app/system/paging"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/dalemusser/fittrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setup(t *testing.T) (*classstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return classstore.New(db), testutil.NewFixtures(t, db)
}

func TestCreate_DefaultsAndDuplicate(t *testing.T) {
	store, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c, err := store.Create(ctx, models.Class{Name: " Power  Yoga ", TotalBookings: 99})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.TotalBookings != 0 {
		t.Errorf("totalBookings = %d, want 0", c.TotalBookings)
	}
	if c.Name != "Power Yoga" || c.NameCI != "power yoga" {
		t.Errorf("name=%q name_ci=%q", c.Name, c.NameCI)
	}
	if c.Trainers == nil {
		t.Error("expected empty trainers slice")
	}

	_, err = store.Create(ctx, models.Class{Name: "Power Yoga"})
	if !errors.Is(err, storeerr.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestList_PaginationCoversAll(t *testing.T) {
	store, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	want := make([]primitive.ObjectID, 0, 20)
	for i := 0; i < 20; i++ {
		want = append(want, fx.CreateClass(ctx, fmt.Sprintf("Class %02d", i), 0).ID)
	}

	p := paging.Params{Page: 3, Limit: 6}
	items, total, err := store.List(ctx, "", p)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 20 || paging.TotalPages(total, 6) != 4 {
		t.Fatalf("total=%d totalPages=%d", total, paging.TotalPages(total, 6))
	}
	if len(items) != 6 || items[0].ID != want[12] || items[5].ID != want[17] {
		t.Errorf("page 3 should hold documents 13-18")
	}

	var seen []primitive.ObjectID
	for page := 1; page <= 4; page++ {
		items, _, err := store.List(ctx, "", paging.Params{Page: page, Limit: 6})
		if err != nil {
			t.Fatalf("List page %d: %v", page, err)
		}
		for _, c := range items {
			seen = append(seen, c.ID)
		}
	}
	if len(seen) != len(want) {
		t.Fatalf("pages held %d documents, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("document %d out of order", i)
		}
	}
}

func TestList_Search(t *testing.T) {
	store, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateClass(ctx, "Morning Yoga", 0)
	fx.CreateClass(ctx, "Power YOGA", 0)
	fx.CreateClass(ctx, "Boxing", 0)

	items, total, err := store.List(ctx, "yoga", paging.Params{Page: 1, Limit: 6})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("search yoga: total=%d items=%d, want 2", total, len(items))
	}

	_, total, _ = store.List(ctx, "(", paging.Params{Page: 1, Limit: 6})
	if total != 0 {
		t.Errorf("regex metacharacters should be literal, got %d matches", total)
	}
}

func TestAddTrainer(t *testing.T) {
	store, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateClass(ctx, "Yoga", 0)
	tr := models.ClassTrainer{ID: primitive.NewObjectID(), Name: "Ann"}

	added, _, err := store.AddTrainer(ctx, "Yoga", tr)
	if err != nil || !added {
		t.Fatalf("first AddTrainer: added=%v err=%v", added, err)
	}

	added, existing, err := store.AddTrainer(ctx, "Yoga", models.ClassTrainer{ID: tr.ID, Name: "Renamed"})
	if err != nil {
		t.Fatalf("second AddTrainer: %v", err)
	}
	if added {
		t.Error("expected added=false for an existing trainer")
	}
	if existing.Name != "Ann" {
		t.Errorf("existing entry = %+v, want the stored one", existing)
	}

	c, _ := store.GetByName(ctx, "Yoga")
	if len(c.Trainers) != 1 {
		t.Errorf("trainers = %d, want 1", len(c.Trainers))
	}

	if _, _, err := store.AddTrainer(ctx, "Nope", tr); !storeerr.IsNotFound(err) {
		t.Errorf("missing class: expected ErrNotFound, got %v", err)
	}
}

func TestAddTrainer_Concurrent(t *testing.T) {
	store, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateClass(ctx, "Spin", 0)
	tr := models.ClassTrainer{ID: primitive.NewObjectID(), Name: "Bo"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := store.AddTrainer(ctx, "Spin", tr); err != nil {
				t.Errorf("AddTrainer: %v", err)
			}
		}()
	}
	wg.Wait()

	c, _ := store.GetByName(ctx, "Spin")
	if len(c.Trainers) != 1 {
		t.Errorf("trainers = %d, want 1", len(c.Trainers))
	}
}

func TestIncrementBookings(t *testing.T) {
	store, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateClass(ctx, "HIIT", 4)
	for i := 0; i < 3; i++ {
		if err := store.IncrementBookings(ctx, "HIIT"); err != nil {
			t.Fatalf("IncrementBookings: %v", err)
		}
	}
	c, _ := store.GetByName(ctx, "HIIT")
	if c.TotalBookings != 7 {
		t.Errorf("totalBookings = %d, want 7", c.TotalBookings)
	}
	if err := store.IncrementBookings(ctx, "Nope"); !storeerr.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	store, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fx.CreateClass(ctx, "Pilates", 2)
	fx.CreateClass(ctx, "Barre", 0)

	name, desc := "Mat Pilates", "Core work"
	if err := store.Update(ctx, c.ID, classstore.Update{Name: &name, Description: &desc}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.GetByID(ctx, c.ID)
	if got.Name != name || got.NameCI != "mat pilates" || got.Description != desc || got.TotalBookings != 2 {
		t.Errorf("got %+v", got)
	}

	taken := "Barre"
	if err := store.Update(ctx, c.ID, classstore.Update{Name: &taken}); !errors.Is(err, storeerr.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if err := store.Update(ctx, primitive.NewObjectID(), classstore.Update{Description: &desc}); !storeerr.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteByName(t *testing.T) {
	store, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateClass(ctx, "Zumba", 0)
	n, err := store.DeleteByName(ctx, "Zumba")
	if err != nil || n != 1 {
		t.Fatalf("DeleteByName = %d, %v", n, err)
	}
	if _, err := store.DeleteByName(ctx, "Zumba"); !storeerr.IsNotFound(err) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
