package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert into %s: %v", coll, err)
	}
}

// CreateUser creates a user with the given email and role.
func (f *Fixtures) CreateUser(ctx context.Context, email string, role models.Role) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      "User " + email,
		Role:      role,
		Timestamp: now.UnixMilli(),
		CreatedAt: now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateSubscriber creates a newsletter subscriber.
func (f *Fixtures) CreateSubscriber(ctx context.Context, email string) models.Subscriber {
	f.t.Helper()
	s := models.Subscriber{ID: primitive.NewObjectID(), Email: email, CreatedAt: time.Now().UTC()}
	f.insert(ctx, "subscribers", s)
	return s
}

// CreateTrainer creates a trainer application in the given status.
// activeEmail is set unless the status is Rejected.
func (f *Fixtures) CreateTrainer(ctx context.Context, email string, status models.TrainerStatus) models.Trainer {
	f.t.Helper()
	tr := models.Trainer{
		ID:            primitive.NewObjectID(),
		Email:         email,
		Name:          "Trainer " + email,
		Skills:        []string{"Yoga"},
		AvailableDays: []string{"Mon", "Wed"},
		Status:        status,
		AppliedAt:     time.Now().UTC(),
	}
	if status != models.TrainerRejected {
		tr.ActiveEmail = email
	}
	f.insert(ctx, "trainers", tr)
	return tr
}

// CreateClass creates a class with the given name and booking count.
func (f *Fixtures) CreateClass(ctx context.Context, name string, totalBookings int64, trainers ...models.ClassTrainer) models.Class {
	f.t.Helper()
	if trainers == nil {
		trainers = []models.ClassTrainer{}
	}
	c := models.Class{
		ID:            primitive.NewObjectID(),
		Name:          name,
		NameCI:        text.Fold(name),
		Description:   name + " class",
		Trainers:      trainers,
		TotalBookings: totalBookings,
		CreatedAt:     time.Now().UTC(),
	}
	f.insert(ctx, "classes", c)
	return c
}

// CreateSlot creates a slot owned by trainerEmail.
func (f *Fixtures) CreateSlot(ctx context.Context, trainerEmail, slotName string) models.Slot {
	f.t.Helper()
	s := models.Slot{
		ID:           primitive.NewObjectID(),
		TrainerEmail: trainerEmail,
		SlotName:     slotName,
		SlotTime:     "1 hour",
		Days:         []string{"Mon"},
		CreatedAt:    time.Now().UTC(),
	}
	f.insert(ctx, "slots", s)
	return s
}

// CreatePost creates a forum post by authorEmail dated at date.
func (f *Fixtures) CreatePost(ctx context.Context, title, authorEmail string, date time.Time) models.ForumPost {
	f.t.Helper()
	p := models.ForumPost{
		ID:      primitive.NewObjectID(),
		Title:   title,
		Content: "<p>" + title + "</p>",
		Author:  models.PostAuthor{Name: "Author", Email: authorEmail, Role: models.RoleMember},
		Date:    date,
	}
	f.insert(ctx, "forum_posts", p)
	return p
}

// CreateBooking creates a booking for userEmail at price.
func (f *Fixtures) CreateBooking(ctx context.Context, userEmail string, price float64) models.Booking {
	f.t.Helper()
	b := models.Booking{
		ID:          primitive.NewObjectID(),
		UserEmail:   userEmail,
		UserName:    "User " + userEmail,
		PackageName: "Basic",
		Price:       price,
		PaymentID:   "pi_" + primitive.NewObjectID().Hex(),
		Date:        time.Now().UTC(),
	}
	f.insert(ctx, "bookings", b)
	return b
}
