package bookingstore

import (
	"context"

	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bookings")}
}

// Create records a paid booking.
func (s *Store) Create(ctx context.Context, b models.Booking) (models.Booking, error) {
	b.ID = primitive.NewObjectID()
	b.UserEmail = normalize.Email(b.UserEmail)
	b.TrainerEmail = normalize.Email(b.TrainerEmail)
	if b.Date.IsZero() {
		b.Date = b.ID.Timestamp().UTC()
	}
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// ByUser returns the bookings of userEmail, newest first.
func (s *Store) ByUser(ctx context.Context, userEmail string) ([]models.Booking, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"userEmail": normalize.Email(userEmail)},
		options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Booking{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
