package reviewstore

import (
	"context"
	"time"

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
	return &Store{c: db.Collection("reviews")}
}

// Create inserts a review.
func (s *Store) Create(ctx context.Context, r models.Review) (models.Review, error) {
	r.ID = primitive.NewObjectID()
	r.UserEmail = normalize.Email(r.UserEmail)
	r.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Review{}, err
	}
	return r, nil
}

// List returns every review, newest first.
func (s *Store) List(ctx context.Context) ([]models.Review, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Review{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
