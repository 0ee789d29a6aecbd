package subscriberstore

import (
	"context"
	"time"

	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("subscribers")}
}

// Subscribe stores sub unless its email is already subscribed. On a
// duplicate it returns dup=true and a nil error; the stored document is
// left untouched.
func (s *Store) Subscribe(ctx context.Context, sub models.Subscriber) (id primitive.ObjectID, dup bool, err error) {
	sub.ID = primitive.NewObjectID()
	sub.Email = normalize.Email(sub.Email)
	sub.Name = normalize.Name(sub.Name)
	sub.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		if wafflemongo.IsDup(err) {
			return primitive.NilObjectID, true, nil
		}
		return primitive.NilObjectID, false, err
	}
	return sub.ID, false, nil
}

// List returns every subscriber, oldest first.
func (s *Store) List(ctx context.Context) ([]models.Subscriber, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Subscriber{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of subscribers.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
