package slotstore

import (
	"context"
	"time"

	"github.com/dalemusser/fittrack/internal/app/store/storeerr"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const entity = "slot"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("slots")}
}

// ByTrainer returns every slot owned by trainerEmail, oldest first.
func (s *Store) ByTrainer(ctx context.Context, trainerEmail string) ([]models.Slot, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"trainerEmail": normalize.Email(trainerEmail)},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Slot{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one slot.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Slot, error) {
	var sl models.Slot
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sl); err != nil {
		return models.Slot{}, storeerr.FromFind(entity, err)
	}
	return sl, nil
}

// Create inserts a slot.
func (s *Store) Create(ctx context.Context, sl models.Slot) (models.Slot, error) {
	sl.ID = primitive.NewObjectID()
	sl.TrainerEmail = normalize.Email(sl.TrainerEmail)
	sl.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, sl); err != nil {
		return models.Slot{}, err
	}
	return sl, nil
}

// Delete removes the slot with id. When owner is non-empty only a slot
// belonging to that trainer is removed.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID, owner string) (int64, error) {
	filter := bson.M{"_id": id}
	if owner != "" {
		filter["trainerEmail"] = normalize.Email(owner)
	}
	res, err := s.c.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	if res.DeletedCount == 0 {
		return 0, storeerr.NotFound(entity)
	}
	return res.DeletedCount, nil
}
