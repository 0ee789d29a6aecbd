package classstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/fittrack/internal/app/store/storeerr"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/app/system/paging"
	"github.com/dalemusser/fittrack/internal/app/system/search"
	"github.com/dalemusser/fittrack/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const entity = "class"

var errDupName = fmt.Errorf("class name %w", storeerr.ErrDuplicate)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("classes")}
}

// Create inserts a new class with zero bookings.
func (s *Store) Create(ctx context.Context, c models.Class) (models.Class, error) {
	c.ID = primitive.NewObjectID()
	c.Name = normalize.Name(c.Name)
	c.NameCI = text.Fold(c.Name)
	c.TotalBookings = 0
	if c.Trainers == nil {
		c.Trainers = []models.ClassTrainer{}
	}
	c.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Class{}, errDupName
		}
		return models.Class{}, err
	}
	return c, nil
}

// GetByID loads one class.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Class, error) {
	var c models.Class
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Class{}, storeerr.FromFind(entity, err)
	}
	return c, nil
}

// GetByName loads one class by its exact name.
func (s *Store) GetByName(ctx context.Context, name string) (models.Class, error) {
	var c models.Class
	if err := s.c.FindOne(ctx, bson.M{"name": normalize.Name(name)}).Decode(&c); err != nil {
		return models.Class{}, storeerr.FromFind(entity, err)
	}
	return c, nil
}

// List returns one page of classes whose name contains q (case-insensitive),
// and the total number of matches.
func (s *Store) List(ctx context.Context, q string, p paging.Params) ([]models.Class, int64, error) {
	filter := search.Contains("name_ci", q)

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.c.Find(ctx, filter, p.ApplyToFind(options.Find()))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []models.Class{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// AddTrainer appends tr to the trainer list of the class called name unless
// an entry with the same id is already there. The check and the append are
// one update, so concurrent calls cannot add the same trainer twice.
//
// When the trainer was already listed, added is false and existing holds
// the stored entry.
func (s *Store) AddTrainer(ctx context.Context, name string, tr models.ClassTrainer) (added bool, existing models.ClassTrainer, err error) {
	name = normalize.Name(name)
	res, err := s.c.UpdateOne(ctx,
		bson.M{"name": name, "trainers.id": bson.M{"$ne": tr.ID}},
		bson.M{"$push": bson.M{"trainers": tr}})
	if err != nil {
		return false, models.ClassTrainer{}, err
	}
	if res.MatchedCount == 1 {
		return true, tr, nil
	}

	// Nothing matched: either the class is missing or the trainer is listed.
	c, err := s.GetByName(ctx, name)
	if err != nil {
		return false, models.ClassTrainer{}, err
	}
	for _, t := range c.Trainers {
		if t.ID == tr.ID {
			return false, t, nil
		}
	}
	// Removed between the update and the read; report what we know.
	return false, tr, nil
}

// IncrementBookings adds one to the class's booking counter.
func (s *Store) IncrementBookings(ctx context.Context, name string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"name": normalize.Name(name)},
		bson.M{"$inc": bson.M{"totalBookings": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storeerr.NotFound(entity)
	}
	return nil
}

// Update holds the editable catalog fields. Nil fields are left alone.
type Update struct {
	Name        *string
	Description *string
	Image       *string
	Details     *string
}

// Update applies upd to the class with id.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Description != nil {
		set["description"] = strings.TrimSpace(*upd.Description)
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Details != nil {
		set["details"] = *upd.Details
	}
	if len(set) == 0 {
		_, err := s.GetByID(ctx, id)
		return err
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return errDupName
		}
		return err
	}
	if res.MatchedCount == 0 {
		return storeerr.NotFound(entity)
	}
	return nil
}

// DeleteByName removes the class called name.
func (s *Store) DeleteByName(ctx context.Context, name string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"name": normalize.Name(name)})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount == 0 {
		return 0, storeerr.NotFound(entity)
	}
	return res.DeletedCount, nil
}
