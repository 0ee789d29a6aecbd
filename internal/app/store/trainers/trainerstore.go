package trainerstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/fittrack/internal/app/store/storeerr"
	userstore "github.com/dalemusser/fittrack/internal/app/store/users"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/app/system/txn"
	"github.com/dalemusser/fittrack/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const entity = "trainer"

// ErrEmailMismatch is returned by Delete when the caller names an email other
// than the one the application was filed under.
var ErrEmailMismatch = errors.New("email does not match trainer")

type Store struct {
	db    *mongo.Database
	c     *mongo.Collection
	users *userstore.Store
	log   *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		db:    db,
		c:     db.Collection("trainers"),
		users: userstore.New(db),
		log:   logger,
	}
}

// Apply files a new pending application. If the email already has a pending
// or verified application, that one is returned with created=false.
func (s *Store) Apply(ctx context.Context, t models.Trainer) (trainer models.Trainer, created bool, err error) {
	t.ID = primitive.NewObjectID()
	t.Email = normalize.Email(t.Email)
	t.Name = normalize.Name(t.Name)
	t.Status = models.TrainerPending
	t.Feedback = ""
	t.ActiveEmail = t.Email
	t.AppliedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			var existing models.Trainer
			if ferr := s.c.FindOne(ctx, bson.M{"activeEmail": t.Email}).Decode(&existing); ferr != nil {
				return models.Trainer{}, false, storeerr.FromFind(entity, ferr)
			}
			return existing, false, nil
		}
		return models.Trainer{}, false, err
	}
	return t, true, nil
}

// List returns trainers, optionally only those with status.
func (s *Store) List(ctx context.Context, status string) ([]models.Trainer, error) {
	filter := bson.M{}
	if st := normalize.Status(status); st != "" {
		filter["status"] = st
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Trainer{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one trainer.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Trainer, error) {
	var t models.Trainer
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Trainer{}, storeerr.FromFind(entity, err)
	}
	return t, nil
}

// LatestByEmail returns the most recent application filed by email,
// whatever its status.
func (s *Store) LatestByEmail(ctx context.Context, email string) (models.Trainer, error) {
	var t models.Trainer
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}, opts).Decode(&t); err != nil {
		return models.Trainer{}, storeerr.FromFind(entity, err)
	}
	return t, nil
}

// VerifiedIDByEmail returns the id of the verified trainer with email.
func (s *Store) VerifiedIDByEmail(ctx context.Context, email string) (primitive.ObjectID, error) {
	var row struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	filter := bson.M{"email": normalize.Email(email), "status": models.TrainerVerified}
	if err := s.c.FindOne(ctx, filter, opts).Decode(&row); err != nil {
		return primitive.NilObjectID, storeerr.FromFind("verified trainer", err)
	}
	return row.ID, nil
}

// decide moves a pending application to its final state. Anything not
// pending (already decided, or missing) is reported as not found.
func (s *Store) decide(ctx context.Context, id primitive.ObjectID, update bson.M) (models.Trainer, error) {
	var t models.Trainer
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.TrainerPending},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		return models.Trainer{}, storeerr.FromFind("pending application", err)
	}
	return t, nil
}

// Confirm verifies a pending application and promotes the applicant's user
// account to trainer.
func (s *Store) Confirm(ctx context.Context, id primitive.ObjectID) (models.Trainer, error) {
	var out models.Trainer
	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		t, err := s.decide(ctx, id, bson.M{"$set": bson.M{"status": models.TrainerVerified}})
		if err != nil {
			return err
		}
		if _, err := s.users.SetRoleByEmail(ctx, t.Email, models.RoleTrainer); err != nil {
			return err
		}
		out = t
		return nil
	})
	return out, err
}

// Reject closes a pending application with feedback. The email is freed
// for a later application.
func (s *Store) Reject(ctx context.Context, id primitive.ObjectID, feedback string) (models.Trainer, error) {
	return s.decide(ctx, id, bson.M{
		"$set":   bson.M{"status": models.TrainerRejected, "feedback": feedback},
		"$unset": bson.M{"activeEmail": ""},
	})
}

// DeleteResult reports what a cascade delete touched.
type DeleteResult struct {
	SlotsDeleted   int64 `json:"slotsDeleted"`
	ClassesUpdated int64 `json:"classesUpdated"`
	DeletedCount   int64 `json:"deletedCount"`
}

// Delete removes a trainer and everything hanging off it: their slots, their
// entries in every class's trainer list, and their trainer role (reset to
// member). email, when given, must match the trainer's stored email.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID, email string) (DeleteResult, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}
	if e := normalize.Email(email); e != "" && e != t.Email {
		return DeleteResult{}, ErrEmailMismatch
	}
	email = t.Email

	var res DeleteResult
	err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		res = DeleteResult{}

		slots, err := s.db.Collection("slots").DeleteMany(ctx, bson.M{"trainerEmail": email})
		if err != nil {
			return err
		}
		res.SlotsDeleted = slots.DeletedCount

		classes, err := s.db.Collection("classes").UpdateMany(ctx,
			bson.M{"trainers.id": id},
			bson.M{"$pull": bson.M{"trainers": bson.M{"id": id}}})
		if err != nil {
			return err
		}
		res.ClassesUpdated = classes.ModifiedCount

		if _, err := s.users.SetRoleByEmail(ctx, email, models.RoleMember); err != nil {
			return err
		}

		del, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if del.DeletedCount == 0 {
			return storeerr.NotFound(entity)
		}
		res.DeletedCount = del.DeletedCount
		return nil
	})
	if err != nil {
		return DeleteResult{}, err
	}
	return res, nil
}
