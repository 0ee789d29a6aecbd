// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The unique indexes here are what make the insert-if-absent flows in the
stores atomic: users.email, subscribers.email, trainers.activeEmail and
classes.name.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	for _, set := range []struct {
		name   string
		ensure func(context.Context, *mongo.Database) error
	}{
		{"users", ensureUsers},
		{"subscribers", ensureSubscribers},
		{"trainers", ensureTrainers},
		{"classes", ensureClasses},
		{"slots", ensureSlots},
		{"forum_posts", ensureForumPosts},
		{"bookings", ensureBookings},
		{"reviews", ensureReviews},
	} {
		if err := set.ensure(ctx, db); err != nil {
			problems = append(problems, set.name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
	Sparse *bool  `bson:"sparse,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(b *bool) bool { return b != nil && *b }

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{} // sig -> index
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// ensureIndexSet makes the collection carry every index in models.
// An index with the same keys but a different name or different
// unique/sparse options is dropped and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// A collection that does not exist yet has no indexes; CreateOne creates it.
		existing = map[string]existingIndex{}
	}

	for _, m := range models {
		var name string
		var unique, sparse bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = boolVal(m.Options.Unique)
			sparse = boolVal(m.Options.Sparse)
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if boolVal(ex.Unique) == unique && boolVal(ex.Sparse) == sparse && (name == "" || ex.Name == name) {
				zap.L().Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", sig))
				continue
			}
			zap.L().Info("replacing index",
				zap.String("collection", coll.Name()),
				zap.String("from", ex.Name),
				zap.String("to", name),
				zap.String("keys", sig))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if unique && wafflemongo.IsDup(err) {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index on %s (duplicates present)", coll.Name(), name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.String("keys", sig),
				zap.Error(err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique),
			zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_users_role"),
		},
	})
}

func ensureSubscribers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("subscribers"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_subscribers_email"),
		},
	})
}

func ensureTrainers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("trainers"), []mongo.IndexModel{
		// One live (pending or Verified) application per email. Rejected
		// applications drop activeEmail, so the sparse index skips them.
		{
			Keys:    bson.D{{Key: "activeEmail", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_trainers_activeemail"),
		},
		// trainer-status lookup: latest application for an email
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_trainers_email__id"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_trainers_status__id"),
		},
	})
}

func ensureClasses(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("classes"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_classes_name"),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_classes_nameci__id"),
		},
		// featured classes
		{
			Keys:    bson.D{{Key: "totalBookings", Value: -1}},
			Options: options.Index().SetName("idx_classes_totalbookings"),
		},
	})
}

func ensureSlots(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("slots"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerEmail", Value: 1}},
			Options: options.Index().SetName("idx_slots_traineremail"),
		},
	})
}

func ensureForumPosts(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("forum_posts"), []mongo.IndexModel{
		// featured posts
		{
			Keys:    bson.D{{Key: "date", Value: -1}},
			Options: options.Index().SetName("idx_forumposts_date"),
		},
	})
}

func ensureBookings(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("bookings"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userEmail", Value: 1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_bookings_useremail__id"),
		},
	})
}

func ensureReviews(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("reviews"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "className", Value: 1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_reviews_classname__id"),
		},
	})
}
