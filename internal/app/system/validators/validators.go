// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/fittrack/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("trainers", trainersSchema())
	ensure("classes", classesSchema())
	ensure("slots", slotsSchema())
	ensure("forum_posts", forumPostsSchema())
	ensure("bookings", bookingsSchema())
	ensure("reviews", reviewsSchema())

	// Only a unique email index; no validator needed.
	ensure("subscribers", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func schema(required bson.A, props bson.M) bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   required,
			"properties": props,
		},
	}
}

func roleEnum() bson.A {
	out := bson.A{}
	for _, r := range models.Roles {
		out = append(out, string(r))
	}
	return out
}

func usersSchema() bson.M {
	return schema(bson.A{"email", "role"}, bson.M{
		"email":     nonBlank,
		"name":      bson.M{"bsonType": "string"},
		"role":      bson.M{"enum": roleEnum()},
		"timestamp": bson.M{"bsonType": bson.A{"long", "int"}},
	})
}

func trainersSchema() bson.M {
	return schema(bson.A{"email", "status"}, bson.M{
		"email": nonBlank,
		"status": bson.M{"enum": bson.A{
			string(models.TrainerPending),
			string(models.TrainerVerified),
			string(models.TrainerRejected),
		}},
		"skills":        bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
		"availableDays": bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
	})
}

func classesSchema() bson.M {
	return schema(bson.A{"name", "name_ci", "totalBookings"}, bson.M{
		"name":          nonBlank,
		"name_ci":       nonBlank,
		"totalBookings": bson.M{"bsonType": bson.A{"long", "int"}, "minimum": 0},
		"trainers": bson.M{
			"bsonType": "array",
			"items": bson.M{
				"bsonType": "object",
				"required": bson.A{"id"},
				"properties": bson.M{
					"id": bson.M{"bsonType": "objectId"},
				},
			},
		},
	})
}

func slotsSchema() bson.M {
	return schema(bson.A{"trainerEmail", "slotName"}, bson.M{
		"trainerEmail": nonBlank,
		"slotName":     nonBlank,
		"days":         bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
	})
}

func forumPostsSchema() bson.M {
	return schema(bson.A{"title", "author", "votes"}, bson.M{
		"title": nonBlank,
		"author": bson.M{
			"bsonType": "object",
			"required": bson.A{"email"},
		},
		"votes": bson.M{
			"bsonType": "object",
			"required": bson.A{"upvotes", "downvotes"},
			"properties": bson.M{
				"upvotes":   bson.M{"bsonType": bson.A{"long", "int"}, "minimum": 0},
				"downvotes": bson.M{"bsonType": bson.A{"long", "int"}, "minimum": 0},
			},
		},
	})
}

func bookingsSchema() bson.M {
	return schema(bson.A{"userEmail", "price"}, bson.M{
		"userEmail": nonBlank,
		"price":     bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0},
	})
}

func reviewsSchema() bson.M {
	return schema(bson.A{"rating"}, bson.M{
		"rating": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1, "maximum": 5},
	})
}
