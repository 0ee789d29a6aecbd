// Package featured provides the "top N by field" listings shown on the home page.
package featured

import (
	"context"

	"github.com/dalemusser/fittrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultN is how many featured items the home page shows.
const DefaultN = 6

// TopN returns the first n documents of coll sorted descending by field.
// Ties keep insertion order.
func TopN[T any](ctx context.Context, coll *mongo.Collection, field string, n int64) ([]T, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: field, Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: n}},
	}
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Classes returns the most-booked classes.
func Classes(ctx context.Context, db *mongo.Database) ([]models.Class, error) {
	return TopN[models.Class](ctx, db.Collection("classes"), "totalBookings", DefaultN)
}

// Posts returns the most recent forum posts.
func Posts(ctx context.Context, db *mongo.Database) ([]models.ForumPost, error) {
	return TopN[models.ForumPost](ctx, db.Collection("forum_posts"), "date", DefaultN)
}
