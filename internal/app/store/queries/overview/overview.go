// Package overview builds the admin dashboard report: subscriber count,
// every booking (newest first), and the summed booking revenue.
package overview

import (
	"context"

	subscriberstore "github.com/dalemusser/fittrack/internal/app/store/subscribers"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DateFormat renders the booking date (taken from the ObjectID timestamp).
const DateFormat = "%d/%m/%Y"

// BookingRow is one booking as the dashboard shows it.
type BookingRow struct {
	ID          string  `bson:"_id" json:"_id"`
	Date        string  `bson:"date" json:"date"`
	UserEmail   string  `bson:"userEmail" json:"userEmail"`
	UserName    string  `bson:"userName,omitempty" json:"userName,omitempty"`
	TrainerName string  `bson:"trainerName,omitempty" json:"trainerName,omitempty"`
	ClassName   string  `bson:"className,omitempty" json:"className,omitempty"`
	PackageName string  `bson:"packageName" json:"packageName"`
	Price       float64 `bson:"price" json:"price"`
	PaymentID   string  `bson:"paymentId" json:"paymentId"`
}

// Report is the admin overview payload.
type Report struct {
	TotalSubscribers int64        `json:"totalSubscribers"`
	Bookings         []BookingRow `json:"bookings"`
	TotalBalance     float64      `json:"totalBalance"`
}

// Fetch runs the three overview queries. With no bookings TotalBalance is 0.
func Fetch(ctx context.Context, db *mongo.Database) (Report, error) {
	var rep Report

	n, err := subscriberstore.New(db).Count(ctx)
	if err != nil {
		return Report{}, err
	}
	rep.TotalSubscribers = n

	if rep.Bookings, err = bookingRows(ctx, db.Collection("bookings")); err != nil {
		return Report{}, err
	}
	if rep.TotalBalance, err = totalBalance(ctx, db.Collection("bookings")); err != nil {
		return Report{}, err
	}
	return rep, nil
}

func bookingRows(ctx context.Context, c *mongo.Collection) ([]BookingRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: bson.M{"$toString": "$_id"}},
			{Key: "date", Value: bson.M{"$dateToString": bson.M{
				"format": DateFormat,
				"date":   bson.M{"$toDate": "$_id"},
			}}},
			{Key: "userEmail", Value: 1},
			{Key: "userName", Value: 1},
			{Key: "trainerName", Value: 1},
			{Key: "className", Value: 1},
			{Key: "packageName", Value: 1},
			{Key: "price", Value: 1},
			{Key: "paymentId", Value: 1},
		}}},
	}
	cur, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []BookingRow{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func totalBalance(ctx context.Context, c *mongo.Collection) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.M{"$sum": "$price"}},
		}}},
	}
	cur, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		// No bookings: $group emits nothing.
		return 0, cur.Err()
	}
	var row struct {
		Total float64 `bson:"total"`
	}
	if err := cur.Decode(&row); err != nil {
		return 0, err
	}
	return row.Total, nil
}
