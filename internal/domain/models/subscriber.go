package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscriber is a newsletter sign-up. One document per email.
type Subscriber struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
