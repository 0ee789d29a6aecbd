// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a FitTrack account. It is created on first sign-in and keyed by email.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email string             `bson:"email" json:"email"`
	Name  string             `bson:"name" json:"name"`
	Image string             `bson:"image,omitempty" json:"image,omitempty"`
	Role  Role               `bson:"role" json:"role"`

	// Timestamp is the creation time in milliseconds since the epoch.
	Timestamp int64     `bson:"timestamp" json:"timestamp"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
