// internal/domain/models/trainer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerStatus is the state of a trainer application.
type TrainerStatus string

// The capitalized values are what the web client has always stored; keep them.
const (
	TrainerPending  TrainerStatus = "pending"
	TrainerVerified TrainerStatus = "Verified"
	TrainerRejected TrainerStatus = "Rejected"
)

// Trainer is a trainer application and, once verified, the trainer profile.
//
// NOTE:
//   - ActiveEmail mirrors Email while the application is pending or verified
//     and is unset on rejection. A unique sparse index on it keeps one live
//     application per email while allowing re-application after a rejection.
type Trainer struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	Name          string             `bson:"name" json:"name"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Age           int                `bson:"age,omitempty" json:"age,omitempty"`
	Bio           string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills        []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	AvailableDays []string           `bson:"availableDays,omitempty" json:"availableDays,omitempty"`
	AvailableTime string             `bson:"availableTime,omitempty" json:"availableTime,omitempty"`
	Experience    int                `bson:"experience,omitempty" json:"experience,omitempty"`

	Status   TrainerStatus `bson:"status" json:"status"`
	Feedback string        `bson:"feedback,omitempty" json:"feedback,omitempty"`

	ActiveEmail string    `bson:"activeEmail,omitempty" json:"-"`
	AppliedAt   time.Time `bson:"appliedAt" json:"appliedAt"`
}
