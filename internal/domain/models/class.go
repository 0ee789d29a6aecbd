// internal/domain/models/class.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassTrainer is a reference to a trainer listed on a class.
// It is a copy for display; the trainers collection stays authoritative.
type ClassTrainer struct {
	ID    primitive.ObjectID `bson:"id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Image string             `bson:"image,omitempty" json:"image,omitempty"`
}

// Class is a catalog entry. Name is unique and is the key most routes use.
type Class struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	NameCI        string             `bson:"name_ci" json:"-"` // folded for search
	Description   string             `bson:"description" json:"description"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Details       string             `bson:"details,omitempty" json:"details,omitempty"`
	Trainers      []ClassTrainer     `bson:"trainers" json:"trainers"`
	TotalBookings int64              `bson:"totalBookings" json:"totalBookings"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
