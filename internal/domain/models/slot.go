package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Slot is a recurring time a trainer offers. It belongs to the trainer with
// TrainerEmail and is removed when that trainer is deleted.
type Slot struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TrainerEmail string             `bson:"trainerEmail" json:"trainerEmail"`
	TrainerName  string             `bson:"trainerName,omitempty" json:"trainerName,omitempty"`
	SlotName     string             `bson:"slotName" json:"slotName"`
	SlotTime     string             `bson:"slotTime" json:"slotTime"`
	Days         []string           `bson:"days,omitempty" json:"days,omitempty"`
	Classes      []string           `bson:"classes,omitempty" json:"classes,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
