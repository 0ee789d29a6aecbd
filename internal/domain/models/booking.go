// internal/domain/models/booking.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a paid reservation of a trainer slot.
//
// The ObjectID carries the creation timestamp; the admin overview formats it
// as the booking date.
type Booking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserEmail    string             `bson:"userEmail" json:"userEmail"`
	UserName     string             `bson:"userName,omitempty" json:"userName,omitempty"`
	TrainerEmail string             `bson:"trainerEmail,omitempty" json:"trainerEmail,omitempty"`
	TrainerName  string             `bson:"trainerName,omitempty" json:"trainerName,omitempty"`
	SlotID       string             `bson:"slotId,omitempty" json:"slotId,omitempty"`
	SlotName     string             `bson:"slotName,omitempty" json:"slotName,omitempty"`
	ClassName    string             `bson:"className,omitempty" json:"className,omitempty"`
	PackageName  string             `bson:"packageName" json:"packageName"`
	Price        float64            `bson:"price" json:"price"`
	PaymentID    string             `bson:"paymentId" json:"paymentId"`
	Date         time.Time          `bson:"date" json:"date"`
}
