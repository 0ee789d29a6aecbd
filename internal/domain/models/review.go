package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is feedback a member leaves for a class.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ClassName string             `bson:"className,omitempty" json:"className,omitempty"`
	UserEmail string             `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	UserName  string             `bson:"userName,omitempty" json:"userName,omitempty"`
	UserImage string             `bson:"userImage,omitempty" json:"userImage,omitempty"`
	Rating    int                `bson:"rating" json:"rating"`
	Feedback  string             `bson:"feedback" json:"feedback"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
