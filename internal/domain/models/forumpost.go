// internal/domain/models/forumpost.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostAuthor is the author snapshot stored on a forum post.
type PostAuthor struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
	Role  Role   `bson:"role,omitempty" json:"role,omitempty"`
}

// Votes holds the two vote counters. Both only ever grow.
type Votes struct {
	Upvotes   int64 `bson:"upvotes" json:"upvotes"`
	Downvotes int64 `bson:"downvotes" json:"downvotes"`
}

// ForumPost is a community post written by a member, trainer or admin.
type ForumPost struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`
	Image   string             `bson:"image,omitempty" json:"image,omitempty"`
	Author  PostAuthor         `bson:"author" json:"author"`
	Date    time.Time          `bson:"date" json:"date"`
	Votes   Votes              `bson:"votes" json:"votes"`
}
