// Package storeerr holds the sentinel errors shared by every store.
//
// Stores wrap them with the entity name, e.g. fmt.Errorf("class %w", ErrNotFound),
// so the message reads "class not found" and errors.Is still matches.
package storeerr

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrBadID     = errors.New("invalid id")
)

// NotFound wraps ErrNotFound with an entity name.
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// FromFind converts mongo.ErrNoDocuments into a NotFound for entity and
// passes other errors through.
func FromFind(entity string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return NotFound(entity)
	}
	return err
}

// ParseID parses a hex ObjectID coming from a URL.
func ParseID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrBadID, hex)
	}
	return oid, nil
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
