package userstore

import (
	"context"
	"time"

	"github.com/dalemusser/fittrack/internal/app/store/storeerr"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const entity = "user"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, storeerr.FromFind(entity, err)
	}
	return u, nil
}

// GetByEmail looks up a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return models.User{}, storeerr.FromFind(entity, err)
	}
	return u, nil
}

// RoleByEmail returns the stored role for email, or RoleMember when no user
// exists yet. Stored values that are not a known role also read as member.
func (s *Store) RoleByEmail(ctx context.Context, email string) (models.Role, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if storeerr.IsNotFound(err) {
			return models.RoleMember, nil
		}
		return "", err
	}
	if !u.Role.Valid() {
		return models.RoleMember, nil
	}
	return u.Role, nil
}

// EnsureByEmail inserts u as a new member unless a user with the same email
// already exists, in which case the stored user is returned and created is
// false. The unique email index makes this a single atomic decision.
func (s *Store) EnsureByEmail(ctx context.Context, u models.User) (user models.User, created bool, err error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)
	u.Role = models.RoleMember
	u.Timestamp = now.UnixMilli()
	u.CreatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			existing, gerr := s.GetByEmail(ctx, u.Email)
			return existing, false, gerr
		}
		return models.User{}, false, err
	}
	return u, true, nil
}

// ProfileUpdate holds the self-editable fields. Nil fields are left alone.
type ProfileUpdate struct {
	Name  *string
	Image *string
}

// UpdateProfile applies upd to the user with id.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = normalize.Name(*upd.Name)
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if len(set) == 0 {
		// Nothing to write; still report a missing user.
		_, err := s.GetByID(ctx, id)
		return err
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storeerr.NotFound(entity)
	}
	return nil
}

// SetRoleByEmail sets the role of the user with email. A missing user is
// not an error: a trainer may apply before ever signing in.
func (s *Store) SetRoleByEmail(ctx context.Context, email string, role models.Role) (matched bool, err error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
