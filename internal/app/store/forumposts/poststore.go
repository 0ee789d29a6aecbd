package poststore

import (
	"context"
	"time"

	"github.com/dalemusser/fittrack/internal/app/store/storeerr"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/app/system/paging"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const entity = "forum post"

// VoteUp is the vote type that counts as an upvote. Any other value is a downvote.
const VoteUp = "up"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("forum_posts")}
}

// Create inserts a post with zeroed votes. Date defaults to now.
func (s *Store) Create(ctx context.Context, p models.ForumPost) (models.ForumPost, error) {
	p.ID = primitive.NewObjectID()
	p.Author.Email = normalize.Email(p.Author.Email)
	p.Votes = models.Votes{}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.ForumPost{}, err
	}
	return p, nil
}

// GetByID loads one post.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ForumPost, error) {
	var p models.ForumPost
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.ForumPost{}, storeerr.FromFind(entity, err)
	}
	return p, nil
}

// List returns one page of posts and the total post count.
func (s *Store) List(ctx context.Context, p paging.Params) ([]models.ForumPost, int64, error) {
	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	cur, err := s.c.Find(ctx, bson.M{}, p.ApplyToFind(options.Find()))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []models.ForumPost{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Vote increments votes.upvotes when voteType is "up" and votes.downvotes
// otherwise.
func (s *Store) Vote(ctx context.Context, id primitive.ObjectID, voteType string) error {
	field := "votes.downvotes"
	if voteType == VoteUp {
		field = "votes.upvotes"
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storeerr.NotFound(entity)
	}
	return nil
}

// Edit overwrites title, content and author of the post with id.
func (s *Store) Edit(ctx context.Context, id primitive.ObjectID, title, content string, author models.PostAuthor) error {
	author.Email = normalize.Email(author.Email)
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":   title,
		"content": content,
		"author":  author,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storeerr.NotFound(entity)
	}
	return nil
}
