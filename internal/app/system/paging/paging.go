// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultLimit is the page size the web client has always asked for.
	DefaultLimit = 6
	// MaxLimit caps caller-supplied limits.
	MaxLimit = 50
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Parse reads ?page= and ?limit= from r. Missing, non-numeric, or
// non-positive values fall back to page 1 and DefaultLimit; limits above
// MaxLimit are clamped.
func Parse(r *http.Request) Params {
	return Params{
		Page:  positiveInt(query.Get(r, "page"), 1),
		Limit: min(positiveInt(query.Get(r, "limit"), DefaultLimit), MaxLimit),
	}
}

func positiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Skip is the number of documents before this page.
func (p Params) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// ApplyToFind sets skip, limit, and a stable _id sort so that walking pages
// 1..TotalPages visits every matching document exactly once.
func (p Params) ApplyToFind(find *options.FindOptions) *options.FindOptions {
	return find.
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
}

// TotalPages is ceil(total/limit). Zero matches yield zero pages.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}

// Page is one page of a listing as sent to the client.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPage assembles a Page. A nil items slice is replaced with an empty one
// so the JSON is always an array.
func NewPage[T any](items []T, p Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: TotalPages(total, p.Limit),
	}
}
