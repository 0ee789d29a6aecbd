// internal/app/system/search/search.go
package search

import (
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Term folds a raw search query the same way stored *_ci fields are folded
// (case and diacritics), after trimming and collapsing spaces.
func Term(q string) string {
	return text.Fold(strings.Join(strings.Fields(q), " "))
}

// Contains returns a filter matching documents whose folded field contains
// q as a substring. An empty query yields an empty filter (match all).
//
//	filter := search.Contains("name_ci", r.URL.Query().Get("search"))
func Contains(field, q string) bson.M {
	term := Term(q)
	if term == "" {
		return bson.M{}
	}
	return bson.M{field: primitive.Regex{Pattern: regexp.QuoteMeta(term)}}
}
