// internal/app/system/sanitize/sanitize.go
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// Text strips every tag. Used for titles, names and short free-text fields.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// Content keeps the safe subset of HTML a rich-text editor produces
// (paragraphs, emphasis, lists, links, images) and drops scripts,
// event handlers and javascript: URLs.
func Content(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}
