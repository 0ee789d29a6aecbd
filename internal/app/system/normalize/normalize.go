// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address. Every store keys on the result.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and collapses internal runs of spaces.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status trims a status value. Trainer statuses are case-sensitive
// ("pending", "Verified", "Rejected"), so no case folding happens here.
func Status(s string) string {
	return strings.TrimSpace(s)
}
