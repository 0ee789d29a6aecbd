// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/fittrack/internal/app/system/auth"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/domain/models"
)

// Caller returns the verified email and role of the request, and whether a
// verified token was present. Unknown roles fail closed.
func Caller(r *http.Request) (email string, role models.Role, ok bool) {
	c, ok := auth.ClaimsFrom(r.Context())
	if !ok || !c.Role.Valid() {
		return "", "", false
	}
	return normalize.Email(c.Email), c.Role, true
}

// Role returns the caller's role.
func Role(r *http.Request) (models.Role, bool) {
	_, role, ok := Caller(r)
	return role, ok
}

// Email returns the caller's normalized email.
func Email(r *http.Request) (string, bool) {
	email, _, ok := Caller(r)
	return email, ok
}

// IsSelfOrAdmin reports whether the caller owns email or is an admin.
// Forum post edits use it.
func IsSelfOrAdmin(r *http.Request, email string) bool {
	if IsAdmin(r) {
		return true
	}
	me, ok := Email(r)
	return ok && me != "" && me == normalize.Email(email)
}
