// internal/app/system/authz/roles.go
package authz

import (
	"net/http"

	"github.com/dalemusser/fittrack/internal/domain/models"
)

// HasAnyRole reports whether the request's verified claims carry one of roles.
// Returns false for requests that did not pass the token verifier.
func HasAnyRole(r *http.Request, roles ...models.Role) bool {
	role, ok := Role(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == want {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller is an admin.
func IsAdmin(r *http.Request) bool { return HasAnyRole(r, models.RoleAdmin) }
