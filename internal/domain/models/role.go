// internal/domain/models/role.go
package models

import (
	"fmt"
	"strings"
)

// Role is the access level of a FitTrack user.
type Role string

const (
	RoleMember  Role = "member"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// Roles lists every valid role. The users collection validator is built from it.
var Roles = []Role{RoleMember, RoleTrainer, RoleAdmin}

// ParseRole maps a free-form string onto a Role. Matching is case-insensitive
// and ignores surrounding whitespace.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r.Valid() {
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of Roles.
func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }
