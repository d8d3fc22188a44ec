package auth

import "strings"

// Role is a user role as carried in the JWT role claim.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
	RoleAdmin   Role = "ADMIN"
)

// NormalizeRole uppercases a raw role string and strips an optional "ROLE_"
// prefix, so "role_admin", "ROLE_ADMIN" and "admin" all normalize to ADMIN.
func NormalizeRole(raw string) Role {
	r := strings.ToUpper(strings.TrimSpace(raw))
	r = strings.TrimPrefix(r, "ROLE_")
	return Role(r)
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role is ADMIN.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
