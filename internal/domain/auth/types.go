// Package auth contains domain-level types for authentication.
// It is pure and free of framework/adapter concerns.
package auth

import "time"

// Role represents an application authorization role carried in the token.
// Keep string form for easy persistence in JWT claims.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCompany   Role = "company"
	RoleCandidate Role = "candidate"
)

// Valid returns true if the Role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCompany || r == RoleCandidate
}

// Principal is the authenticated identity extracted from a bearer token.
type Principal struct {
	AccountID string    `json:"account_id"`
	Role      Role      `json:"role"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin returns true if the principal carries the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
