package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// AccountRole distinguishes the two account kinds stored in the accounts table.
type AccountRole string

const (
	// RoleCandidate is a job seeker account.
	RoleCandidate AccountRole = "candidate"
	// RoleCompany is a recruiter/company account.
	RoleCompany AccountRole = "company"
)

// Valid returns true if the AccountRole is valid.
func (r AccountRole) Valid() bool {
	return r == RoleCandidate || r == RoleCompany
}

// Account represents either a candidate or a company account. Both kinds share
// the same credential and moderation fields; Resume is only meaningful for
// candidates. PasswordHash and the verification token never leave the server.
type Account struct {
	ID                string      `json:"id"          db:"id"`
	Role              AccountRole `json:"role"        db:"role"`
	Name              string      `json:"name"        db:"name"`
	Email             string      `json:"email"       db:"email"`
	PasswordHash      string      `json:"-"           db:"password_hash"`
	Image             string      `json:"image"       db:"image"`
	Resume            string      `json:"resume"      db:"resume"`
	IsVerified        bool        `json:"is_verified" db:"is_verified"`
	VerificationToken *string     `json:"-"           db:"verification_token"`
	TokenExpiresAt    *time.Time  `json:"-"           db:"token_expires_at"`
	Locked            bool        `json:"locked"      db:"locked"`
	CreatedAt         time.Time   `json:"created_at"  db:"created_at"`
}

// CreateAccountRequest represents a registration request. PasswordHash and the
// verification token are filled in by the service layer, never by the caller.
type CreateAccountRequest struct {
	Role              AccountRole
	Name              string
	Email             string
	PasswordHash      string
	Image             string
	VerificationToken string
	TokenExpiresAt    time.Time
}

// Validate validates the CreateAccountRequest fields.
func (r *CreateAccountRequest) Validate() error {
	if !r.Role.Valid() {
		return errors.New("invalid account role")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("a valid email is required")
	}
	if r.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// AccountSummary is the moderation view of an account exposed to admins.
type AccountSummary struct {
	ID     string      `json:"id"     db:"id"`
	Role   AccountRole `json:"role"   db:"role"`
	Name   string      `json:"name"   db:"name"`
	Email  string      `json:"email"  db:"email"`
	Image  string      `json:"image"  db:"image"`
	Locked bool        `json:"locked" db:"locked"`
}

// PortalStats are the aggregate counts shown on the admin dashboard.
type PortalStats struct {
	Users        int `json:"users"`
	Companies    int `json:"companies"`
	Jobs         int `json:"jobs"`
	Applications int `json:"applications"`
}
