// Package user contains the account records behind logins. Roles gate the
// admin boundary: only admins create, delete, and rescore professors.
package user

import (
	"strings"
	"time"

	"github.com/fantaprof/fantaprof-server/internal/domain/shared"
)

// Domain errors for the user aggregate.
var (
	ErrNotFound      = shared.NewDomainError("user", "Find", shared.ErrNotFound, "user not found")
	ErrAlreadyExists = shared.NewDomainError("user", "Create", shared.ErrAlreadyExists, "username already taken")
	ErrEmptyUsername = shared.NewDomainError("user", "Validate", shared.ErrEmptyValue, "username cannot be empty")
	ErrInvalidRole   = shared.NewDomainError("user", "Validate", shared.ErrInvalidInput, "invalid role")
	ErrBadCredential = shared.NewDomainError("user", "Authenticate", shared.ErrInvalidCredential, "invalid username or password")
	ErrEmptyPassword = shared.NewDomainError("user", "Validate", shared.ErrEmptyValue, "password cannot be empty")
)

// Role controls what the account may do at the HTTP boundary.
type Role string

const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
)

// IsValid checks that the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RolePlayer
}

// User is an account record. PasswordHash is opaque to the domain; only
// the authenticator knows how to verify it.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// New validates and builds a user record.
func New(id, username, passwordHash string, role Role) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrEmptyUsername
	}
	if passwordHash == "" {
		return nil, ErrEmptyPassword
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &User{
		ID:           id,
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// IsAdmin reports whether the account may use admin routes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
