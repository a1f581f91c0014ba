// Package auth implements the credential-check collaborator with bcrypt.
package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/fantaprof/fantaprof-server/internal/domain/user"
)

// BcryptAuthenticator implements user.Authenticator against a user.Store.
type BcryptAuthenticator struct {
	users user.Store
}

// NewBcryptAuthenticator creates the authenticator.
func NewBcryptAuthenticator(users user.Store) *BcryptAuthenticator {
	return &BcryptAuthenticator{users: users}
}

// Authenticate verifies the password against the stored hash. An unknown
// username returns user.ErrNotFound; a wrong password returns
// user.ErrBadCredential. The two remain distinguishable with errors.Is.
func (a *BcryptAuthenticator) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	u, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, user.ErrBadCredential
		}
		return nil, err
	}
	return u, nil
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
