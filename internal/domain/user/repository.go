package user

import "context"

// Store is the persistence port for user accounts.
type Store interface {
	// Create inserts the user, or returns ErrAlreadyExists on a duplicate
	// username.
	Create(ctx context.Context, u *User) error

	// GetByID returns the user by id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByUsername returns the user by username, or ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Authenticator is the opaque credential-check collaborator. An unknown
// username surfaces as ErrNotFound; a wrong password as ErrBadCredential.
// The two are distinguishable with errors.Is at the boundary.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*User, error)
}
