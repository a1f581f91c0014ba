package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fantaprof/fantaprof-server/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER STORE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// UserRepository implements user.Store for PostgreSQL.
type UserRepository struct {
	conn *Connection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{conn: conn}
}

// Create inserts the user.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.conn.Exec(ctx, query,
		u.ID,
		u.Username,
		u.PasswordHash,
		string(u.Role),
		u.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return user.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID returns the user by id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.conn.QueryRow(ctx, query, id))
}

// GetByUsername returns the user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = $1
	`

	return r.scanUser(r.conn.QueryRow(ctx, query, username))
}

func (r *UserRepository) scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	var role string

	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	u.Role = user.Role(role)
	return &u, nil
}
