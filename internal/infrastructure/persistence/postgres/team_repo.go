package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fantaprof/fantaprof-server/internal/domain/team"
)

// ══════════════════════════════════════════════════════════════════════════════
// TEAM STORE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// TeamRepository implements team.Store for PostgreSQL. Rows are always
// read back in insertion order (created_at, id) so leaderboard ties keep
// their first-seen order across calls.
type TeamRepository struct {
	conn *Connection
}

// NewTeamRepository creates a new TeamRepository.
func NewTeamRepository(conn *Connection) *TeamRepository {
	return &TeamRepository{conn: conn}
}

// Save inserts a membership row.
func (r *TeamRepository) Save(ctx context.Context, m *team.Membership) error {
	query := `
		INSERT INTO team_memberships (id, team_name, user_id, professor_id, is_captain, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.conn.Exec(ctx, query,
		m.ID,
		m.TeamName,
		m.UserID,
		m.ProfessorID,
		m.IsCaptain,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save membership: %w", err)
	}
	return nil
}

// FindByUserID returns the user's membership rows in insertion order.
func (r *TeamRepository) FindByUserID(ctx context.Context, userID string) ([]*team.Membership, error) {
	query := `
		SELECT id, team_name, user_id, professor_id, is_captain, created_at
		FROM team_memberships
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// All returns every membership row in insertion order.
func (r *TeamRepository) All(ctx context.Context) ([]*team.Membership, error) {
	query := `
		SELECT id, team_name, user_id, professor_id, is_captain, created_at
		FROM team_memberships
		ORDER BY created_at, id
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *TeamRepository) collect(rows pgx.Rows) ([]*team.Membership, error) {
	memberships := make([]*team.Membership, 0)
	for rows.Next() {
		var m team.Membership
		if err := rows.Scan(&m.ID, &m.TeamName, &m.UserID, &m.ProfessorID, &m.IsCaptain, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		memberships = append(memberships, &m)
	}
	return memberships, rows.Err()
}
