package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROFESSOR STORE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ProfessorRepository implements professor.Store for PostgreSQL.
type ProfessorRepository struct {
	conn *Connection
}

// NewProfessorRepository creates a new ProfessorRepository.
func NewProfessorRepository(conn *Connection) *ProfessorRepository {
	return &ProfessorRepository{conn: conn}
}

// Get returns the professor by id.
func (r *ProfessorRepository) Get(ctx context.Context, id string) (*professor.Professor, error) {
	query := `
		SELECT id, name, cost, score, created_at, updated_at
		FROM professors
		WHERE id = $1
	`

	row := r.conn.QueryRow(ctx, query, id)
	return r.scanProfessor(row)
}

// Save inserts the professor, or updates it when the id already exists.
func (r *ProfessorRepository) Save(ctx context.Context, p *professor.Professor) error {
	query := `
		INSERT INTO professors (id, name, cost, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			cost = EXCLUDED.cost,
			score = EXCLUDED.score,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.conn.Exec(ctx, query,
		p.ID,
		p.Name.String(),
		int(p.Cost),
		p.Score,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return professor.ErrAlreadyExists
		}
		return fmt.Errorf("failed to save professor: %w", err)
	}

	return nil
}

// Delete removes the professor by id. Membership rows are untouched.
func (r *ProfessorRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM professors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete professor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return professor.ErrNotFound
	}
	return nil
}

// All returns every professor ordered by creation time.
func (r *ProfessorRepository) All(ctx context.Context) ([]*professor.Professor, error) {
	query := `
		SELECT id, name, cost, score, created_at, updated_at
		FROM professors
		ORDER BY created_at, id
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query professors: %w", err)
	}
	defer rows.Close()

	professors := make([]*professor.Professor, 0)
	for rows.Next() {
		p, err := r.scanProfessorRow(rows)
		if err != nil {
			return nil, err
		}
		professors = append(professors, p)
	}
	return professors, rows.Err()
}

// ─────────────────────────────────────────────────────────────────────────────
// Scan helpers
// ─────────────────────────────────────────────────────────────────────────────

func (r *ProfessorRepository) scanProfessor(row pgx.Row) (*professor.Professor, error) {
	var p professor.Professor
	var name string
	var cost int

	err := row.Scan(&p.ID, &name, &cost, &p.Score, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, professor.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan professor: %w", err)
	}

	p.Name = professor.Name(name)
	p.Cost = professor.Cost(cost)
	return &p, nil
}

func (r *ProfessorRepository) scanProfessorRow(rows pgx.Rows) (*professor.Professor, error) {
	var p professor.Professor
	var name string
	var cost int

	if err := rows.Scan(&p.ID, &name, &cost, &p.Score, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan professor row: %w", err)
	}

	p.Name = professor.Name(name)
	p.Cost = professor.Cost(cost)
	return &p, nil
}
