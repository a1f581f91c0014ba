// Package professor contains the professor aggregate: the scorable unit of
// the game. A professor has a hiring cost and an accumulated score; the
// score changes only through signed deltas applied by an admin.
package professor

import (
	"strings"
	"time"

	"github.com/fantaprof/fantaprof-server/internal/domain/shared"
)

// Domain errors for the professor aggregate.
var (
	ErrNotFound      = shared.NewDomainError("professor", "Find", shared.ErrNotFound, "professor not found")
	ErrAlreadyExists = shared.NewDomainError("professor", "Create", shared.ErrAlreadyExists, "professor already exists")
	ErrEmptyName     = shared.NewDomainError("professor", "Validate", shared.ErrEmptyValue, "professor name cannot be empty")
	ErrNameTooLong   = shared.NewDomainError("professor", "Validate", shared.ErrInvalidInput, "professor name too long")
	ErrNegativeCost  = shared.NewDomainError("professor", "Validate", shared.ErrNegativeValue, "professor cost cannot be negative")
)

// MaxNameLength bounds the display name.
const MaxNameLength = 100

// Name is the professor's display name, unique across the roster.
type Name string

// IsValid checks that the name is non-blank and within bounds.
func (n Name) IsValid() bool {
	trimmed := strings.TrimSpace(string(n))
	return trimmed != "" && len(trimmed) <= MaxNameLength
}

func (n Name) String() string {
	return string(n)
}

// Cost is the hiring cost in game currency. It is persisted and returned
// to callers but no budget is enforced when assembling a team.
type Cost int

// IsValid checks that the cost is non-negative.
func (c Cost) IsValid() bool {
	return c >= 0
}

// Professor is the aggregate root. Score is a running signed total and
// may go negative after a streak of penalties.
type Professor struct {
	ID        string
	Name      Name
	Cost      Cost
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New validates inputs and builds a professor with a zero score.
func New(id string, name Name, cost Cost) (*Professor, error) {
	if !name.IsValid() {
		if strings.TrimSpace(name.String()) == "" {
			return nil, ErrEmptyName
		}
		return nil, ErrNameTooLong
	}
	if !cost.IsValid() {
		return nil, ErrNegativeCost
	}

	now := time.Now().UTC()
	return &Professor{
		ID:        id,
		Name:      Name(strings.TrimSpace(name.String())),
		Cost:      cost,
		Score:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyDelta adds a signed delta to the running score.
func (p *Professor) ApplyDelta(delta int) {
	p.Score += delta
	p.UpdatedAt = time.Now().UTC()
}
