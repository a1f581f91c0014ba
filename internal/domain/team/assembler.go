package team

import (
	"context"

	"github.com/google/uuid"

	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
	"github.com/fantaprof/fantaprof-server/internal/domain/shared"
)

// Assembler turns a professor selection into persisted membership rows.
// Assembly is not idempotent: submitting the same selection twice stores
// the rows twice. No budget check is applied against professor costs.
type Assembler struct {
	professors professor.Store
	teams      Store
	newID      func() string
}

// NewAssembler creates an assembler backed by the given stores.
func NewAssembler(professors professor.Store, teams Store) *Assembler {
	return &Assembler{
		professors: professors,
		teams:      teams,
		newID:      uuid.NewString,
	}
}

// Assemble validates the selection and persists one membership row per
// professor. All ids are resolved before the first row is written, so a
// selection referencing an unknown professor stores nothing. Rows are
// written one by one; a storage failure mid-batch leaves the earlier rows
// in place and is reported to the caller.
//
// captainID is optional. When blank, no row is flagged and no score is
// doubled. When set it must be one of professorIDs.
func (a *Assembler) Assemble(ctx context.Context, userID, teamName string, professorIDs []string, captainID string) ([]*Membership, error) {
	if len(professorIDs) == 0 {
		return nil, ErrEmptySelection
	}

	picked := make([]*professor.Professor, 0, len(professorIDs))
	captainSeen := false
	for _, id := range professorIDs {
		p, err := a.professors.Get(ctx, id)
		if err != nil {
			if shared.IsNotFound(err) {
				return nil, shared.WrapError("team", "Assemble", shared.ErrInvalidSelection, "selection references unknown professor", err)
			}
			return nil, err
		}
		picked = append(picked, p)
		if captainID != "" && p.ID == captainID {
			captainSeen = true
		}
	}

	if captainID != "" && !captainSeen {
		return nil, ErrCaptainNotPicked
	}

	rows := make([]*Membership, 0, len(picked))
	for _, p := range picked {
		m, err := NewMembership(a.newID(), teamName, userID, p.ID, captainID != "" && p.ID == captainID)
		if err != nil {
			return nil, err
		}
		if err := a.teams.Save(ctx, m); err != nil {
			return rows, err
		}
		rows = append(rows, m)
	}

	return rows, nil
}
