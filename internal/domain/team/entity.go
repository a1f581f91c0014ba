// Package team contains the team aggregate. A team is a set of membership
// rows sharing a team name and an owning user; at most one row per team
// carries the captain flag, and the captain's score counts double.
package team

import (
	"strings"
	"time"

	"github.com/fantaprof/fantaprof-server/internal/domain/shared"
)

// Domain errors for the team aggregate.
var (
	ErrEmptySelection   = shared.NewDomainError("team", "Assemble", shared.ErrInvalidSelection, "team selection cannot be empty")
	ErrUnknownProfessor = shared.NewDomainError("team", "Assemble", shared.ErrInvalidSelection, "selection references unknown professor")
	ErrCaptainNotPicked = shared.NewDomainError("team", "Assemble", shared.ErrInvalidSelection, "captain must be part of the selection")
	ErrEmptyUserID      = shared.NewDomainError("team", "Validate", shared.ErrEmptyValue, "user id cannot be empty")
)

// Membership is one row of a team: user U hired professor P under team
// name N. Captain marks the single doubled slot.
type Membership struct {
	ID          string
	TeamName    string
	UserID      string
	ProfessorID string
	IsCaptain   bool
	CreatedAt   time.Time
}

// NewMembership validates and builds a membership row. A blank team name
// is allowed; views render it as no team.
func NewMembership(id, teamName, userID, professorID string, isCaptain bool) (*Membership, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	if strings.TrimSpace(professorID) == "" {
		return nil, ErrUnknownProfessor
	}

	return &Membership{
		ID:          id,
		TeamName:    strings.TrimSpace(teamName),
		UserID:      userID,
		ProfessorID: professorID,
		IsCaptain:   isCaptain,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
