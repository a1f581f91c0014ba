package team

import "github.com/fantaprof/fantaprof-server/internal/domain/shared"

// AssembledEvent is published after a team selection is persisted.
type AssembledEvent struct {
	shared.BaseEvent
	TeamName string `json:"team_name"`
	Size     int    `json:"size"`
}

// NewAssembledEvent builds an AssembledEvent for the user's selection.
func NewAssembledEvent(userID, teamName string, size int) *AssembledEvent {
	return &AssembledEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventTeamAssembled, userID),
		TeamName:  teamName,
		Size:      size,
	}
}
