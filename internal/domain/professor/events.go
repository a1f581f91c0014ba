package professor

import "github.com/fantaprof/fantaprof-server/internal/domain/shared"

// CreatedEvent is published when a professor joins the roster.
type CreatedEvent struct {
	shared.BaseEvent
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

// NewCreatedEvent builds a CreatedEvent for the professor.
func NewCreatedEvent(p *Professor) *CreatedEvent {
	return &CreatedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventProfessorCreated, p.ID),
		Name:      p.Name.String(),
		Cost:      int(p.Cost),
	}
}

// DeletedEvent is published when a professor leaves the roster. Teams
// holding the professor keep their rows; the slot just scores zero.
type DeletedEvent struct {
	shared.BaseEvent
}

// NewDeletedEvent builds a DeletedEvent for the professor id.
func NewDeletedEvent(professorID string) *DeletedEvent {
	return &DeletedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventProfessorDeleted, professorID),
	}
}

// ScoreUpdatedEvent is published after an accepted score delta.
type ScoreUpdatedEvent struct {
	shared.BaseEvent
	Delta    int `json:"delta"`
	NewScore int `json:"new_score"`
}

// NewScoreUpdatedEvent builds a ScoreUpdatedEvent for the professor.
func NewScoreUpdatedEvent(p *Professor, delta int) *ScoreUpdatedEvent {
	return &ScoreUpdatedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventProfessorScoreUpdated, p.ID),
		Delta:     delta,
		NewScore:  p.Score,
	}
}
