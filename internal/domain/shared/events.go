package shared

import (
	"context"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Events fan out to in-process subscribers only;
// the standings cache invalidator is the main consumer.
const (
	EventProfessorCreated      EventType = "professor.created"
	EventProfessorDeleted      EventType = "professor.deleted"
	EventProfessorScoreUpdated EventType = "professor.score_updated"
	EventTeamAssembled         EventType = "team.assembled"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string
}

// EventHandler processes a published event. Handlers must be safe for
// concurrent use; a handler error is logged by the bus, never propagated
// back to the publisher.
type EventHandler func(ctx context.Context, event Event) error

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// NewBaseEvent creates a base event with the current timestamp.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
	}
}

// EventType returns the type of the event.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID returns the ID of the aggregate that produced this event.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}
