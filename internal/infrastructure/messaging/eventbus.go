// Package messaging provides the in-process event bus. Mutating
// operations publish domain events and the standings cache invalidator
// subscribes to them; nothing leaves the process.
package messaging

import (
	"context"
	"fmt"
	"sync"

	"github.com/fantaprof/fantaprof-server/internal/domain/shared"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

// EventBus routes domain events to subscribed handlers.
type EventBus interface {
	// Publish delivers the event to every matching handler.
	Publish(ctx context.Context, event shared.Event) error

	// Subscribe registers a handler for one event type.
	Subscribe(eventType shared.EventType, handler shared.EventHandler)

	// SubscribeAll registers a handler for every event type.
	SubscribeAll(handler shared.EventHandler)
}

// InMemoryEventBus is a synchronous in-process EventBus. Handlers run on
// the publisher's goroutine in subscription order; a panicking or failing
// handler is logged and the remaining handlers still run.
type InMemoryEventBus struct {
	mu          sync.RWMutex
	handlers    map[shared.EventType][]shared.EventHandler
	allHandlers []shared.EventHandler
	log         *logger.Logger
}

// NewInMemoryEventBus creates an empty bus.
func NewInMemoryEventBus(log *logger.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		handlers: make(map[shared.EventType][]shared.EventHandler),
		log:      log,
	}
}

// Subscribe registers a handler for one event type.
func (b *InMemoryEventBus) Subscribe(eventType shared.EventType, handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll registers a handler for every event type.
func (b *InMemoryEventBus) SubscribeAll(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allHandlers = append(b.allHandlers, handler)
}

// Publish delivers the event synchronously. Handler errors are logged,
// not returned: publishing is fire-and-forget from the caller's view.
func (b *InMemoryEventBus) Publish(ctx context.Context, event shared.Event) error {
	b.mu.RLock()
	typed := b.handlers[event.EventType()]
	handlers := make([]shared.EventHandler, 0, len(typed)+len(b.allHandlers))
	handlers = append(handlers, typed...)
	handlers = append(handlers, b.allHandlers...)
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(ctx, event, h)
	}
	return nil
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, event shared.Event, h shared.EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked",
				logger.F("event_type", string(event.EventType())),
				logger.F("aggregate_id", event.AggregateID()),
				logger.F("panic", fmt.Sprintf("%v", r)),
			)
		}
	}()

	if err := h(ctx, event); err != nil {
		b.log.Error("event handler failed",
			logger.F("event_type", string(event.EventType())),
			logger.F("aggregate_id", event.AggregateID()),
			logger.Err(err),
		)
	}
}
