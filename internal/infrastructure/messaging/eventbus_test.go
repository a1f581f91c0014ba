package messaging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
	"github.com/fantaprof/fantaprof-server/internal/domain/shared"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/messaging"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to type subscribers", func(t *testing.T) {
		bus := messaging.NewInMemoryEventBus(logger.Default())

		var got []shared.EventType
		bus.Subscribe(shared.EventProfessorScoreUpdated, func(ctx context.Context, e shared.Event) error {
			got = append(got, e.EventType())
			return nil
		})

		p, err := professor.New("prof-1", "rossi", 10)
		require.NoError(t, err)
		p.ApplyDelta(5)
		require.NoError(t, bus.Publish(ctx, professor.NewScoreUpdatedEvent(p, 5)))
		require.NoError(t, bus.Publish(ctx, professor.NewDeletedEvent("prof-2")))

		assert.Equal(t, []shared.EventType{shared.EventProfessorScoreUpdated}, got,
			"only the subscribed type is delivered")
	})

	t.Run("SubscribeAll sees every event", func(t *testing.T) {
		bus := messaging.NewInMemoryEventBus(logger.Default())

		count := 0
		bus.SubscribeAll(func(ctx context.Context, e shared.Event) error {
			count++
			return nil
		})

		p, err := professor.New("prof-1", "rossi", 10)
		require.NoError(t, err)
		require.NoError(t, bus.Publish(ctx, professor.NewDeletedEvent("prof-1")))
		require.NoError(t, bus.Publish(ctx, professor.NewScoreUpdatedEvent(p, 3)))
		assert.Equal(t, 2, count)
	})

	t.Run("failing handler does not stop the rest", func(t *testing.T) {
		bus := messaging.NewInMemoryEventBus(logger.Default())

		secondRan := false
		bus.Subscribe(shared.EventProfessorDeleted, func(ctx context.Context, e shared.Event) error {
			return errors.New("handler broke")
		})
		bus.Subscribe(shared.EventProfessorDeleted, func(ctx context.Context, e shared.Event) error {
			secondRan = true
			return nil
		})

		require.NoError(t, bus.Publish(ctx, professor.NewDeletedEvent("prof-1")))
		assert.True(t, secondRan)
	})

	t.Run("panicking handler is contained", func(t *testing.T) {
		bus := messaging.NewInMemoryEventBus(logger.Default())

		bus.Subscribe(shared.EventProfessorDeleted, func(ctx context.Context, e shared.Event) error {
			panic("boom")
		})

		assert.NotPanics(t, func() {
			_ = bus.Publish(ctx, professor.NewDeletedEvent("prof-1"))
		})
	})
}
