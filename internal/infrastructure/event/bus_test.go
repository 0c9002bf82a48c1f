package event

import (
	"context"
	"errors"
	"testing"

	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func newTestEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Product", uuid.New(), uuid.New())
	return &e
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	t.Run("delivers to matching handlers", func(t *testing.T) {
		handler := &recordingHandler{types: []string{"StockQuantityChanged"}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("StockQuantityChanged")))
		require.NoError(t, bus.Publish(ctx, newTestEvent("ProductCreated")))

		assert.Len(t, handler.received, 1)
		assert.Equal(t, "StockQuantityChanged", handler.received[0].EventType())

		bus.Unsubscribe(handler)
	})

	t.Run("wildcard handler receives all events", func(t *testing.T) {
		handler := &recordingHandler{}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("ProductCreated"), newTestEvent("StockBelowMinimum")))

		assert.Len(t, handler.received, 2)

		bus.Unsubscribe(handler)
	})

	t.Run("handler error does not stop delivery", func(t *testing.T) {
		failing := &recordingHandler{types: []string{"StockBelowMinimum"}, err: errors.New("boom")}
		healthy := &recordingHandler{types: []string{"StockBelowMinimum"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newTestEvent("StockBelowMinimum")))

		assert.Len(t, failing.received, 1)
		assert.Len(t, healthy.received, 1)
	})
}

func TestInMemoryEventBus_Lifecycle(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Stop(ctx))
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := &recordingHandler{}

	registry.Register(handler, "A", "B")
	assert.Len(t, registry.GetHandlers("A"), 1)
	assert.Len(t, registry.GetHandlers("B"), 1)

	registry.Unregister(handler)
	assert.Empty(t, registry.GetHandlers("A"))
	assert.Empty(t, registry.GetHandlers("B"))
}
