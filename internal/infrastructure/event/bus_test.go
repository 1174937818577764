package event

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type panickingHandler struct{}

func (panickingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	panic("boom")
}

func (panickingHandler) EventTypes() []string { return []string{"TestEvent"} }

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	typed := newRecordingHandler("TestEvent")
	other := newRecordingHandler("OtherEvent")
	wildcard := newRecordingHandler()
	bus.Subscribe(typed)
	bus.Subscribe(other)
	bus.Subscribe(wildcard)

	event := newOrderEvent("TestEvent", uuid.New())
	require.NoError(t, bus.Publish(context.Background(), event))

	assert.Equal(t, []shared.DomainEvent{event}, typed.received())
	assert.Empty(t, other.received())
	assert.Equal(t, []shared.DomainEvent{event}, wildcard.received())
}

func TestInMemoryEventBus_Publish_JoinsHandlerErrors(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := newRecordingHandler("TestEvent")
	failing.err = errors.New("handler down")
	healthy := newRecordingHandler("TestEvent")
	bus.Subscribe(failing)
	bus.Subscribe(panickingHandler{})
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newOrderEvent("TestEvent", uuid.New()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler down")
	assert.Contains(t, err.Error(), "handler panicked: boom")
	assert.Len(t, healthy.received(), 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newRecordingHandler("TestEvent")
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newOrderEvent("TestEvent", uuid.New())))
	assert.Empty(t, handler.received())
}
