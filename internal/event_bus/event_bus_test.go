package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishRunsHandlersInOrder(t *testing.T) {
	// given
	bus := NewEventBus()
	var calls []string
	bus.Subscribe(PreferencesUpdatedType, func(e Event) error {
		calls = append(calls, "first")
		return nil
	})
	SubscribeTyped(bus, PreferencesUpdatedType, func(e EventT[PreferencesUpdated]) error {
		calls = append(calls, "typed:"+e.Data.UserId)
		return nil
	})

	// when
	err := bus.Publish(NewEvent(context.Background(), PreferencesUpdatedType, PreferencesUpdated{UserId: "user-1"}))

	// then
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "typed:user-1"}, calls)
}

func TestEventBus_TypedHandlerSkipsOtherPayloads(t *testing.T) {
	bus := NewEventBus()
	called := false
	SubscribeTyped(bus, PositionWageChangedType, func(e EventT[PositionWageChanged]) error {
		called = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), PositionWageChangedType, "not a payload"))

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestEventBus_CollectsErrorsAndPanics(t *testing.T) {
	// given
	bus := NewEventBus()
	failure := errors.New("boom")
	reached := false
	bus.Subscribe(PreferencesUpdatedType, func(e Event) error { return failure })
	bus.Subscribe(PreferencesUpdatedType, func(e Event) error { panic("kaboom") })
	bus.Subscribe(PreferencesUpdatedType, func(e Event) error {
		reached = true
		return nil
	})

	// when
	err := bus.Publish(NewEvent(context.Background(), PreferencesUpdatedType, PreferencesUpdated{}))

	// then
	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Contains(t, err.Error(), "2 handler(s) failed")
	assert.Contains(t, err.Error(), "kaboom")
	assert.True(t, reached)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	count := 0
	unsubscribe := bus.Subscribe(PreferencesUpdatedType, func(e Event) error {
		count++
		return nil
	})

	_ = bus.Publish(NewEvent(context.Background(), PreferencesUpdatedType, nil))
	unsubscribe()
	_ = bus.Publish(NewEvent(context.Background(), PreferencesUpdatedType, nil))

	assert.Equal(t, 1, count)
}

func TestEventBus_CancelledContext(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(PreferencesUpdatedType, func(e Event) error {
		t.Fatal("handler must not run")
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, PreferencesUpdatedType, nil))

	assert.ErrorIs(t, err, context.Canceled)
}
