package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesHandlersInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var calls []string

	bus.Subscribe(KindBasketOpen, func(Event) error {
		calls = append(calls, "first")
		return nil
	})
	bus.Subscribe(KindBasketOpen, func(Event) error {
		calls = append(calls, "second")
		return nil
	})
	bus.Subscribe(KindPanelClose, func(Event) error {
		calls = append(calls, "other-kind")
		return nil
	})

	require.NoError(t, bus.Publish(BasketOpen{}))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestWildcardAndExactBothFire(t *testing.T) {
	bus := NewBus()
	var calls []string

	bus.SubscribeAll(func(ev Event) error {
		calls = append(calls, "wildcard:"+string(ev.Kind()))
		return nil
	})
	bus.Subscribe(KindPanelClose, func(Event) error {
		calls = append(calls, "exact")
		return nil
	})

	require.NoError(t, bus.Publish(PanelClose{}))
	// Exact handlers run before wildcard ones.
	assert.Equal(t, []string{"exact", "wildcard:panel-close"}, calls)

	calls = nil
	require.NoError(t, bus.Publish(BasketOpen{}))
	assert.Equal(t, []string{"wildcard:basket-open"}, calls)
}

func TestHandlerErrorAbortsRemainingHandlers(t *testing.T) {
	bus := NewBus()
	boom := errors.New("boom")
	var after int

	bus.Subscribe(KindOrderSubmit, func(Event) error { return boom })
	bus.Subscribe(KindOrderSubmit, func(Event) error {
		after++
		return nil
	})
	bus.SubscribeAll(func(Event) error {
		after++
		return nil
	})

	err := bus.Publish(OrderSubmit{})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, after, "handlers after the failing one must not run")
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	var exact, all int

	sub := bus.Subscribe(KindBasketOpen, func(Event) error {
		exact++
		return nil
	})
	subAll := bus.SubscribeAll(func(Event) error {
		all++
		return nil
	})

	require.NoError(t, bus.Publish(BasketOpen{}))
	bus.Unsubscribe(sub)
	bus.Unsubscribe(subAll)
	require.NoError(t, bus.Publish(BasketOpen{}))

	assert.Equal(t, 1, exact)
	assert.Equal(t, 1, all)

	// Unknown subscriptions are a no-op.
	bus.Unsubscribe(sub)
}

func TestHandlerMayPublishReentrantly(t *testing.T) {
	bus := NewBus()
	var closed bool

	bus.Subscribe(KindAddToBasket, func(Event) error {
		return bus.Publish(PanelClose{})
	})
	bus.Subscribe(KindPanelClose, func(Event) error {
		closed = true
		return nil
	})

	require.NoError(t, bus.Publish(AddToBasket{}))
	assert.True(t, closed)
}

func TestSubscribeDuringPublishDoesNotAffectInFlightDispatch(t *testing.T) {
	bus := NewBus()
	var lateCalls int

	bus.Subscribe(KindBasketOpen, func(Event) error {
		bus.Subscribe(KindBasketOpen, func(Event) error {
			lateCalls++
			return nil
		})
		return nil
	})

	require.NoError(t, bus.Publish(BasketOpen{}))
	assert.Zero(t, lateCalls)

	require.NoError(t, bus.Publish(BasketOpen{}))
	assert.Equal(t, 1, lateCalls)
}
