package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egannguyen/go-storefront/internal/entity"
	"github.com/egannguyen/go-storefront/internal/event"
)

// Drives a full checkout purely through intent events, the way the UI
// coordination layer does.
func TestDispatchCheckoutFlow(t *testing.T) {
	stub := &stubAPI{products: twoProducts()}
	c, store, bus, events := newTestController(stub)
	c.Bind(context.Background())

	require.NoError(t, c.LoadCatalog(context.Background()))

	require.NoError(t, bus.Publish(event.ProductSelected{ProductID: "p1"}))
	assert.Equal(t, entity.PanelProductDetail, c.Panel())

	require.NoError(t, bus.Publish(event.AddToBasket{}))
	assert.Len(t, c.Basket(), 1)
	assert.Equal(t, entity.PanelNone, c.Panel(), "adding from the preview closes it")

	require.NoError(t, bus.Publish(event.ProductSelected{ProductID: "p2"}))
	require.NoError(t, bus.Publish(event.AddToBasket{}))
	assert.Len(t, c.Basket(), 2)
	assert.Equal(t, 2650.0, c.Total())
	assert.Len(t, store.Load("basket"), 2)

	require.NoError(t, bus.Publish(event.BasketOpen{}))
	assert.Equal(t, entity.PanelBasket, c.Panel())

	require.NoError(t, bus.Publish(event.CheckoutStart{}))
	assert.Equal(t, entity.PanelAddressPayment, c.Panel())

	require.NoError(t, bus.Publish(event.AddressPaymentChanged{Address: "Main St", Payment: entity.PaymentCard}))
	require.NoError(t, bus.Publish(event.AddressSubmit{}))
	assert.Equal(t, entity.PanelContacts, c.Panel())

	require.NoError(t, bus.Publish(event.ContactsChanged{Contacts: entity.Contacts{Email: "x@y.com", Phone: "+79990001111"}}))
	require.NoError(t, bus.Publish(event.OrderSubmit{}))

	assert.Equal(t, entity.PanelSuccess, c.Panel())
	assert.Empty(t, c.Basket())
	require.NotNil(t, stub.lastOrder)
	assert.Equal(t, []string{"p1", "p2"}, stub.lastOrder.Items)

	require.NoError(t, bus.Publish(event.PanelClose{}))
	assert.Equal(t, entity.PanelNone, c.Panel())

	kinds := events.kinds()
	assert.Contains(t, kinds, event.KindCheckoutComplete)
}

func TestDispatchRejectedIntentDoesNotAbortPublish(t *testing.T) {
	stub := &stubAPI{products: twoProducts()}
	c, _, bus, _ := newTestController(stub)
	c.Bind(context.Background())
	require.NoError(t, c.LoadCatalog(context.Background()))

	require.NoError(t, bus.Publish(event.ProductSelected{ProductID: "p1"}))
	require.NoError(t, bus.Publish(event.AddToBasket{}))

	// Duplicate add is rejected by the controller but the publish succeeds;
	// the basket stays unchanged.
	require.NoError(t, bus.Publish(event.ProductSelected{ProductID: "p1"}))
	require.NoError(t, bus.Publish(event.AddToBasket{}))
	assert.Len(t, c.Basket(), 1)

	// Checkout cannot start outside the basket panel.
	require.NoError(t, bus.Publish(event.PanelClose{}))
	require.NoError(t, bus.Publish(event.CheckoutStart{}))
	assert.Equal(t, entity.PanelNone, c.Panel())
}

func TestDispatchRemoveWhileBasketOpenStaysInPlace(t *testing.T) {
	stub := &stubAPI{products: twoProducts()}
	c, _, bus, _ := newTestController(stub)
	c.Bind(context.Background())
	require.NoError(t, c.LoadCatalog(context.Background()))

	require.NoError(t, bus.Publish(event.ProductSelected{ProductID: "p1"}))
	require.NoError(t, bus.Publish(event.AddToBasket{}))
	require.NoError(t, bus.Publish(event.BasketOpen{}))

	require.NoError(t, bus.Publish(event.RemoveFromBasket{ProductID: "p1"}))
	assert.Empty(t, c.Basket())
	assert.Equal(t, entity.PanelBasket, c.Panel(), "basket panel re-renders in place")
}

func TestDispatchFailedSubmitKeepsBasket(t *testing.T) {
	stub := &stubAPI{
		products: twoProducts(),
		submitFn: func(entity.Order) (*entity.OrderResult, error) {
			return nil, assert.AnError
		},
	}
	c, _, bus, events := newTestController(stub)
	c.Bind(context.Background())
	require.NoError(t, c.LoadCatalog(context.Background()))

	require.NoError(t, bus.Publish(event.ProductSelected{ProductID: "p1"}))
	require.NoError(t, bus.Publish(event.AddToBasket{}))
	require.NoError(t, bus.Publish(event.AddressPaymentChanged{Address: "Main St", Payment: entity.PaymentCash}))
	require.NoError(t, bus.Publish(event.ContactsChanged{Contacts: entity.Contacts{Email: "x@y.com", Phone: "+79990001111"}}))

	require.NoError(t, bus.Publish(event.OrderSubmit{}))

	assert.Len(t, c.Basket(), 1)
	assert.NotContains(t, events.kinds(), event.KindCheckoutComplete)
}
