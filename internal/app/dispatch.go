package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/egannguyen/go-storefront/internal/entity"
	"github.com/egannguyen/go-storefront/internal/event"
)

// Bind subscribes the controller to every intent kind on the bus. Handlers
// translate intents into controller operations; precondition violations and
// external-service failures are logged once and do not abort the publish,
// while a payload of the wrong type is a programming error and fails fast.
// The returned subscriptions let the caller detach the controller again.
func (c *Controller) Bind(ctx context.Context) []event.Subscription {
	return []event.Subscription{
		c.bus.Subscribe(event.KindProductSelected, func(ev event.Event) error {
			p, ok := ev.(event.ProductSelected)
			if !ok {
				return badPayload(ev)
			}
			if err := c.SelectProduct(p.ProductID); err != nil {
				return reject(ev, err)
			}
			return reject(ev, c.OpenProductDetail())
		}),

		c.bus.Subscribe(event.KindAddToBasket, func(ev event.Event) error {
			if err := c.AddToBasket(); err != nil {
				return reject(ev, err)
			}
			// Adding from the preview closes it.
			if c.panel == entity.PanelProductDetail {
				c.ClosePanel()
			}
			return nil
		}),

		c.bus.Subscribe(event.KindRemoveFromBasket, func(ev event.Event) error {
			p, ok := ev.(event.RemoveFromBasket)
			if !ok {
				return badPayload(ev)
			}
			// The basket panel stays open; views re-render in place.
			return reject(ev, c.RemoveFromBasket(p.ProductID))
		}),

		c.bus.Subscribe(event.KindBasketOpen, func(ev event.Event) error {
			c.OpenBasket()
			return nil
		}),

		c.bus.Subscribe(event.KindCheckoutStart, func(ev event.Event) error {
			return reject(ev, c.StartCheckout())
		}),

		c.bus.Subscribe(event.KindAddressPaymentChanged, func(ev event.Event) error {
			p, ok := ev.(event.AddressPaymentChanged)
			if !ok {
				return badPayload(ev)
			}
			return reject(ev, c.SetPaymentAddress(p.Address, p.Payment))
		}),

		c.bus.Subscribe(event.KindAddressSubmit, func(ev event.Event) error {
			return reject(ev, c.SubmitAddress())
		}),

		c.bus.Subscribe(event.KindContactsChanged, func(ev event.Event) error {
			p, ok := ev.(event.ContactsChanged)
			if !ok {
				return badPayload(ev)
			}
			return reject(ev, c.SetContacts(p.Contacts))
		}),

		c.bus.Subscribe(event.KindOrderSubmit, func(ev event.Event) error {
			if _, err := c.SubmitOrder(ctx); err != nil {
				slog.Error("Order submission failed, basket kept", "err", err)
			}
			return nil
		}),

		c.bus.Subscribe(event.KindPanelClose, func(ev event.Event) error {
			c.ClosePanel()
			return nil
		}),
	}
}

// reject logs a precondition violation and swallows it so the remaining bus
// handlers still run; anything else propagates to the publisher.
func reject(ev event.Event, err error) error {
	if err == nil {
		return nil
	}
	if isPrecondition(err) {
		slog.Warn("Intent rejected", "kind", ev.Kind(), "reason", err)
		return nil
	}
	return err
}

func isPrecondition(err error) bool {
	for _, sentinel := range []error{
		ErrNoSelection, ErrUnknownProduct, ErrNotForSale, ErrAlreadyInBasket,
		ErrOrderIncomplete, ErrAddressEmpty, ErrPanelTransition,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func badPayload(ev event.Event) error {
	return fmt.Errorf("unexpected payload type %T for %q", ev, ev.Kind())
}
