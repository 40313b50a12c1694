// Package app owns all mutable storefront state: the product catalog, the
// basket, the checkout draft and the active panel. Every mutation operation
// publishes its change event as a postcondition; views only ever see
// snapshots.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/egannguyen/go-storefront/internal/api"
	"github.com/egannguyen/go-storefront/internal/entity"
	"github.com/egannguyen/go-storefront/internal/event"
	"github.com/egannguyen/go-storefront/internal/storage"
	"github.com/egannguyen/go-storefront/internal/validate"
)

// Precondition violations. All are recoverable at the call site and leave
// state untouched.
var (
	ErrNoSelection     = errors.New("no product selected")
	ErrUnknownProduct  = errors.New("product not in catalog")
	ErrNotForSale      = errors.New("product is not for sale")
	ErrAlreadyInBasket = errors.New("product already in basket")
	ErrOrderIncomplete = errors.New("order is empty or incomplete")
	ErrAddressEmpty    = errors.New("address is empty")
	ErrPanelTransition = errors.New("panel transition not allowed")
)

// Controller is the application state controller. It is confined to a
// single goroutine: the bus dispatches synchronously, and the only async
// operations (catalog fetch, order submission) block inside their calls.
type Controller struct {
	api   api.Client
	bus   *event.Bus
	store storage.BasketStore
	key   string

	catalog  []entity.Product
	selected *entity.Product
	basket   []entity.Product
	total    float64
	draft    entity.CheckoutDraft
	panel    entity.Panel
}

// NewController restores the persisted basket (missing or corrupt records
// read as empty) and starts with no panel open and an empty draft.
func NewController(client api.Client, bus *event.Bus, store storage.BasketStore, storageKey string) *Controller {
	c := &Controller{
		api:   client,
		bus:   bus,
		store: store,
		key:   storageKey,
		panel: entity.PanelNone,
	}
	c.basket = store.Load(storageKey)
	c.updateTotal()
	return c
}

// LoadCatalog fetches the product list and replaces the catalog. On failure
// the catalog is left unchanged and the error is returned; no retry.
func (c *Controller) LoadCatalog(ctx context.Context) error {
	products, err := c.api.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	c.catalog = products
	return c.bus.Publish(event.ProductsChanged{Products: snapshot(c.catalog)})
}

// SelectProduct sets the previewed product from the in-memory catalog. No
// network call is made; an id the catalog does not hold is rejected.
func (c *Controller) SelectProduct(id string) error {
	for i := range c.catalog {
		if c.catalog[i].ID == id {
			p := c.catalog[i]
			c.selected = &p
			return nil
		}
	}
	return ErrUnknownProduct
}

// AddToBasket moves the previewed product into the basket. Duplicates are
// rejected explicitly, never silently dropped.
func (c *Controller) AddToBasket() error {
	if c.selected == nil {
		return ErrNoSelection
	}
	if c.selected.Price == nil {
		return ErrNotForSale
	}
	for _, p := range c.basket {
		if p.ID == c.selected.ID {
			return ErrAlreadyInBasket
		}
	}

	c.basket = append(c.basket, *c.selected)
	c.persist()
	c.updateTotal()
	return c.publishBasketChanged()
}

// RemoveFromBasket drops the item with the given id. An absent id is a
// no-op: nothing is persisted and no event fires.
func (c *Controller) RemoveFromBasket(id string) error {
	idx := -1
	for i, p := range c.basket {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	c.basket = append(c.basket[:idx], c.basket[idx+1:]...)
	c.persist()
	c.updateTotal()
	return c.publishBasketChanged()
}

// ClearBasket empties the basket, removes the storage record itself and
// resets the checkout draft.
func (c *Controller) ClearBasket() error {
	c.basket = nil
	c.draft = entity.CheckoutDraft{}
	if err := c.store.Clear(c.key); err != nil {
		slog.Warn("Failed to clear persisted basket", "key", c.key, "err", err)
	}
	c.updateTotal()
	return c.publishBasketChanged()
}

// SetContacts stores both contact fields and publishes the per-field
// validation result.
func (c *Controller) SetContacts(contacts entity.Contacts) error {
	c.draft.Contacts = contacts
	return c.bus.Publish(event.ContactsValidated{Result: validate.Contacts(contacts)})
}

// SetPaymentAddress sets both draft fields atomically and publishes whether
// the address form can advance.
func (c *Controller) SetPaymentAddress(address string, payment entity.PaymentMethod) error {
	c.draft.Address = address
	c.draft.Payment = payment
	return c.bus.Publish(event.AddressPaymentValidated{Valid: address != ""})
}

// ValidateContacts checks contact syntax without touching any state.
func (c *Controller) ValidateContacts(contacts entity.Contacts) entity.ContactsValidation {
	return validate.Contacts(contacts)
}

// BuildOrder assembles the submission snapshot from the current draft,
// basket and total. An empty basket or a missing draft field fails the
// precondition regardless of everything else.
func (c *Controller) BuildOrder() (entity.Order, error) {
	if len(c.basket) == 0 ||
		c.draft.Address == "" ||
		c.draft.Payment == "" ||
		c.draft.Contacts.Email == "" ||
		c.draft.Contacts.Phone == "" {
		return entity.Order{}, ErrOrderIncomplete
	}

	items := make([]string, len(c.basket))
	for i, p := range c.basket {
		items[i] = p.ID
	}
	return entity.Order{
		Payment: c.draft.Payment,
		Address: c.draft.Address,
		Email:   c.draft.Contacts.Email,
		Phone:   c.draft.Contacts.Phone,
		Total:   c.total,
		Items:   items,
	}, nil
}

// SubmitOrder builds the order snapshot and sends it. On rejection or
// transport failure the basket and draft stay intact so the user can retry.
// On confirmed success the basket is cleared, the draft reset, the contacts
// panel advances to success and checkout-complete is published.
func (c *Controller) SubmitOrder(ctx context.Context) (*entity.OrderResult, error) {
	order, err := c.BuildOrder()
	if err != nil {
		return nil, err
	}

	result, err := c.api.SubmitOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	slog.Info("Order confirmed", "order_id", result.ID, "total", result.Total)

	if c.panel == entity.PanelContacts {
		c.panel = entity.PanelSuccess
	}
	if err := c.ClearBasket(); err != nil {
		return result, err
	}
	return result, c.bus.Publish(event.CheckoutComplete{OrderID: result.ID, Total: result.Total})
}

// --- Panel state machine. The controller is the sole writer; every other
// component only reads the current value. ---

// OpenProductDetail shows the preview panel. Valid from none or from an
// already open preview (selecting another card).
func (c *Controller) OpenProductDetail() error {
	if c.panel != entity.PanelNone && c.panel != entity.PanelProductDetail {
		return ErrPanelTransition
	}
	c.panel = entity.PanelProductDetail
	return nil
}

// OpenBasket shows the basket panel; allowed from any state.
func (c *Controller) OpenBasket() {
	c.panel = entity.PanelBasket
}

// StartCheckout advances from the basket panel to address/payment.
func (c *Controller) StartCheckout() error {
	if c.panel != entity.PanelBasket {
		return ErrPanelTransition
	}
	c.panel = entity.PanelAddressPayment
	return nil
}

// SubmitAddress advances from address/payment to contacts, but only once
// the draft address is filled in.
func (c *Controller) SubmitAddress() error {
	if c.panel != entity.PanelAddressPayment {
		return ErrPanelTransition
	}
	if c.draft.Address == "" {
		return ErrAddressEmpty
	}
	c.panel = entity.PanelContacts
	return nil
}

// ClosePanel returns to none from any state. This is the only exit from
// the success panel.
func (c *Controller) ClosePanel() {
	c.panel = entity.PanelNone
}

// --- Read-only accessors. Slices are copies; received values are never
// live references into controller-owned containers. ---

func (c *Controller) Catalog() []entity.Product { return snapshot(c.catalog) }

func (c *Controller) Basket() []entity.Product { return snapshot(c.basket) }

func (c *Controller) Total() float64 { return c.total }

func (c *Controller) Draft() entity.CheckoutDraft { return c.draft }

func (c *Controller) Panel() entity.Panel { return c.panel }

// Selected returns a copy of the previewed product, or false when nothing
// is selected.
func (c *Controller) Selected() (entity.Product, bool) {
	if c.selected == nil {
		return entity.Product{}, false
	}
	return *c.selected, true
}

func (c *Controller) updateTotal() {
	var total float64
	for _, p := range c.basket {
		if p.Price != nil {
			total += *p.Price
		}
	}
	c.total = total
}

// persist rewrites the stored basket in full. A failed write is logged and
// the in-memory mutation stands; the next mutation rewrites the record
// anyway.
func (c *Controller) persist() {
	if err := c.store.Save(c.key, c.basket); err != nil {
		slog.Warn("Failed to persist basket", "key", c.key, "err", err)
	}
}

func (c *Controller) publishBasketChanged() error {
	return c.bus.Publish(event.BasketChanged{Items: snapshot(c.basket), Total: c.total})
}

func snapshot(items []entity.Product) []entity.Product {
	out := make([]entity.Product, len(items))
	copy(out, items)
	return out
}
