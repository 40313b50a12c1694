package event

import "github.com/egannguyen/go-storefront/internal/entity"

// Kind names an event on the bus. The set of kinds is closed: every kind has
// exactly one payload type in this package.
type Kind string

// Intent kinds, published by views to express a desired state change.
const (
	KindProductSelected       Kind = "product-selected"
	KindAddToBasket           Kind = "add-to-basket"
	KindRemoveFromBasket      Kind = "remove-from-basket"
	KindBasketOpen            Kind = "basket-open"
	KindCheckoutStart         Kind = "checkout-start"
	KindAddressPaymentChanged Kind = "address-payment-changed"
	KindAddressSubmit         Kind = "address-submit"
	KindContactsChanged       Kind = "contacts-changed"
	KindOrderSubmit           Kind = "order-submit"
	KindPanelClose            Kind = "panel-close"
)

// Change kinds, published by the state controller after a mutation.
const (
	KindProductsChanged         Kind = "products-changed"
	KindBasketChanged           Kind = "basket-changed"
	KindContactsValidated       Kind = "contacts-changed-validation-result"
	KindAddressPaymentValidated Kind = "address-payment-validation-result"
	KindCheckoutComplete        Kind = "checkout-complete"
)

// Event is a single message on the bus.
type Event interface {
	Kind() Kind
}

// IsChange reports whether k is a controller-published change kind.
func (k Kind) IsChange() bool {
	switch k {
	case KindProductsChanged, KindBasketChanged, KindContactsValidated,
		KindAddressPaymentValidated, KindCheckoutComplete:
		return true
	}
	return false
}

// --- Intent events ---

// ProductSelected asks the controller to preview a catalog product.
type ProductSelected struct {
	ProductID string `json:"product_id"`
}

func (ProductSelected) Kind() Kind { return KindProductSelected }

// AddToBasket asks the controller to move the previewed product into the basket.
type AddToBasket struct{}

func (AddToBasket) Kind() Kind { return KindAddToBasket }

// RemoveFromBasket asks the controller to drop a basket item by identifier.
type RemoveFromBasket struct {
	ProductID string `json:"product_id"`
}

func (RemoveFromBasket) Kind() Kind { return KindRemoveFromBasket }

// BasketOpen asks the controller to show the basket panel.
type BasketOpen struct{}

func (BasketOpen) Kind() Kind { return KindBasketOpen }

// CheckoutStart asks the controller to begin checkout from the basket panel.
type CheckoutStart struct{}

func (CheckoutStart) Kind() Kind { return KindCheckoutStart }

// AddressPaymentChanged carries the address/payment form state.
type AddressPaymentChanged struct {
	Address string               `json:"address"`
	Payment entity.PaymentMethod `json:"payment"`
}

func (AddressPaymentChanged) Kind() Kind { return KindAddressPaymentChanged }

// AddressSubmit asks the controller to advance from address/payment to contacts.
type AddressSubmit struct{}

func (AddressSubmit) Kind() Kind { return KindAddressSubmit }

// ContactsChanged carries the contacts form state. Views pass both fields
// together on every change.
type ContactsChanged struct {
	Contacts entity.Contacts `json:"contacts"`
}

func (ContactsChanged) Kind() Kind { return KindContactsChanged }

// OrderSubmit asks the controller to build and submit the order.
type OrderSubmit struct{}

func (OrderSubmit) Kind() Kind { return KindOrderSubmit }

// PanelClose asks the controller to close whatever panel is open.
type PanelClose struct{}

func (PanelClose) Kind() Kind { return KindPanelClose }

// --- Change events ---

// ProductsChanged announces a replaced catalog. Products is a snapshot;
// subscribers must not mutate it.
type ProductsChanged struct {
	Products []entity.Product `json:"products"`
}

func (ProductsChanged) Kind() Kind { return KindProductsChanged }

// BasketChanged announces the basket contents and total after a mutation.
type BasketChanged struct {
	Items []entity.Product `json:"items"`
	Total float64          `json:"total"`
}

func (BasketChanged) Kind() Kind { return KindBasketChanged }

// ContactsValidated announces the per-field result of the last contacts change.
type ContactsValidated struct {
	Result entity.ContactsValidation `json:"result"`
}

func (ContactsValidated) Kind() Kind { return KindContactsValidated }

// AddressPaymentValidated announces whether the address/payment form can advance.
type AddressPaymentValidated struct {
	Valid bool `json:"valid"`
}

func (AddressPaymentValidated) Kind() Kind { return KindAddressPaymentValidated }

// CheckoutComplete announces a confirmed order.
type CheckoutComplete struct {
	OrderID string  `json:"order_id"`
	Total   float64 `json:"total"`
}

func (CheckoutComplete) Kind() Kind { return KindCheckoutComplete }
