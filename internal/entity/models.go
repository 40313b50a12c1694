package entity

// Category is the fixed set of product categories the catalog serves.
type Category string

const (
	CategoryExtra     Category = "дополнительное"
	CategorySoftSkill Category = "софт-скил"
	CategoryHardSkill Category = "хард-скил"
	CategoryOther     Category = "другое"
)

// Product represents a catalog item. A nil Price means the product is not
// for sale and must never enter a basket.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Category    Category `json:"category"`
	Price       *float64 `json:"price"`
}

// PaymentMethod is the fixed set of accepted payment options.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// Contacts holds the buyer's contact fields. Callers always pass both
// fields together; there is no per-field merge.
type Contacts struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ContactsValidation is the per-field result of validating Contacts.
type ContactsValidation struct {
	Email bool `json:"email"`
	Phone bool `json:"phone"`
}

// Valid reports whether both contact fields passed.
func (v ContactsValidation) Valid() bool {
	return v.Email && v.Phone
}

// CheckoutDraft accumulates checkout input across the flow. It is complete
// only when payment, address and both contact fields are non-empty.
type CheckoutDraft struct {
	Payment  PaymentMethod `json:"payment"`
	Address  string        `json:"address"`
	Contacts Contacts      `json:"contacts"`
}

// Order is the submission payload: a snapshot of draft, basket item IDs and
// total at the moment of submission. It is built on demand and never stored.
type Order struct {
	Payment PaymentMethod `json:"payment"`
	Address string        `json:"address"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Total   float64       `json:"total"`
	Items   []string      `json:"items"`
}

// OrderResult is the catalog service's confirmation of a submitted order.
type OrderResult struct {
	ID    string  `json:"id"`
	Total float64 `json:"total"`
}

// Panel identifies which modal/view is currently visible. Exactly one value
// at a time; only the state controller assigns it.
type Panel string

const (
	PanelNone           Panel = "none"
	PanelProductDetail  Panel = "productDetail"
	PanelBasket         Panel = "basket"
	PanelAddressPayment Panel = "addressPayment"
	PanelContacts       Panel = "contacts"
	PanelSuccess        Panel = "success"
)
