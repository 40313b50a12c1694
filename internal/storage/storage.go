// Package storage persists the basket as a single string-keyed record.
// Implementations may wrap a slower backing store internally, but the
// contract is synchronous from the controller's point of view.
package storage

import "github.com/egannguyen/go-storefront/internal/entity"

// BasketStore is the durable slot the controller writes the basket into
// after every mutation.
//
// Load never fails: a missing or unparsable record reads as an empty
// basket. Save fully rewrites the record. Clear removes the record itself,
// not merely its contents.
type BasketStore interface {
	Save(key string, items []entity.Product) error
	Load(key string) []entity.Product
	Clear(key string) error
}
