// Package validate holds the stateless syntax checks for checkout contact
// fields. The predicates never mutate anything and treat the empty string
// as invalid.
package validate

import (
	"regexp"

	"github.com/egannguyen/go-storefront/internal/entity"
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRe = regexp.MustCompile(`^(\+7|8)[\s\-()]?\d{3}[\s\-()]?\d{3}[\s\-()]?\d{2}[\s\-()]?\d{2}$`)
)

// Email reports whether s looks like a local@domain.tld address.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Phone reports whether s is a Russian mobile number: +7 or a leading 8,
// then 10 digits with optional separators between the groups.
func Phone(s string) bool {
	return phoneRe.MatchString(s)
}

// Contacts checks both fields and returns the per-field result.
func Contacts(c entity.Contacts) entity.ContactsValidation {
	return entity.ContactsValidation{
		Email: Email(c.Email),
		Phone: Phone(c.Phone),
	}
}
