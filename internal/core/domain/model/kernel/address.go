package kernel

import (
	"errors"
	"fmt"

	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when validating a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is the billing or shipping destination referenced by an order.
// Address management itself (ownership, normalization, geocoding) lives
// outside this core; orders only read the fields tax and shipping matching
// depend on.
//
// Address is an immutable value object.
type Address struct { //nolint:recvcheck //using for validation
	firstName  string
	lastName   string
	street     string
	city       string
	region     string
	postalCode string
	country    string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated Address. Street, city, and country are
// required; name, region, and postal code may be empty.
func NewAddress(firstName, lastName, street, city, region, postalCode, country string) (Address, error) {
	addr := Address{
		firstName:  firstName,
		lastName:   lastName,
		region:     region,
		postalCode: postalCode,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setStreet(street),
		addr.setCity(city),
		addr.setCountry(country),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate checks the Address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// FullName returns "first last" for display, trimmed of extra spaces.
func (a Address) FullName() string {
	switch {
	case a.firstName == "":
		return a.lastName
	case a.lastName == "":
		return a.firstName
	default:
		return fmt.Sprintf("%s %s", a.firstName, a.lastName)
	}
}

// FirstName returns the recipient first name.
func (a Address) FirstName() string { return a.firstName }

// LastName returns the recipient last name.
func (a Address) LastName() string { return a.lastName }

// Street returns the street line.
func (a Address) Street() string { return a.street }

// City returns the city.
func (a Address) City() string { return a.city }

// Region returns the state/province code, if any.
func (a Address) Region() string { return a.region }

// PostalCode returns the postal code, if any.
func (a Address) PostalCode() string { return a.postalCode }

// Country returns the ISO country code.
func (a Address) Country() string { return a.country }

// IsEqual compares all address fields.
func (a Address) IsEqual(other Address) bool {
	return a.firstName == other.firstName &&
		a.lastName == other.lastName &&
		a.street == other.street &&
		a.city == other.city &&
		a.region == other.region &&
		a.postalCode == other.postalCode &&
		a.country == other.country
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setCountry(country string) error {
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	a.country = country
	return nil
}
