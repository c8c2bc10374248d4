package kernel

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"commerce/internal/pkg/errs"
)

const (
	orderNumberPrefix = "R"
	orderNumberDigits = 9
)

var orderNumberPattern = regexp.MustCompile(`^R\d{9}$`)

// ErrOrderNumberIsNotConstructed is returned when validating a zero-value OrderNumber.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"order number must be created via NewRandomOrderNumber or OrderNumberFromString")

// OrderNumber is the human-referenceable order identifier: the letter "R"
// followed by nine decimal digits. Uniqueness is not guaranteed by the value
// itself; callers must check for collisions against storage and regenerate.
type OrderNumber struct {
	value string
}

// NewRandomOrderNumber generates a candidate order number. The caller is
// responsible for retrying on collision with an existing order.
func NewRandomOrderNumber() OrderNumber {
	var b strings.Builder
	b.WriteString(orderNumberPrefix)
	for range orderNumberDigits {
		fmt.Fprintf(&b, "%d", rand.IntN(10)) //nolint:gosec // not a secret
	}
	return OrderNumber{value: b.String()}
}

// OrderNumberFromString parses an order number, rejecting anything that does
// not match the R+9-digits pattern.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if !orderNumberPattern.MatchString(s) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("order number",
			fmt.Errorf("%q does not match pattern %s", s, orderNumberPattern))
	}
	return OrderNumber{value: s}, nil
}

// String returns the order number text, e.g. "R123456789".
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual reports whether two order numbers are the same.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate returns ErrOrderNumberIsNotConstructed for the zero value.
func (n OrderNumber) Validate() error {
	if n.value == "" {
		return ErrOrderNumberIsNotConstructed
	}
	return nil
}
