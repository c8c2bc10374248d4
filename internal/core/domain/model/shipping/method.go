package shipping

import (
	"errors"
	"fmt"
	"sort"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"
)

// Method is a flat-cost shipping method scoped to a set of destination
// countries. It implements order.ShippingMethod, so the order's shipping
// charge can be originated by it.
type Method struct {
	id        kernel.UUID
	name      string
	cost      kernel.Money
	countries map[string]struct{}
}

// NewMethod creates a shipping method. An empty country list means the
// method ships everywhere.
func NewMethod(id kernel.UUID, name string, cost kernel.Money, countries []string) (*Method, error) {
	m := &Method{
		cost:      cost,
		countries: make(map[string]struct{}, len(countries)),
	}
	for _, c := range countries {
		m.countries[c] = struct{}{}
	}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
	); err != nil {
		return nil, err
	}

	if cost.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("cost",
			fmt.Errorf("%s is negative", cost))
	}

	return m, nil
}

// ID returns the method identifier.
func (m *Method) ID() kernel.UUID { return m.id }

// Name returns the method name, used as the label of the shipping charge it
// originates.
func (m *Method) Name() string { return m.name }

// Cost returns the flat shipping cost.
func (m *Method) Cost() kernel.Money { return m.cost }

// Countries returns the destination countries the method ships to. Empty
// means everywhere.
func (m *Method) Countries() []string {
	countries := make([]string, 0, len(m.countries))
	for c := range m.countries {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	return countries
}

// OriginatorID implements order.Originator.
func (m *Method) OriginatorID() kernel.UUID { return m.id }

// OriginatorType implements order.Originator.
func (m *Method) OriginatorType() string { return order.OriginatorTypeShippingMethod }

// Applicable implements order.Originator. A selected method's charge applies
// as long as the method is available for the order.
func (m *Method) Applicable(o *order.Order) bool {
	return m.Available(o)
}

// ComputeAmount implements order.Originator with the flat cost.
func (m *Method) ComputeAmount(o *order.Order) kernel.Money {
	return m.cost
}

// Available reports whether the method ships to the order's destination.
// Orders without a shipping address yet can still select any method.
func (m *Method) Available(o *order.Order) bool {
	if len(m.countries) == 0 {
		return true
	}
	addr := o.ShipAddress()
	if addr == nil {
		return true
	}
	_, ok := m.countries[addr.Country()]
	return ok
}

func (m *Method) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Method) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = name
	return nil
}
