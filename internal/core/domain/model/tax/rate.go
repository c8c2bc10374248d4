package tax

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Rate is a percentage tax rate scoped to a billing country. It implements
// order.TaxRate, so the order's tax charge can be originated by it.
type Rate struct {
	id         kernel.UUID
	label      string
	percentage decimal.Decimal
	country    string
}

// NewRate creates a tax rate. The percentage is a fraction: 0.10 means 10%.
func NewRate(id kernel.UUID, label string, percentage decimal.Decimal, country string) (*Rate, error) {
	r := &Rate{
		percentage: percentage,
	}

	if err := errors.Join(
		r.setID(id),
		r.setLabel(label),
		r.setCountry(country),
	); err != nil {
		return nil, err
	}

	if percentage.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("percentage",
			fmt.Errorf("%s is negative", percentage))
	}

	return r, nil
}

// ID returns the rate identifier.
func (r *Rate) ID() kernel.UUID { return r.id }

// Percentage returns the tax fraction.
func (r *Rate) Percentage() decimal.Decimal { return r.percentage }

// Country returns the billing country the rate applies to.
func (r *Rate) Country() string { return r.country }

// Label returns the human-readable rate description, used as the label of
// the tax charge it originates.
func (r *Rate) Label() string { return r.label }

// OriginatorID implements order.Originator.
func (r *Rate) OriginatorID() kernel.UUID { return r.id }

// OriginatorType implements order.Originator.
func (r *Rate) OriginatorType() string { return order.OriginatorTypeTaxRate }

// Applicable reports whether the rate covers the order's billing country.
func (r *Rate) Applicable(o *order.Order) bool {
	addr := o.BillAddress()
	return addr != nil && addr.Country() == r.country
}

// ComputeAmount returns the tax over the order's line items. It sums the
// items directly rather than reading the cached itemTotal, so the result is
// correct even before the first recomputation pass.
func (r *Rate) ComputeAmount(o *order.Order) kernel.Money {
	base := decimal.Zero
	for _, li := range o.LineItems() {
		base = base.Add(li.Amount().Decimal())
	}
	return kernel.NewMoneyFromDecimal(base.Mul(r.percentage).Round(2))
}

func (r *Rate) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rate) setLabel(label string) error {
	if label == "" {
		return errs.NewValueIsRequiredError("label")
	}
	r.label = label
	return nil
}

func (r *Rate) setCountry(country string) error {
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	r.country = country
	return nil
}
