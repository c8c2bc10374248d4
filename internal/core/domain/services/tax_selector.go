package services

import (
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/model/tax"
)

// TaxSelector picks the tax rate that applies to an order's billing country.
// Unlike shipping, having no applicable rate is a normal outcome: many
// countries are simply untaxed.
type TaxSelector struct{}

// NewTaxSelector creates a TaxSelector.
func NewTaxSelector() TaxSelector {
	return TaxSelector{}
}

// Select returns the first rate applicable to the order, or nil when its
// billing country is untaxed.
func (s TaxSelector) Select(aggregate *order.Order, rates []*tax.Rate) (order.TaxRate, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	for _, rate := range rates {
		if rate.Applicable(aggregate) {
			return rate, nil
		}
	}

	return nil, nil
}
