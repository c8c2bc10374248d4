package catalogrepo

import (
	"context"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/services"
)

// TaxMatcher implements order.TaxRateMatcher on top of the tax rate catalog.
// The checkout's delivery hook uses it to find the rate for the order's
// billing country.
type TaxMatcher struct {
	rates    *GormTaxRateRepository
	selector services.TaxSelector
}

// NewTaxMatcher creates a matcher backed by the given catalog repository.
func NewTaxMatcher(rates *GormTaxRateRepository) *TaxMatcher {
	return &TaxMatcher{
		rates:    rates,
		selector: services.NewTaxSelector(),
	}
}

// Match returns the rate applicable to the order's bill address, or nil when
// its country is untaxed.
func (m *TaxMatcher) Match(ctx context.Context, aggregate *order.Order) (order.TaxRate, error) {
	rates, err := m.rates.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return m.selector.Select(aggregate, rates)
}
