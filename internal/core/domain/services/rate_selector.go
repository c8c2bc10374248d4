package services

import (
	"errors"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/model/shipping"
)

// ErrShippingUnavailable is returned when no shipping method covers the
// order's destination. This occurs when either no methods are configured or
// none of them ships to the order's country.
var ErrShippingUnavailable = errors.New("no shipping method is available")

// RateSelector is a domain service that chooses the shipping method an order
// should use during the delivery checkout step.
//
// Business rules:
//   - The order must be valid before selection
//   - Only methods available for the order's destination are considered
//   - Selection prioritizes the lowest cost
//   - The chosen method is recorded on the order atomically
type RateSelector struct{}

// NewRateSelector creates a new RateSelector instance.
func NewRateSelector() RateSelector {
	return RateSelector{}
}

// Select finds the cheapest available shipping method for the order and
// records it. Returns ErrShippingUnavailable when no method qualifies; ties
// go to the first method in the slice.
func (s RateSelector) Select(o *order.Order, methods []*shipping.Method) (*shipping.Method, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	best, err := s.findCheapestMethod(o, methods)
	if err != nil {
		return nil, err
	}

	if err := o.SetShippingMethod(best); err != nil {
		return nil, err
	}

	return best, nil
}

// findCheapestMethod scans the candidates for the lowest-cost method that
// ships to the order's destination.
func (s RateSelector) findCheapestMethod(o *order.Order, methods []*shipping.Method) (*shipping.Method, error) {
	var best *shipping.Method

	for _, m := range methods {
		if !m.Available(o) {
			continue
		}
		if best == nil || m.Cost().Cmp(best.Cost()) < 0 {
			best = m
		}
	}

	if best == nil {
		return nil, ErrShippingUnavailable
	}

	return best, nil
}
