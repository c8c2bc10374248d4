package order

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
)

// CreateTaxCharge synchronizes the order's tax charge with the rate the
// matcher currently selects. The order carries at most one tax charge, owned
// by exactly one rate:
//
//   - no matching rate: any existing charge is removed
//   - matching rate owns the existing charge: the charge is rebound and its
//     amount refreshed
//   - matching rate differs from the existing charge's owner: the stale
//     charge is removed and nothing is created this cycle; the next
//     invocation creates the new charge
//   - no existing charge: a new charge is created for the rate
//
// Repeated invocation with an unchanged rate converges to exactly one charge
// and never duplicates it.
func (o *Order) CreateTaxCharge(ctx context.Context, matcher TaxRateMatcher) error {
	rate, err := matcher.Match(ctx, o)
	if err != nil {
		return err
	}

	existing := o.taxAdjustment()

	if rate == nil {
		if existing != nil {
			o.removeAdjustment(existing.ID())
		}
		return nil
	}

	if existing != nil {
		if existing.OriginatedBy(rate) {
			if err := existing.BindOriginator(rate); err != nil {
				return err
			}
			existing.Refresh(o)
			return nil
		}
		o.removeAdjustment(existing.ID())
		return nil
	}

	adj, err := NewOriginatedAdjustment(kernel.NewUUID(), rate.Label(), rate, o)
	if err != nil {
		return err
	}
	o.adjustments = append(o.adjustments, adj)
	return nil
}

// CreateShipment synchronizes the order's shipment and shipping charge with
// the selected shipping method. Without a selected method it is a no-op.
//
// When a shipment already exists it is re-pointed at the current method
// rather than replaced, and the shipping charge follows: a charge owned by a
// different method is transferred to the current one and its amount
// recomputed. Repeated invocation never creates a second shipment or a
// second shipping charge.
func (o *Order) CreateShipment() error {
	if o.shippingMethod == nil {
		return nil
	}

	if shipment := o.Shipment(); shipment != nil {
		if err := shipment.SetMethod(o.shippingMethod); err != nil {
			return err
		}
		return o.syncShippingCharge()
	}

	shipment, err := NewShipment(kernel.NewUUID(), o.shippingMethod, o.inventoryUnits)
	if err != nil {
		return err
	}
	o.shipments = append(o.shipments, shipment)
	return o.syncShippingCharge()
}

// syncShippingCharge keeps the single shipping charge owned by the currently
// selected method.
func (o *Order) syncShippingCharge() error {
	existing := o.shippingAdjustment()
	if existing == nil {
		adj, err := NewOriginatedAdjustment(kernel.NewUUID(), o.shippingMethod.Name(), o.shippingMethod, o)
		if err != nil {
			return err
		}
		o.adjustments = append(o.adjustments, adj)
		return nil
	}

	if existing.OriginatedBy(o.shippingMethod) {
		if err := existing.BindOriginator(o.shippingMethod); err != nil {
			return err
		}
		existing.Refresh(o)
		return nil
	}

	return existing.RepointOriginator(o.shippingMethod, o)
}
