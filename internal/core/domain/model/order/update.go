package order

import (
	"context"
	"errors"

	"commerce/internal/core/domain/model/kernel"
)

var (
	// ErrInconsistentTotals is returned when the recomputed totals violate
	// the total = itemTotal + adjustmentTotal identity. It indicates a bug
	// in an adjustment originator, not bad input.
	ErrInconsistentTotals = errors.New("order totals are inconsistent")
)

// DerivedFields is the snapshot of everything the update pipeline derives.
// Repositories persist exactly this set in one write, so the stored order can
// never hold a half-recomputed mixture.
type DerivedFields struct {
	PaymentState    PaymentState
	ShipmentState   ShipmentState
	ItemTotal       kernel.Money
	AdjustmentTotal kernel.Money
	PaymentTotal    kernel.Money
	Total           kernel.Money
}

// Update recomputes every derived field of the order from its current
// children. The sequence is fixed:
//
//  1. recompute the four totals
//  2. derive the shipment state from the shipments as they stand
//  3. let each shipment sync itself against the new order context
//  4. derive the payment state from paymentTotal versus total
//  5. drop inapplicable adjustments and refresh the rest
//  6. recompute the totals again, since step 5 can change them
//  7. return the snapshot for persistence
//
// The shipment state is derived before the shipments sync, so a shipment a
// sync promotes to ready surfaces in the stored state on the next
// invocation, not this one.
//
// Update is idempotent: running it twice with no intervening mutation yields
// the same snapshot. It mutates only derived state, never line items,
// payments, or the lifecycle log.
func (o *Order) Update(ctx context.Context, c Collaborators) (DerivedFields, error) {
	o.updateTotals()
	o.updateShipmentState()

	for _, shipment := range o.shipments {
		shipment.Sync(o)
	}
	o.updatePaymentState()

	o.updateAdjustments()
	o.updateTotals()

	if !o.total.IsEqual(o.itemTotal.Add(o.adjustmentTotal)) {
		return DerivedFields{}, ErrInconsistentTotals
	}

	return DerivedFields{
		PaymentState:    o.paymentState,
		ShipmentState:   o.shipmentState,
		ItemTotal:       o.itemTotal,
		AdjustmentTotal: o.adjustmentTotal,
		PaymentTotal:    o.paymentTotal,
		Total:           o.total,
	}, nil
}

// updateTotals recomputes the four monetary totals from scratch. Sums start
// at zero, so stale values never leak across runs.
func (o *Order) updateTotals() {
	paymentTotal := kernel.ZeroMoney()
	for _, p := range o.payments {
		if p.Completed() {
			paymentTotal = paymentTotal.Add(p.Amount())
		}
	}

	itemTotal := kernel.ZeroMoney()
	for _, li := range o.lineItems {
		itemTotal = itemTotal.Add(li.Amount())
	}

	adjustmentTotal := kernel.ZeroMoney()
	for _, adj := range o.adjustments {
		adjustmentTotal = adjustmentTotal.Add(adj.Amount())
	}

	o.paymentTotal = paymentTotal
	o.itemTotal = itemTotal
	o.adjustmentTotal = adjustmentTotal
	o.total = itemTotal.Add(adjustmentTotal)
}

// updatePaymentState derives the payment position. Comparison is exact: one
// cent under is balance_due, one cent over is credit_owed.
func (o *Order) updatePaymentState() {
	switch o.paymentTotal.Cmp(o.total) {
	case -1:
		o.paymentState = PaymentStateBalanceDue
	case 1:
		o.paymentState = PaymentStateCreditOwed
	default:
		o.paymentState = PaymentStatePaid
	}
}

// updateShipmentState derives the fulfillment position from the shipments.
// A single backordered inventory unit overrides everything else.
func (o *Order) updateShipmentState() {
	if o.Backordered() {
		o.shipmentState = ShipmentStateBackorder
		return
	}
	if len(o.shipments) == 0 {
		o.shipmentState = ShipmentStateNone
		return
	}

	shipped, ready := 0, 0
	for _, s := range o.shipments {
		switch s.Status() {
		case ShipmentStatusShipped:
			shipped++
		case ShipmentStatusReady:
			ready++
		}
	}

	switch len(o.shipments) {
	case shipped:
		o.shipmentState = ShipmentStateShipped
	case ready:
		o.shipmentState = ShipmentStateReady
	default:
		o.shipmentState = ShipmentStatePartial
	}
}

// updateAdjustments drops adjustments that no longer apply and refreshes the
// amounts of those that remain. Mandatory charges always survive; removing
// them is the synchronizer's job, not the pipeline's.
func (o *Order) updateAdjustments() {
	kept := o.adjustments[:0]
	for _, adj := range o.adjustments {
		if !adj.Applicable(o) {
			continue
		}
		adj.Refresh(o)
		kept = append(kept, adj)
	}
	o.adjustments = kept
}
