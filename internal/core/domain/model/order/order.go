package order

import (
	"errors"
	"sort"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods. This
	// ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the commerce core. It owns the checkout
// state machine, the line items, payments, shipments, inventory units,
// adjustments, return authorizations, and the append-only state event log.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and order number
//   - State transitions follow the machine defined in machine.go
//   - completedAt is set exactly once, on entering complete
//   - The persisted totals equal what the update pipeline derives
//   - Can only be created through NewOrder or RestoreOrder
//
// The four monetary totals and the two derived states (paymentState,
// shipmentState) are owned by the Update pipeline; nothing else writes them.
type Order struct {
	id     kernel.UUID
	number kernel.OrderNumber
	email  string

	state         State
	paymentState  PaymentState
	shipmentState ShipmentState

	itemTotal       kernel.Money
	adjustmentTotal kernel.Money
	paymentTotal    kernel.Money
	total           kernel.Money

	billAddress *kernel.Address
	shipAddress *kernel.Address

	shippingMethod ShippingMethod

	lineItems            []*LineItem
	payments             []*Payment
	shipments            []*Shipment
	inventoryUnits       []*InventoryUnit
	adjustments          []*Adjustment
	returnAuthorizations []*ReturnAuthorization
	stateEvents          []StateEvent

	completedAt *time.Time
	version     int

	isConstructed bool
}

// NewOrder creates a new Order in the cart state with a freshly generated
// order number. This is the only way to create a valid new Order.
func NewOrder(id kernel.UUID, email string) (*Order, error) {
	order := &Order{
		email:         email,
		state:         StateCart,
		number:        kernel.NewRandomOrderNumber(),
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrderParams carries every persisted field needed to rehydrate an
// Order. Repositories fill it from their row graph; nothing is validated
// until RestoreOrder runs.
type RestoreOrderParams struct {
	ID     kernel.UUID
	Number kernel.OrderNumber
	Email  string

	State         State
	PaymentState  PaymentState
	ShipmentState ShipmentState

	ItemTotal       kernel.Money
	AdjustmentTotal kernel.Money
	PaymentTotal    kernel.Money
	Total           kernel.Money

	BillAddress *kernel.Address
	ShipAddress *kernel.Address

	LineItems            []*LineItem
	Payments             []*Payment
	Shipments            []*Shipment
	InventoryUnits       []*InventoryUnit
	Adjustments          []*Adjustment
	ReturnAuthorizations []*ReturnAuthorization
	StateEvents          []StateEvent

	CompletedAt *time.Time
	Version     int
}

// RestoreOrder rehydrates an Order from persistence. Unlike NewOrder it
// accepts any valid state and pre-computed totals; it trusts the repository
// to hand back what the update pipeline previously derived.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	order := &Order{
		number:               params.Number,
		email:                params.Email,
		paymentState:         params.PaymentState,
		shipmentState:        params.ShipmentState,
		itemTotal:            params.ItemTotal,
		adjustmentTotal:      params.AdjustmentTotal,
		paymentTotal:         params.PaymentTotal,
		total:                params.Total,
		billAddress:          params.BillAddress,
		shipAddress:          params.ShipAddress,
		lineItems:            params.LineItems,
		payments:             params.Payments,
		shipments:            params.Shipments,
		inventoryUnits:       params.InventoryUnits,
		adjustments:          params.Adjustments,
		returnAuthorizations: params.ReturnAuthorizations,
		stateEvents:          params.StateEvents,
		completedAt:          params.CompletedAt,
		version:              params.Version,
		isConstructed:        true,
	}

	if err := errors.Join(
		order.setID(params.ID),
		params.Number.Validate(),
		params.State.Validate(),
	); err != nil {
		return nil, err
	}
	order.state = params.State

	return order, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the human-facing order number.
func (o *Order) Number() kernel.OrderNumber { return o.number }

// Email returns the customer email.
func (o *Order) Email() string { return o.email }

// SetEmail updates the customer email.
func (o *Order) SetEmail(email string) { o.email = email }

// State returns the current lifecycle state.
func (o *Order) State() State { return o.state }

// PaymentState returns the derived payment position.
func (o *Order) PaymentState() PaymentState { return o.paymentState }

// ShipmentState returns the derived fulfillment position.
func (o *Order) ShipmentState() ShipmentState { return o.shipmentState }

// ItemTotal returns the sum of line item amounts.
func (o *Order) ItemTotal() kernel.Money { return o.itemTotal }

// AdjustmentTotal returns the sum of applicable adjustment amounts.
func (o *Order) AdjustmentTotal() kernel.Money { return o.adjustmentTotal }

// PaymentTotal returns the sum of completed payment amounts.
func (o *Order) PaymentTotal() kernel.Money { return o.paymentTotal }

// Total returns itemTotal + adjustmentTotal.
func (o *Order) Total() kernel.Money { return o.total }

// BillAddress returns the billing address, nil if not set.
func (o *Order) BillAddress() *kernel.Address { return o.billAddress }

// ShipAddress returns the shipping address, nil if not set.
func (o *Order) ShipAddress() *kernel.Address { return o.shipAddress }

// SetAddresses records the billing and shipping addresses collected in the
// address checkout step.
func (o *Order) SetAddresses(bill, ship kernel.Address) error {
	if err := errors.Join(bill.Validate(), ship.Validate()); err != nil {
		return err
	}
	o.billAddress = &bill
	o.shipAddress = &ship
	return nil
}

// ShippingMethod returns the selected shipping method, nil if none.
func (o *Order) ShippingMethod() ShippingMethod { return o.shippingMethod }

// SetShippingMethod records the method chosen in the delivery step.
func (o *Order) SetShippingMethod(method ShippingMethod) error {
	if method == nil {
		return errs.NewValueIsRequiredError("shipping method")
	}
	if !method.Available(o) {
		return errs.NewValueIsInvalidError("shipping method")
	}
	o.shippingMethod = method
	return nil
}

// CompletedAt returns the completion time, nil until the order completes.
func (o *Order) CompletedAt() *time.Time { return o.completedAt }

// Completed reports whether the order has ever completed checkout.
func (o *Order) Completed() bool { return o.completedAt != nil }

// Version returns the optimistic concurrency version.
func (o *Order) Version() int { return o.version }

// IncrementVersion bumps the optimistic-lock version. Repositories call it
// after a successful conditional write so the in-memory aggregate matches
// the stored row.
func (o *Order) IncrementVersion() { o.version++ }

// LineItems returns the order's line items.
func (o *Order) LineItems() []*LineItem {
	items := make([]*LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// Payments returns the order's payments.
func (o *Order) Payments() []*Payment {
	payments := make([]*Payment, len(o.payments))
	copy(payments, o.payments)
	return payments
}

// Shipments returns the order's shipments.
func (o *Order) Shipments() []*Shipment {
	shipments := make([]*Shipment, len(o.shipments))
	copy(shipments, o.shipments)
	return shipments
}

// InventoryUnits returns the order's allocated inventory units.
func (o *Order) InventoryUnits() []*InventoryUnit {
	units := make([]*InventoryUnit, len(o.inventoryUnits))
	copy(units, o.inventoryUnits)
	return units
}

// Adjustments returns the order's adjustments.
func (o *Order) Adjustments() []*Adjustment {
	adjustments := make([]*Adjustment, len(o.adjustments))
	copy(adjustments, o.adjustments)
	return adjustments
}

// ReturnAuthorizations returns the order's return authorizations.
func (o *Order) ReturnAuthorizations() []*ReturnAuthorization {
	ras := make([]*ReturnAuthorization, len(o.returnAuthorizations))
	copy(ras, o.returnAuthorizations)
	return ras
}

// StateEvents returns the append-only lifecycle log, oldest first.
func (o *Order) StateEvents() []StateEvent {
	events := make([]StateEvent, len(o.stateEvents))
	copy(events, o.stateEvents)
	return events
}

// AddItem adds quantity units of a variant to the cart. Adding a variant that
// is already in the cart increases the existing line's quantity instead of
// creating a second line.
func (o *Order) AddItem(lineItemID, variantID kernel.UUID, price kernel.Money, quantity int) error {
	if o.state != StateCart {
		return errs.NewValueIsInvalidError("state")
	}

	for _, li := range o.lineItems {
		if li.VariantID().IsEqual(variantID) {
			return li.AddQuantity(quantity)
		}
	}

	li, err := NewLineItem(lineItemID, variantID, price, quantity)
	if err != nil {
		return err
	}
	o.lineItems = append(o.lineItems, li)
	return nil
}

// Contains reports whether the order has a line item for the variant.
func (o *Order) Contains(variantID kernel.UUID) bool {
	for _, li := range o.lineItems {
		if li.VariantID().IsEqual(variantID) {
			return true
		}
	}
	return false
}

// ItemCount returns the total number of units across all line items.
func (o *Order) ItemCount() int {
	count := 0
	for _, li := range o.lineItems {
		count += li.Quantity()
	}
	return count
}

// AddPayment attaches a payment to the order.
func (o *Order) AddPayment(payment *Payment) error {
	if payment == nil {
		return errs.NewValueIsRequiredError("payment")
	}
	o.payments = append(o.payments, payment)
	return nil
}

// AddReturnAuthorization attaches a return authorization to the order.
func (o *Order) AddReturnAuthorization(ra *ReturnAuthorization) error {
	if ra == nil {
		return errs.NewValueIsRequiredError("return authorization")
	}
	o.returnAuthorizations = append(o.returnAuthorizations, ra)
	return nil
}

// AddAdjustment attaches an ad-hoc adjustment to the order.
func (o *Order) AddAdjustment(adjustment *Adjustment) error {
	if adjustment == nil {
		return errs.NewValueIsRequiredError("adjustment")
	}
	o.adjustments = append(o.adjustments, adjustment)
	return nil
}

// Shipment returns the order's current shipment: the most recently created
// one. Returns nil when the order has no shipments.
func (o *Order) Shipment() *Shipment {
	if len(o.shipments) == 0 {
		return nil
	}
	shipments := o.Shipments()
	sort.SliceStable(shipments, func(i, j int) bool {
		return shipments[i].CreatedAt().Before(shipments[j].CreatedAt())
	})
	return shipments[len(shipments)-1]
}

// Backordered reports whether any inventory unit is backordered.
func (o *Order) Backordered() bool {
	for _, iu := range o.inventoryUnits {
		if iu.Backordered() {
			return true
		}
	}
	return false
}

// OutstandingBalance returns total - paymentTotal when money is still owed,
// zero otherwise.
func (o *Order) OutstandingBalance() kernel.Money {
	if o.total.Cmp(o.paymentTotal) > 0 {
		return o.total.Sub(o.paymentTotal)
	}
	return kernel.ZeroMoney()
}

// OutstandingCredit returns paymentTotal - total when the customer overpaid,
// zero otherwise.
func (o *Order) OutstandingCredit() kernel.Money {
	if o.paymentTotal.Cmp(o.total) > 0 {
		return o.paymentTotal.Sub(o.total)
	}
	return kernel.ZeroMoney()
}

// TaxTotal returns the amount of the tax charge, zero when none exists.
func (o *Order) TaxTotal() kernel.Money {
	if adj := o.taxAdjustment(); adj != nil {
		return adj.Amount()
	}
	return kernel.ZeroMoney()
}

// ShipTotal returns the amount of the shipping charge, zero when none exists.
func (o *Order) ShipTotal() kernel.Money {
	if adj := o.shippingAdjustment(); adj != nil {
		return adj.Amount()
	}
	return kernel.ZeroMoney()
}

// Paid reports whether the order is settled: paid in full or overpaid.
func (o *Order) Paid() bool {
	return o.paymentState == PaymentStatePaid || o.paymentState == PaymentStateCreditOwed
}

// CheckoutAllowed reports whether the cart can enter checkout. An empty cart
// cannot advance.
func (o *Order) CheckoutAllowed() bool {
	return len(o.lineItems) > 0
}

// allowCancel reports whether the cancel event is available: always, except
// for an already-canceled order.
func (o *Order) allowCancel() bool {
	return o.state != StateCanceled
}

// allowResume reports whether the resume event is available. It requires a
// canceled order whose lifecycle log records where it was canceled from.
func (o *Order) allowResume() bool {
	return o.state == StateCanceled && o.lastEventBefore(EventResume) != nil
}

// taxAdjustment returns the order's tax charge, nil when none exists. The
// synchronizer maintains at most one.
func (o *Order) taxAdjustment() *Adjustment {
	for _, adj := range o.adjustments {
		if adj.IsTax() {
			return adj
		}
	}
	return nil
}

// shippingAdjustment returns the order's shipping charge, nil when none
// exists. The synchronizer maintains at most one.
func (o *Order) shippingAdjustment() *Adjustment {
	for _, adj := range o.adjustments {
		if adj.IsShipping() {
			return adj
		}
	}
	return nil
}

// removeAdjustment drops the adjustment with the given identity.
func (o *Order) removeAdjustment(id kernel.UUID) {
	for i, adj := range o.adjustments {
		if adj.ID().IsEqual(id) {
			o.adjustments = append(o.adjustments[:i], o.adjustments[i+1:]...)
			return
		}
	}
}

// lastEventBefore returns the most recent state event whose name differs from
// skip, nil when the log holds none.
func (o *Order) lastEventBefore(skip Event) *StateEvent {
	for i := len(o.stateEvents) - 1; i >= 0; i-- {
		if o.stateEvents[i].Name() != skip {
			e := o.stateEvents[i]
			return &e
		}
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}
