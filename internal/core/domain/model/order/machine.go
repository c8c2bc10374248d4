package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commerce/internal/pkg/errs"
)

var (
	// ErrPaymentDeclined is returned when the payment processor declines a
	// payment while the order tries to complete checkout.
	ErrPaymentDeclined = errors.New("payment was declined")
)

// PaymentProcessor settles a payment against an external gateway. A nil
// processor in Collaborators skips payment processing entirely, which is the
// configuration used for orders that owe nothing.
type PaymentProcessor interface {
	Process(ctx context.Context, o *Order, p *Payment) error
}

// TaxRateMatcher finds the tax rate applicable to an order, nil when no rate
// matches its addresses.
type TaxRateMatcher interface {
	Match(ctx context.Context, o *Order) (TaxRate, error)
}

// InventoryAllocator reserves stock for the order's line items, returning one
// inventory unit per ordered quantity. Units for out-of-stock variants come
// back backordered.
type InventoryAllocator interface {
	Allocate(ctx context.Context, o *Order) ([]*InventoryUnit, error)
}

// Collaborators bundles the external services the state machine hooks and the
// update pipeline consult. Any field may be nil; the hook that needs it then
// degrades to a no-op.
type Collaborators struct {
	Payments  PaymentProcessor
	TaxRates  TaxRateMatcher
	Inventory InventoryAllocator
}

// PostTransitionError reports a post-commit hook failure. The transition
// itself already committed and is not rolled back; callers decide whether to
// surface or log the hook failure.
type PostTransitionError struct {
	Event Event
	Err   error
}

func (e *PostTransitionError) Error() string {
	return fmt.Sprintf("post-transition hook failed after %s: %v", e.Event, e.Err)
}

func (e *PostTransitionError) Unwrap() error { return e.Err }

// hookFn is a transition hook. Before-hooks run pre-commit and abort the
// transition on error; after-hooks run post-commit and cannot roll it back.
type hookFn func(ctx context.Context, o *Order, c Collaborators) error

// anyState matches every source state in the transition table.
const anyState = State(-1)

// transition is one edge of the state machine graph.
type transition struct {
	from   State
	to     State
	guard  func(o *Order) bool
	before hookFn
	after  hookFn
}

// transitions is the full state machine. The happy path walks the next event
// from cart to complete; cancel, resume, and the return flow branch off it.
func transitions() map[Event][]transition {
	return map[Event][]transition{
		EventNext: {
			{from: StateCart, to: StateAddress, guard: (*Order).CheckoutAllowed},
			{from: StateAddress, to: StateDelivery, guard: hasAddresses, after: hookCreateTaxCharge},
			{from: StateDelivery, to: StatePayment, guard: hasShippingMethod, after: hookCreateShipment},
			{from: StatePayment, to: StateConfirm},
			{from: StateConfirm, to: StateComplete, before: hookProcessPayments, after: hookFinalize},
		},
		EventCancel: {
			{from: anyState, to: StateCanceled, guard: (*Order).allowCancel},
		},
		EventResume: {
			{from: StateCanceled, to: StateResumed, guard: (*Order).allowResume},
		},
		EventAuthorizeReturn: {
			{from: anyState, to: StateAwaitingReturn},
		},
		EventReturn: {
			{from: StateAwaitingReturn, to: StateReturned},
		},
	}
}

func init() {
	validateTransitions()
}

// validateTransitions panics at startup when the transition table references
// an undeclared state or event.
func validateTransitions() {
	for event, ts := range transitions() {
		if err := event.Validate(); err != nil {
			panic(fmt.Sprintf("transition table: %v", err))
		}
		for _, t := range ts {
			if t.from != anyState {
				if err := t.from.Validate(); err != nil {
					panic(fmt.Sprintf("transition table for %s: %v", event, err))
				}
			}
			if err := t.to.Validate(); err != nil {
				panic(fmt.Sprintf("transition table for %s: %v", event, err))
			}
		}
	}
}

func hasAddresses(o *Order) bool {
	return o.billAddress != nil && o.shipAddress != nil
}

func hasShippingMethod(o *Order) bool {
	return o.shippingMethod != nil
}

// Fire attempts to apply an event to the order. It returns true when a
// transition committed.
//
// When no transition is defined from the current state, or a guard rejects
// the transition, Fire is a silent no-op: (false, nil) and the order is
// untouched. A before-hook error aborts the transition with (false, err).
// An after-hook error comes back wrapped in PostTransitionError with
// fired=true; the transition itself stands.
func (o *Order) Fire(ctx context.Context, event Event, c Collaborators) (bool, error) {
	if err := event.Validate(); err != nil {
		return false, err
	}

	var matched *transition
	for _, t := range transitions()[event] {
		if t.from == o.state || t.from == anyState {
			matched = &t
			break
		}
	}
	if matched == nil {
		return false, nil
	}
	if matched.guard != nil && !matched.guard(o) {
		return false, nil
	}

	if matched.before != nil {
		if err := matched.before(ctx, o, c); err != nil {
			return false, err
		}
	}

	previous := o.state
	o.state = matched.to
	o.stateEvents = append(o.stateEvents, StateEvent{
		name:          event,
		previousState: previous,
		at:            time.Now(),
	})
	if o.state == StateComplete && o.completedAt == nil {
		now := time.Now()
		o.completedAt = &now
	}

	if matched.after != nil {
		if err := matched.after(ctx, o, c); err != nil {
			return true, &PostTransitionError{Event: event, Err: err}
		}
	}

	return true, nil
}

// Next advances the checkout one step along the happy path.
func (o *Order) Next(ctx context.Context, c Collaborators) (bool, error) {
	return o.Fire(ctx, EventNext, c)
}

// Cancel cancels the order. Canceling an already-canceled order or an open
// cart is a no-op.
func (o *Order) Cancel(ctx context.Context, c Collaborators) (bool, error) {
	return o.Fire(ctx, EventCancel, c)
}

// ExpireCart cancels an idle cart. It is the cart cleanup job's operation:
// unlike Cancel it refuses any order past the cart state, so the job can
// never expire an order a customer is checking out. It still records a
// cancel entry in the lifecycle log.
func (o *Order) ExpireCart() error {
	if o.state != StateCart {
		return errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("only a cart can expire, order is %s", o.state))
	}

	o.stateEvents = append(o.stateEvents, StateEvent{
		name:          EventCancel,
		previousState: o.state,
		at:            time.Now(),
	})
	o.state = StateCanceled
	return nil
}

// Resume brings a canceled order back. Resuming is a no-op unless the
// lifecycle log records where the order was canceled from.
func (o *Order) Resume(ctx context.Context, c Collaborators) (bool, error) {
	return o.Fire(ctx, EventResume, c)
}

// AuthorizeReturn opens the return flow for a completed order.
func (o *Order) AuthorizeReturn(ctx context.Context, c Collaborators) (bool, error) {
	return o.Fire(ctx, EventAuthorizeReturn, c)
}

// Return completes the return flow.
func (o *Order) Return(ctx context.Context, c Collaborators) (bool, error) {
	return o.Fire(ctx, EventReturn, c)
}

// RestoreState is the administrative override that rewinds the order to the
// state it held before its most recent transition. A trailing resume entry is
// popped from the lifecycle log first so the rewind sees past it. An order
// with an empty log falls back to the initial cart state.
//
// When the rewound order is already settled its inventory is allocated if
// missing and the current shipment is re-synced, so a paid order rewound past
// completion keeps a shippable fulfillment position.
func (o *Order) RestoreState(ctx context.Context, c Collaborators) error {
	if n := len(o.stateEvents); n > 0 && o.stateEvents[n-1].Name() == EventResume {
		o.stateEvents = o.stateEvents[:n-1]
	}

	if n := len(o.stateEvents); n > 0 {
		o.state = o.stateEvents[n-1].PreviousState()
	} else {
		o.state = StateCart
	}

	if !o.Paid() {
		return nil
	}

	if len(o.inventoryUnits) == 0 && c.Inventory != nil {
		units, err := c.Inventory.Allocate(ctx, o)
		if err != nil {
			return err
		}
		o.inventoryUnits = units
	}
	if shipment := o.Shipment(); shipment != nil {
		shipment.Sync(o)
	}

	return nil
}

func hookCreateTaxCharge(ctx context.Context, o *Order, c Collaborators) error {
	if c.TaxRates == nil {
		return nil
	}
	return o.CreateTaxCharge(ctx, c.TaxRates)
}

func hookCreateShipment(ctx context.Context, o *Order, c Collaborators) error {
	return o.CreateShipment()
}

// hookProcessPayments settles every unsettled payment before the order may
// complete. A declined payment aborts the transition.
func hookProcessPayments(ctx context.Context, o *Order, c Collaborators) error {
	if c.Payments == nil {
		return nil
	}
	for _, p := range o.payments {
		if p.Status() != PaymentStatusCheckout && p.Status() != PaymentStatusPending {
			continue
		}
		if err := c.Payments.Process(ctx, o, p); err != nil {
			_ = p.MarkFailed()
			return fmt.Errorf("%w: %w", ErrPaymentDeclined, err)
		}
		if err := p.MarkCompleted(); err != nil {
			return err
		}
	}
	return nil
}

// hookFinalize runs after the order commits to complete: stock is allocated
// for its line items and the derived fields are recomputed once.
func hookFinalize(ctx context.Context, o *Order, c Collaborators) error {
	if len(o.inventoryUnits) == 0 && c.Inventory != nil {
		units, err := c.Inventory.Allocate(ctx, o)
		if err != nil {
			return err
		}
		o.inventoryUnits = units
		if shipment := o.Shipment(); shipment != nil {
			shipment.AssignInventoryUnits(units)
		}
	}

	_, err := o.Update(ctx, c)
	return err
}
