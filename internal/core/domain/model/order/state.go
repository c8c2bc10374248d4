package order

import (
	"fmt"

	"commerce/internal/pkg/errs"
)

// State represents the lifecycle state of an order: its position in the
// checkout and fulfillment workflow.
//
// Happy path:
//
//	cart ──> address ──> delivery ──> payment ──> confirm ──> complete
//
// Side branches: any state can be canceled (and later resumed), and a
// completed order can be sent through the return flow
// (awaiting_return ──> returned).
type State int

const (
	// StateUnknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	StateUnknown State = iota

	// StateCart is the initial state: the order is an open cart.
	StateCart

	// StateAddress means billing/shipping addresses are being collected.
	StateAddress

	// StateDelivery means a shipping method is being chosen.
	StateDelivery

	// StatePayment means payment details are being collected.
	StatePayment

	// StateConfirm is the final review step before completion.
	StateConfirm

	// StateComplete is the happy-path terminal state. Entering it sets
	// completedAt exactly once.
	StateComplete

	// StateCanceled means the order was canceled.
	StateCanceled

	// StateResumed means a canceled order was brought back.
	StateResumed

	// StateAwaitingReturn means a return was authorized and is pending.
	StateAwaitingReturn

	// StateReturned is the terminal state of the return flow.
	StateReturned
)

func stateStrings() map[State]string {
	return map[State]string{
		StateUnknown:        "unknown",
		StateCart:           "cart",
		StateAddress:        "address",
		StateDelivery:       "delivery",
		StatePayment:        "payment",
		StateConfirm:        "confirm",
		StateComplete:       "complete",
		StateCanceled:       "canceled",
		StateResumed:        "resumed",
		StateAwaitingReturn: "awaiting_return",
		StateReturned:       "returned",
	}
}

// Validate checks the State is one of the declared lifecycle states.
func (s State) Validate() error {
	if s == StateUnknown {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", int(s)))
	}
	if _, ok := stateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", int(s)))
	}
	return nil
}

// String implements fmt.Stringer and is safe on any State value.
func (s State) String() string {
	if str, ok := stateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Event names a state-machine event an order can receive.
type Event int

const (
	// EventUnknown represents an invalid or undefined event.
	EventUnknown Event = iota

	// EventNext advances the checkout one step along the happy path.
	EventNext

	// EventCancel cancels the order from any non-canceled state.
	EventCancel

	// EventReturn completes the return flow for an order awaiting return.
	EventReturn

	// EventResume brings a canceled order back to life.
	EventResume

	// EventAuthorizeReturn opens the return flow.
	EventAuthorizeReturn
)

func eventStrings() map[Event]string {
	return map[Event]string{
		EventUnknown:         "unknown",
		EventNext:            "next",
		EventCancel:          "cancel",
		EventReturn:          "return",
		EventResume:          "resume",
		EventAuthorizeReturn: "authorize_return",
	}
}

// Validate checks the Event is one of the declared events.
func (e Event) Validate() error {
	if e == EventUnknown {
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%d is not a valid event", int(e)))
	}
	if _, ok := eventStrings()[e]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%d is not a valid event", int(e)))
	}
	return nil
}

// String implements fmt.Stringer and is safe on any Event value.
func (e Event) String() string {
	if str, ok := eventStrings()[e]; ok {
		return str
	}
	return "unknown"
}

// PaymentState is the derived payment position of the order, recomputed by
// the update pipeline from paymentTotal versus total. The zero value
// PaymentStateNone means the state has not been derived yet.
type PaymentState int

const (
	// PaymentStateNone means no payment state has been derived yet.
	PaymentStateNone PaymentState = iota

	// PaymentStateBalanceDue means paymentTotal < total.
	PaymentStateBalanceDue

	// PaymentStateCreditOwed means paymentTotal > total.
	PaymentStateCreditOwed

	// PaymentStatePaid means paymentTotal == total exactly.
	PaymentStatePaid
)

// String implements fmt.Stringer.
func (s PaymentState) String() string {
	switch s {
	case PaymentStateBalanceDue:
		return "balance_due"
	case PaymentStateCreditOwed:
		return "credit_owed"
	case PaymentStatePaid:
		return "paid"
	default:
		return "none"
	}
}

// ShipmentState is the derived fulfillment position of the order, recomputed
// by the update pipeline from its shipments and inventory units. The zero
// value ShipmentStateNone means the order has no shipments yet.
type ShipmentState int

const (
	// ShipmentStateNone means the order has no shipments.
	ShipmentStateNone ShipmentState = iota

	// ShipmentStateReady means every shipment is ready.
	ShipmentStateReady

	// ShipmentStatePartial means shipments are in mixed states.
	ShipmentStatePartial

	// ShipmentStateShipped means every shipment has shipped.
	ShipmentStateShipped

	// ShipmentStateBackorder overrides everything else when any inventory
	// unit is backordered.
	ShipmentStateBackorder
)

// String implements fmt.Stringer.
func (s ShipmentState) String() string {
	switch s {
	case ShipmentStateReady:
		return "ready"
	case ShipmentStatePartial:
		return "partial"
	case ShipmentStateShipped:
		return "shipped"
	case ShipmentStateBackorder:
		return "backorder"
	default:
		return "none"
	}
}
