package order

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

// PaymentStatus is the completion status of an individual payment. Only
// completed payments contribute to the order's paymentTotal.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusCheckout is the initial status of a newly added payment.
	PaymentStatusCheckout

	// PaymentStatusPending means the payment was submitted to the gateway
	// and awaits settlement.
	PaymentStatusPending

	// PaymentStatusCompleted means the gateway settled the payment.
	PaymentStatusCompleted

	// PaymentStatusFailed means the gateway declined or errored.
	PaymentStatusFailed

	// PaymentStatusVoid means the payment was voided and never counts.
	PaymentStatusVoid
)

// String implements fmt.Stringer.
func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusCheckout:
		return "checkout"
	case PaymentStatusPending:
		return "pending"
	case PaymentStatusCompleted:
		return "completed"
	case PaymentStatusFailed:
		return "failed"
	case PaymentStatusVoid:
		return "void"
	default:
		return "unknown"
	}
}

// Validate checks the PaymentStatus is one of the declared statuses.
func (s PaymentStatus) Validate() error {
	if s <= PaymentStatusUnknown || s > PaymentStatusVoid {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", int(s)))
	}
	return nil
}

// Payment is money promised against the order from a single source
// (e.g. a stored credit card). Gateway processing internals live outside
// this core; the payment only tracks amount, source, and completion status.
type Payment struct {
	id     kernel.UUID
	amount kernel.Money
	source string
	status PaymentStatus
}

// NewPayment creates a payment in checkout status.
func NewPayment(id kernel.UUID, amount kernel.Money, source string) (*Payment, error) {
	p := &Payment{
		source: source,
		status: PaymentStatusCheckout,
	}

	if err := errors.Join(
		p.setID(id),
		p.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePayment rehydrates a payment from persistence.
func RestorePayment(id kernel.UUID, amount kernel.Money, source string, status PaymentStatus) (*Payment, error) {
	p, err := NewPayment(id, amount, source)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	p.status = status
	return p, nil
}

// ID returns the payment identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// Amount returns the promised amount.
func (p *Payment) Amount() kernel.Money { return p.amount }

// Source describes where the money comes from.
func (p *Payment) Source() string { return p.source }

// Status returns the current completion status.
func (p *Payment) Status() PaymentStatus { return p.status }

// Completed reports whether this payment counts toward paymentTotal.
func (p *Payment) Completed() bool {
	return p.status == PaymentStatusCompleted
}

// MarkCompleted records gateway settlement. Only checkout or pending
// payments can complete.
func (p *Payment) MarkCompleted() error {
	if p.status != PaymentStatusCheckout && p.status != PaymentStatusPending {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%s cannot transition to completed", p.status))
	}
	p.status = PaymentStatusCompleted
	return nil
}

// MarkPending records submission to the gateway.
func (p *Payment) MarkPending() error {
	if p.status != PaymentStatusCheckout {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%s cannot transition to pending", p.status))
	}
	p.status = PaymentStatusPending
	return nil
}

// MarkFailed records a gateway decline or error.
func (p *Payment) MarkFailed() error {
	if p.status == PaymentStatusCompleted || p.status == PaymentStatusVoid {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%s cannot transition to failed", p.status))
	}
	p.status = PaymentStatusFailed
	return nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", amount))
	}
	p.amount = amount
	return nil
}
