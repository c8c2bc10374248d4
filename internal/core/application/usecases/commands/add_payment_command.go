package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var (
	ErrAddPaymentCommandIsNotConstructed = errors.New(
		"AddPaymentCommand must be created via NewAddPaymentCommand constructor",
	)
	ErrAmountIsInvalid  = errors.New("amount must be greater than 0")
	ErrSourceIsRequired = errors.New("source is required")
)

// AddPaymentCommand represents a request to promise money against an order
// from a named source. The payment starts unsettled; the gateway settles it
// when the order completes checkout.
type AddPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	paymentID kernel.UUID
	amount    kernel.Money
	source    string

	guard guard.ConstructorGuard
}

// NewAddPaymentCommand creates a command to attach a payment to an order.
func NewAddPaymentCommand(orderID, paymentID kernel.UUID, amount kernel.Money, source string) (AddPaymentCommand, error) {
	cmd := AddPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPaymentID(paymentID),
		cmd.setAmount(amount),
		cmd.setSource(source),
	); err != nil {
		return AddPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddPaymentCommand) Validate() error {
	return c.guard.Validate(ErrAddPaymentCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c AddPaymentCommand) OrderID() kernel.UUID { return c.orderID }

// PaymentID returns the identifier for the new payment.
func (c AddPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// Amount returns the promised amount.
func (c AddPaymentCommand) Amount() kernel.Money { return c.amount }

// Source returns where the money comes from.
func (c AddPaymentCommand) Source() string { return c.source }

func (c *AddPaymentCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AddPaymentCommand) setPaymentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.paymentID = id
	return nil
}

func (c *AddPaymentCommand) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return ErrAmountIsInvalid
	}
	c.amount = amount
	return nil
}

func (c *AddPaymentCommand) setSource(source string) error {
	if source == "" {
		return ErrSourceIsRequired
	}
	c.source = source
	return nil
}
