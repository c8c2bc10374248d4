package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var (
	ErrAdvanceCheckoutCommandIsNotConstructed = errors.New(
		"AdvanceCheckoutCommand must be created via NewAdvanceCheckoutCommand constructor",
	)
	ErrAddressesAreIncomplete = errors.New("billing and shipping address must be provided together")
)

// AdvanceCheckoutCommand represents a request to move an order one step
// forward along the checkout path. Addresses may be supplied with the same
// request, covering the address collection step in one round trip.
//
// Example:
//
//	cmd, _ := NewAdvanceCheckoutCommand(orderID)
//	cmd, _ = NewAdvanceCheckoutCommandWithAddresses(orderID, bill, ship)
type AdvanceCheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	billAddress *kernel.Address
	shipAddress *kernel.Address

	guard guard.ConstructorGuard
}

// NewAdvanceCheckoutCommand creates a command to advance checkout one step.
func NewAdvanceCheckoutCommand(orderID kernel.UUID) (AdvanceCheckoutCommand, error) {
	cmd := AdvanceCheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AdvanceCheckoutCommand{}, err
	}

	return cmd, nil
}

// NewAdvanceCheckoutCommandWithAddresses creates an advance command that also
// records the billing and shipping addresses before moving on.
func NewAdvanceCheckoutCommandWithAddresses(orderID kernel.UUID, bill, ship kernel.Address) (AdvanceCheckoutCommand, error) {
	cmd, err := NewAdvanceCheckoutCommand(orderID)
	if err != nil {
		return AdvanceCheckoutCommand{}, err
	}

	if err := errors.Join(bill.Validate(), ship.Validate()); err != nil {
		return AdvanceCheckoutCommand{}, ErrAddressesAreIncomplete
	}
	cmd.billAddress = &bill
	cmd.shipAddress = &ship

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c AdvanceCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceCheckoutCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c AdvanceCheckoutCommand) OrderID() kernel.UUID { return c.orderID }

// BillAddress returns the billing address to record, nil when none.
func (c AdvanceCheckoutCommand) BillAddress() *kernel.Address { return c.billAddress }

// ShipAddress returns the shipping address to record, nil when none.
func (c AdvanceCheckoutCommand) ShipAddress() *kernel.Address { return c.shipAddress }

func (c *AdvanceCheckoutCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}
