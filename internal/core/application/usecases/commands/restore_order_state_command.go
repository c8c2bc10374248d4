package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var ErrRestoreOrderStateCommandIsNotConstructed = errors.New(
	"RestoreOrderStateCommand must be created via NewRestoreOrderStateCommand constructor",
)

// RestoreOrderStateCommand represents the administrative request to rewind an
// order to the state it held before its most recent transition.
type RestoreOrderStateCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRestoreOrderStateCommand creates a command to rewind an order's state.
func NewRestoreOrderStateCommand(orderID kernel.UUID) (RestoreOrderStateCommand, error) {
	cmd := RestoreOrderStateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RestoreOrderStateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RestoreOrderStateCommand) Validate() error {
	return c.guard.Validate(ErrRestoreOrderStateCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c RestoreOrderStateCommand) OrderID() kernel.UUID { return c.orderID }

func (c *RestoreOrderStateCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}
