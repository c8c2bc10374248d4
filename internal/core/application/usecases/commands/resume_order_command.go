package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var (
	ErrResumeOrderCommandIsNotConstructed = errors.New(
		"ResumeOrderCommand must be created via NewResumeOrderCommand constructor",
	)

	// ErrOrderNotResumable is returned when the order is not canceled or its
	// lifecycle log holds no record of where it was canceled from.
	ErrOrderNotResumable = errors.New("order cannot be resumed")
)

// ResumeOrderCommand represents a request to bring a canceled order back.
type ResumeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResumeOrderCommand creates a command to resume a canceled order.
func NewResumeOrderCommand(orderID kernel.UUID) (ResumeOrderCommand, error) {
	cmd := ResumeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ResumeOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResumeOrderCommand) Validate() error {
	return c.guard.Validate(ErrResumeOrderCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c ResumeOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c *ResumeOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}
