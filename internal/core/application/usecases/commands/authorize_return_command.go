package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var (
	ErrAuthorizeReturnCommandIsNotConstructed = errors.New(
		"AuthorizeReturnCommand must be created via NewAuthorizeReturnCommand constructor",
	)

	// ErrReturnNotAllowed is returned when the return flow cannot move
	// forward, such as completing a return that was never authorized.
	ErrReturnNotAllowed = errors.New("order does not allow a return")
)

// AuthorizeReturnCommand represents a request to approve a return for an
// order. The authorization covers all of the order's inventory units.
type AuthorizeReturnCommand struct { //nolint:recvcheck //using for validation
	orderID               kernel.UUID
	returnAuthorizationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAuthorizeReturnCommand creates a command to approve a return.
func NewAuthorizeReturnCommand(orderID, returnAuthorizationID kernel.UUID) (AuthorizeReturnCommand, error) {
	cmd := AuthorizeReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReturnAuthorizationID(returnAuthorizationID),
	); err != nil {
		return AuthorizeReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AuthorizeReturnCommand) Validate() error {
	return c.guard.Validate(ErrAuthorizeReturnCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c AuthorizeReturnCommand) OrderID() kernel.UUID { return c.orderID }

// ReturnAuthorizationID returns the identifier for the new authorization.
func (c AuthorizeReturnCommand) ReturnAuthorizationID() kernel.UUID {
	return c.returnAuthorizationID
}

func (c *AuthorizeReturnCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AuthorizeReturnCommand) setReturnAuthorizationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.returnAuthorizationID = id
	return nil
}
