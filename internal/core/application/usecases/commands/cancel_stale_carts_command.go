package commands

import (
	"errors"

	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

var ErrCancelStaleCartsCommandIsNotConstructed = errors.New(
	"CancelStaleCartsCommand must be created via NewCancelStaleCartsCommand constructor",
)

// CancelStaleCartsCommand expires carts that have been idle past the given
// age. The abandoned cart job issues it on a schedule.
type CancelStaleCartsCommand struct {
	maxAgeHours int

	guard guard.ConstructorGuard
}

// NewCancelStaleCartsCommand creates a command to expire carts older than
// maxAgeHours.
func NewCancelStaleCartsCommand(maxAgeHours int) (CancelStaleCartsCommand, error) {
	if maxAgeHours <= 0 {
		return CancelStaleCartsCommand{}, errs.NewValueIsInvalidError("maxAgeHours")
	}

	return CancelStaleCartsCommand{
		maxAgeHours: maxAgeHours,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleCartsCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleCartsCommandIsNotConstructed)
}

// MaxAgeHours returns the idle age past which a cart expires.
func (c CancelStaleCartsCommand) MaxAgeHours() int { return c.maxAgeHours }
