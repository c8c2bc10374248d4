package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var (
	ErrAddLineItemCommandIsNotConstructed = errors.New(
		"AddLineItemCommand must be created via NewAddLineItemCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
	ErrPriceIsInvalid    = errors.New("price must not be negative")
)

// AddLineItemCommand represents a request to put quantity units of a variant
// into an open cart at the given unit price.
type AddLineItemCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	lineItemID kernel.UUID
	variantID  kernel.UUID
	price      kernel.Money
	quantity   int

	guard guard.ConstructorGuard
}

// NewAddLineItemCommand creates a command to add an item to a cart.
func NewAddLineItemCommand(orderID, lineItemID, variantID kernel.UUID, price kernel.Money, quantity int) (AddLineItemCommand, error) {
	cmd := AddLineItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLineItemID(lineItemID),
		cmd.setVariantID(variantID),
		cmd.setPrice(price),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddLineItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddLineItemCommand) Validate() error {
	return c.guard.Validate(ErrAddLineItemCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c AddLineItemCommand) OrderID() kernel.UUID { return c.orderID }

// LineItemID returns the identifier for the line item if a new one is created.
func (c AddLineItemCommand) LineItemID() kernel.UUID { return c.lineItemID }

// VariantID returns the purchasable variant to add.
func (c AddLineItemCommand) VariantID() kernel.UUID { return c.variantID }

// Price returns the unit price captured for the line.
func (c AddLineItemCommand) Price() kernel.Money { return c.price }

// Quantity returns the number of units to add.
func (c AddLineItemCommand) Quantity() int { return c.quantity }

func (c *AddLineItemCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AddLineItemCommand) setLineItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.lineItemID = id
	return nil
}

func (c *AddLineItemCommand) setVariantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.variantID = id
	return nil
}

func (c *AddLineItemCommand) setPrice(price kernel.Money) error {
	if price.IsNegative() {
		return ErrPriceIsInvalid
	}
	c.price = price
	return nil
}

func (c *AddLineItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}
	c.quantity = quantity
	return nil
}
