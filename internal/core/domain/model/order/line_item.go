package order

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

// LineItem is one purchasable variant in the order with a quantity and the
// unit price captured at the time it was added. Its amount (price × quantity)
// contributes to the order's itemTotal.
type LineItem struct {
	id        kernel.UUID
	variantID kernel.UUID
	quantity  int
	price     kernel.Money
}

// NewLineItem creates a validated line item.
func NewLineItem(id, variantID kernel.UUID, price kernel.Money, quantity int) (*LineItem, error) {
	li := &LineItem{price: price}

	if err := errors.Join(
		li.setID(id),
		li.setVariantID(variantID),
		li.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	if price.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is negative", price))
	}

	return li, nil
}

// RestoreLineItem rehydrates a line item from persistence.
func RestoreLineItem(id, variantID kernel.UUID, price kernel.Money, quantity int) (*LineItem, error) {
	return NewLineItem(id, variantID, price, quantity)
}

// ID returns the line item identifier.
func (li *LineItem) ID() kernel.UUID { return li.id }

// VariantID returns the purchasable variant this line refers to.
func (li *LineItem) VariantID() kernel.UUID { return li.variantID }

// Quantity returns the ordered quantity.
func (li *LineItem) Quantity() int { return li.quantity }

// Price returns the captured unit price.
func (li *LineItem) Price() kernel.Money { return li.price }

// Amount returns price × quantity.
func (li *LineItem) Amount() kernel.Money {
	return li.price.MulInt(li.quantity)
}

// AddQuantity increases the quantity, used when the same variant is added to
// the cart again.
func (li *LineItem) AddQuantity(delta int) error {
	return li.setQuantity(li.quantity + delta)
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setVariantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.variantID = id
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}
