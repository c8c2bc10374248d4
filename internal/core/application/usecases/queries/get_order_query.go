package queries

import (
	"errors"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery or NewGetOrderQueryByNumber constructor",
)

// GetOrderQuery retrieves a single order either by its identifier or by its
// customer-facing number.
type GetOrderQuery struct {
	orderID *kernel.UUID
	number  *kernel.OrderNumber

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query that looks an order up by ID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: &orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewGetOrderQueryByNumber creates a query that looks an order up by its
// customer-facing number.
func NewGetOrderQueryByNumber(number kernel.OrderNumber) (GetOrderQuery, error) {
	if err := number.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		number: &number,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the lookup ID, or nil for number-based lookups.
func (q GetOrderQuery) OrderID() *kernel.UUID { return q.orderID }

// Number returns the lookup number, or nil for ID-based lookups.
func (q GetOrderQuery) Number() *kernel.OrderNumber { return q.number }

// GetOrderQueryResponse carries the order's read model: its lifecycle
// position, derived states, money totals and line items.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	Number          kernel.OrderNumber
	Email           string
	State           order.State
	PaymentState    order.PaymentState
	ShipmentState   order.ShipmentState
	ItemTotal       kernel.Money
	AdjustmentTotal kernel.Money
	PaymentTotal    kernel.Money
	Total           kernel.Money
	CompletedAt     *time.Time
	LineItems       []GetOrderQueryLineItem
}

// GetOrderQueryLineItem is one purchased variant within the order read model.
type GetOrderQueryLineItem struct {
	ID        kernel.UUID
	VariantID kernel.UUID
	Price     kernel.Money
	Quantity  int
}
