package commands

import (
	"context"
	"errors"

	"commerce/internal/core/domain/model/order"
)

// ErrOrderNumberSpaceExhausted is returned when order number generation keeps
// colliding with stored numbers after several attempts.
var ErrOrderNumberSpaceExhausted = errors.New("could not generate a unique order number")

// orderNumberAttempts bounds the collision retry loop during creation.
const orderNumberAttempts = 10

// CreateOrderCommandHandler handles the business logic for opening a cart.
// Generates the human-facing order number and retries on the rare collision.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderID := kernel.NewUUID()
//	cmd, _ := NewCreateOrderCommand(orderID, "jane@example.com")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command. The new order starts as an
// empty cart. Its generated number is checked against storage and the order
// is rebuilt on a collision, up to a fixed number of attempts.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	var aggregate *order.Order
	for range orderNumberAttempts {
		candidate, err := order.NewOrder(cmd.OrderID(), cmd.Email())
		if err != nil {
			return err
		}

		exists, err := orderRepo.ExistsByNumber(ctx, candidate.Number())
		if err != nil {
			return err
		}
		if !exists {
			aggregate = candidate
			break
		}
	}
	if aggregate == nil {
		return ErrOrderNumberSpaceExhausted
	}

	if err := orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
