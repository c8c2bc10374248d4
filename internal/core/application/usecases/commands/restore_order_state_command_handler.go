package commands

import (
	"context"

	"commerce/internal/core/domain/model/order"
)

// RestoreOrderStateCommandHandler handles the administrative state rewind.
// It is the only operation that rewrites the order's lifecycle log.
type RestoreOrderStateCommandHandler struct {
	uowFactory    OrderUoWFactory
	collaborators order.Collaborators
}

// NewRestoreOrderStateCommandHandler creates a handler for state rewinds.
// The collaborators supply the inventory service used to re-allocate stock
// for settled orders.
func NewRestoreOrderStateCommandHandler(uowFactory OrderUoWFactory, collaborators order.Collaborators) RestoreOrderStateCommandHandler {
	return RestoreOrderStateCommandHandler{
		uowFactory:    uowFactory,
		collaborators: collaborators,
	}
}

// Handle processes the rewind under the order's row lock.
func (h *RestoreOrderStateCommandHandler) Handle(ctx context.Context, cmd RestoreOrderStateCommand) error {
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

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err := aggregate.RestoreState(ctx, h.collaborators); err != nil {
		return err
	}

	if _, err := aggregate.Update(ctx, h.collaborators); err != nil {
		return err
	}

	if err := orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
