package commands

import (
	"context"

	"commerce/internal/core/domain/model/order"
)

// ReturnOrderCommandHandler completes the return flow: the order moves to
// returned, its open authorizations are marked received, and the returned
// inventory units change status accordingly.
type ReturnOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReturnOrderCommandHandler creates a handler for return completion.
func NewReturnOrderCommandHandler(uowFactory OrderUoWFactory) ReturnOrderCommandHandler {
	return ReturnOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the return command under the order's row lock.
// Returns ErrReturnNotAllowed when no return is awaiting.
func (h *ReturnOrderCommandHandler) Handle(ctx context.Context, cmd ReturnOrderCommand) error {
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

	fired, err := aggregate.Return(ctx, order.Collaborators{})
	if err != nil {
		return err
	}
	if !fired {
		return ErrReturnNotAllowed
	}

	for _, authorization := range aggregate.ReturnAuthorizations() {
		if !authorization.Authorized() {
			continue
		}
		if err := authorization.MarkReceived(); err != nil {
			return err
		}
	}

	for _, iu := range aggregate.InventoryUnits() {
		if iu.Status() != order.InventoryUnitStatusSold && iu.Status() != order.InventoryUnitStatusShipped {
			continue
		}
		if err := iu.MarkReturned(); err != nil {
			return err
		}
	}

	if _, err := aggregate.Update(ctx, order.Collaborators{}); err != nil {
		return err
	}

	if err := orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
