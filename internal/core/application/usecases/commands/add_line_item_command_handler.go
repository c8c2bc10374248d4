package commands

import (
	"context"

	"commerce/internal/core/domain/model/order"
)

// AddLineItemCommandHandler handles adding items to an open cart. After the
// mutation the derived fields are recomputed before the order is persisted,
// so the stored totals always match the stored children.
type AddLineItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddLineItemCommandHandler creates a handler for cart item additions.
func NewAddLineItemCommandHandler(uowFactory OrderUoWFactory) AddLineItemCommandHandler {
	return AddLineItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add item command. The order row is locked for the
// duration of the transaction so concurrent cart mutations serialize.
func (h *AddLineItemCommandHandler) Handle(ctx context.Context, cmd AddLineItemCommand) error {
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

	if err := aggregate.AddItem(cmd.LineItemID(), cmd.VariantID(), cmd.Price(), cmd.Quantity()); err != nil {
		return err
	}

	if _, err := aggregate.Update(ctx, order.Collaborators{}); err != nil {
		return err
	}

	if err := orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
