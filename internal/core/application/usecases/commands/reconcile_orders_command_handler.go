package commands

import (
	"context"

	"commerce/internal/core/domain/model/order"
)

// ReconcileOrdersCommandHandler recomputes derived fields for incomplete
// orders and persists each snapshot in a single write.
type ReconcileOrdersCommandHandler struct {
	uowFactory    OrderUoWFactory
	collaborators order.Collaborators
}

// NewReconcileOrdersCommandHandler creates a handler for periodic
// reconciliation.
func NewReconcileOrdersCommandHandler(uowFactory OrderUoWFactory, collaborators order.Collaborators) ReconcileOrdersCommandHandler {
	return ReconcileOrdersCommandHandler{
		uowFactory:    uowFactory,
		collaborators: collaborators,
	}
}

// Handle recomputes and saves derived fields for every incomplete order.
func (h *ReconcileOrdersCommandHandler) Handle(ctx context.Context, cmd ReconcileOrdersCommand) error {
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

	aggregates, err := orderRepo.FindIncomplete(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range aggregates {
		fields, updateErr := aggregate.Update(ctx, h.collaborators)
		if updateErr != nil {
			return updateErr
		}
		if saveErr := orderRepo.SaveDerivedFields(ctx, aggregate.ID(), fields); saveErr != nil {
			return saveErr
		}
	}

	return uow.Commit(ctx)
}
