package commands

import (
	"context"

	"commerce/internal/core/domain/model/order"
)

// ResumeOrderCommandHandler handles bringing canceled orders back. Unlike
// cancellation, resuming an order that does not qualify is reported as
// ErrOrderNotResumable so an operator sees the rejection.
type ResumeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewResumeOrderCommandHandler creates a handler for order resumption.
func NewResumeOrderCommandHandler(uowFactory OrderUoWFactory) ResumeOrderCommandHandler {
	return ResumeOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resume command under the order's row lock.
func (h *ResumeOrderCommandHandler) Handle(ctx context.Context, cmd ResumeOrderCommand) error {
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

	fired, err := aggregate.Resume(ctx, order.Collaborators{})
	if err != nil {
		return err
	}
	if !fired {
		return ErrOrderNotResumable
	}

	if _, err := aggregate.Update(ctx, order.Collaborators{}); err != nil {
		return err
	}

	if err := orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
