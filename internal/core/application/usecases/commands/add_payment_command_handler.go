package commands

import (
	"context"

	"commerce/internal/core/domain/model/order"
)

// AddPaymentCommandHandler handles attaching payments to orders. The payment
// is stored unsettled; settlement happens when checkout completes.
type AddPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddPaymentCommandHandler creates a handler for payment additions.
func NewAddPaymentCommandHandler(uowFactory OrderUoWFactory) AddPaymentCommandHandler {
	return AddPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add payment command under the order's row lock.
func (h *AddPaymentCommandHandler) Handle(ctx context.Context, cmd AddPaymentCommand) error {
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

	payment, err := order.NewPayment(cmd.PaymentID(), cmd.Amount(), cmd.Source())
	if err != nil {
		return err
	}
	if err := aggregate.AddPayment(payment); err != nil {
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
