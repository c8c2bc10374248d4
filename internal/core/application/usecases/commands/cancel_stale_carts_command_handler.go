package commands

import (
	"context"
)

// CancelStaleCartsCommandHandler expires abandoned carts. Expired carts are
// marked canceled with a cancel entry in their lifecycle log, so they drop
// out of the incomplete set.
type CancelStaleCartsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelStaleCartsCommandHandler creates a handler for cart expiry.
func NewCancelStaleCartsCommandHandler(uowFactory OrderUoWFactory) CancelStaleCartsCommandHandler {
	return CancelStaleCartsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle expires every cart idle past the command's age threshold.
func (h *CancelStaleCartsCommandHandler) Handle(ctx context.Context, cmd CancelStaleCartsCommand) error {
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

	carts, err := orderRepo.FindStaleCarts(ctx, cmd.MaxAgeHours())
	if err != nil {
		return err
	}

	for _, cart := range carts {
		if expireErr := cart.ExpireCart(); expireErr != nil {
			return expireErr
		}
		if updateErr := orderRepo.Update(ctx, cart); updateErr != nil {
			return updateErr
		}
	}

	return uow.Commit(ctx)
}
