package commands

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

// AuthorizeReturnCommandHandler opens the return flow. The order moves to
// awaiting_return and a return authorization covering its inventory units is
// attached when it has any.
type AuthorizeReturnCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAuthorizeReturnCommandHandler creates a handler for return approvals.
func NewAuthorizeReturnCommandHandler(uowFactory OrderUoWFactory) AuthorizeReturnCommandHandler {
	return AuthorizeReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the authorize return command under the order's row lock.
func (h *AuthorizeReturnCommandHandler) Handle(ctx context.Context, cmd AuthorizeReturnCommand) error {
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

	fired, err := aggregate.AuthorizeReturn(ctx, order.Collaborators{})
	if err != nil {
		return err
	}
	if !fired {
		return ErrReturnNotAllowed
	}

	if unitIDs := inventoryUnitIDs(aggregate); len(unitIDs) > 0 {
		authorization, err := order.NewReturnAuthorization(
			cmd.ReturnAuthorizationID(),
			order.NewRandomReturnAuthorizationNumber(),
			unitIDs,
		)
		if err != nil {
			return err
		}
		if err := aggregate.AddReturnAuthorization(authorization); err != nil {
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

func inventoryUnitIDs(aggregate *order.Order) []kernel.UUID {
	units := aggregate.InventoryUnits()
	ids := make([]kernel.UUID, 0, len(units))
	for _, iu := range units {
		ids = append(ids, iu.ID())
	}
	return ids
}
