package commands

import (
	"context"
	"errors"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/services"
)

// ErrOrderCannotAdvance is returned when the checkout cannot move forward
// from its current state: the guard rejected the step or the order sits in a
// state the next event does not cover.
var ErrOrderCannotAdvance = errors.New("order cannot advance from its current state")

// AdvanceCheckoutCommandHandler moves orders along the checkout path. It
// records supplied addresses, picks the cheapest shipping method when the
// order reaches the delivery step without one, fires the next event, and
// persists the recomputed derived fields with the rest of the aggregate.
//
// A post-transition hook failure does not roll the step back: the transition
// and its side effects are committed and the hook error is returned wrapped
// in order.PostTransitionError for the caller to report.
type AdvanceCheckoutCommandHandler struct {
	uowFactory    UoWFactory
	collaborators order.Collaborators
}

// NewAdvanceCheckoutCommandHandler creates a handler for checkout advances.
// The collaborators carry the payment, tax, and inventory services the state
// machine hooks consult.
func NewAdvanceCheckoutCommandHandler(uowFactory UoWFactory, collaborators order.Collaborators) AdvanceCheckoutCommandHandler {
	return AdvanceCheckoutCommandHandler{
		uowFactory:    uowFactory,
		collaborators: collaborators,
	}
}

// Handle processes the advance command under the order's row lock.
func (h *AdvanceCheckoutCommandHandler) Handle(ctx context.Context, cmd AdvanceCheckoutCommand) error {
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

	if cmd.BillAddress() != nil && cmd.ShipAddress() != nil {
		if err := aggregate.SetAddresses(*cmd.BillAddress(), *cmd.ShipAddress()); err != nil {
			return err
		}
	}

	if aggregate.State() == order.StateDelivery && aggregate.ShippingMethod() == nil {
		if err := h.selectShippingMethod(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	fired, fireErr := aggregate.Next(ctx, h.collaborators)
	var postErr *order.PostTransitionError
	if fireErr != nil && !errors.As(fireErr, &postErr) {
		return fireErr
	}
	if !fired {
		return ErrOrderCannotAdvance
	}

	if _, err := aggregate.Update(ctx, h.collaborators); err != nil {
		return err
	}

	if err := orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	// The transition committed; surface the hook failure without undoing it.
	return fireErr
}

func (h *AdvanceCheckoutCommandHandler) selectShippingMethod(ctx context.Context, uow UoW, aggregate *order.Order) error {
	methods, err := uow.ShippingMethodRepository().GetAll(ctx)
	if err != nil {
		return err
	}

	_, err = services.NewRateSelector().Select(aggregate, methods)
	return err
}
