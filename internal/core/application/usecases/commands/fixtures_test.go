package commands_test

import (
	"context"
	"testing"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/model/shipping"

	"github.com/stretchr/testify/require"
)

type settleAllProcessor struct{}

func (settleAllProcessor) Process(context.Context, *order.Order, *order.Payment) error {
	return nil
}

type soldUnitAllocator struct{}

func (soldUnitAllocator) Allocate(_ context.Context, o *order.Order) ([]*order.InventoryUnit, error) {
	var units []*order.InventoryUnit
	for _, li := range o.LineItems() {
		for range li.Quantity() {
			iu, err := order.NewInventoryUnit(kernel.NewUUID(), li.VariantID(), order.InventoryUnitStatusSold)
			if err != nil {
				return nil, err
			}
			units = append(units, iu)
		}
	}
	return units, nil
}

func checkoutCollaborators() order.Collaborators {
	return order.Collaborators{
		Payments:  settleAllProcessor{},
		Inventory: soldUnitAllocator{},
	}
}

func mustFire(t *testing.T, fire func() (bool, error)) {
	t.Helper()
	fired, err := fire()
	require.NoError(t, err)
	require.True(t, fired)
}

// completedTestOrder walks a two-item cart through the whole checkout. The
// resulting order is complete, fully paid and carries sold inventory units.
func completedTestOrder(t *testing.T, ctx context.Context) *order.Order {
	t.Helper()

	o := newCartWithItem(t)
	c := checkoutCollaborators()

	mustFire(t, func() (bool, error) { return o.Next(ctx, c) })
	require.NoError(t, o.SetAddresses(newTestAddress(t), newTestAddress(t)))
	mustFire(t, func() (bool, error) { return o.Next(ctx, c) })

	ground, err := shipping.NewMethod(kernel.NewUUID(), "Ground", mustMoney("5.00"), nil)
	require.NoError(t, err)
	require.NoError(t, o.SetShippingMethod(ground))
	mustFire(t, func() (bool, error) { return o.Next(ctx, c) })

	payment, err := order.NewPayment(kernel.NewUUID(), mustMoney("25.00"), "credit_card")
	require.NoError(t, err)
	require.NoError(t, o.AddPayment(payment))

	mustFire(t, func() (bool, error) { return o.Next(ctx, c) })
	mustFire(t, func() (bool, error) { return o.Next(ctx, c) })
	require.Equal(t, order.StateComplete, o.State())

	return o
}
