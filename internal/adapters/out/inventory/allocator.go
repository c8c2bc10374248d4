// Package inventory provides the stock allocator used by order finalization.
// The current model assumes unlimited on-hand stock: every line item unit is
// allocated as sold. A warehouse integration would mark units backordered
// when stock runs out.
package inventory

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

// Allocator implements order.InventoryAllocator.
type Allocator struct{}

// NewAllocator creates an Allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate creates one sold inventory unit per purchased line item unit.
func (a *Allocator) Allocate(_ context.Context, aggregate *order.Order) ([]*order.InventoryUnit, error) {
	var units []*order.InventoryUnit
	for _, li := range aggregate.LineItems() {
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
