package order

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

// InventoryUnitStatus is the allocation status of one unit of stock.
type InventoryUnitStatus int

const (
	// InventoryUnitStatusUnknown represents an invalid or undefined status.
	InventoryUnitStatusUnknown InventoryUnitStatus = iota

	// InventoryUnitStatusOnHand means the unit is allocated from stock.
	InventoryUnitStatusOnHand

	// InventoryUnitStatusBackordered means the unit was promised before
	// stock is physically available.
	InventoryUnitStatusBackordered

	// InventoryUnitStatusSold means the unit is sold and awaiting shipment.
	InventoryUnitStatusSold

	// InventoryUnitStatusShipped means the unit left the warehouse.
	InventoryUnitStatusShipped

	// InventoryUnitStatusReturned means the unit came back via a return.
	InventoryUnitStatusReturned
)

// String implements fmt.Stringer.
func (s InventoryUnitStatus) String() string {
	switch s {
	case InventoryUnitStatusOnHand:
		return "on_hand"
	case InventoryUnitStatusBackordered:
		return "backordered"
	case InventoryUnitStatusSold:
		return "sold"
	case InventoryUnitStatusShipped:
		return "shipped"
	case InventoryUnitStatusReturned:
		return "returned"
	default:
		return "unknown"
	}
}

// Validate checks the status is one of the declared values.
func (s InventoryUnitStatus) Validate() error {
	if s <= InventoryUnitStatusUnknown || s > InventoryUnitStatusReturned {
		return errs.NewValueIsInvalidErrorWithCause("inventory unit status",
			fmt.Errorf("%d is not a valid inventory unit status", int(s)))
	}
	return nil
}

// InventoryUnit is one allocated unit of stock for a variant, associated with
// the order directly and optionally with one of its shipments. Allocation
// internals (stock levels, locations) live outside this core.
type InventoryUnit struct {
	id         kernel.UUID
	variantID  kernel.UUID
	status     InventoryUnitStatus
	shipmentID *kernel.UUID
}

// NewInventoryUnit creates an inventory unit for a variant.
func NewInventoryUnit(id, variantID kernel.UUID, status InventoryUnitStatus) (*InventoryUnit, error) {
	iu := &InventoryUnit{}

	if err := errors.Join(
		iu.setID(id),
		iu.setVariantID(variantID),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	iu.status = status

	return iu, nil
}

// RestoreInventoryUnit rehydrates an inventory unit from persistence.
func RestoreInventoryUnit(id, variantID kernel.UUID, status InventoryUnitStatus, shipmentID *kernel.UUID) (*InventoryUnit, error) {
	iu, err := NewInventoryUnit(id, variantID, status)
	if err != nil {
		return nil, err
	}
	iu.shipmentID = shipmentID
	return iu, nil
}

// ID returns the unit identifier.
func (iu *InventoryUnit) ID() kernel.UUID { return iu.id }

// VariantID returns the variant this unit was allocated for.
func (iu *InventoryUnit) VariantID() kernel.UUID { return iu.variantID }

// Status returns the allocation status.
func (iu *InventoryUnit) Status() InventoryUnitStatus { return iu.status }

// ShipmentID returns the shipment the unit is attached to, nil if none.
func (iu *InventoryUnit) ShipmentID() *kernel.UUID { return iu.shipmentID }

// Backordered reports whether the unit was promised ahead of stock.
func (iu *InventoryUnit) Backordered() bool {
	return iu.status == InventoryUnitStatusBackordered
}

// MarkReturned records that the unit came back through the return flow.
func (iu *InventoryUnit) MarkReturned() error {
	if iu.status == InventoryUnitStatusReturned {
		return nil
	}
	if iu.status != InventoryUnitStatusSold && iu.status != InventoryUnitStatusShipped {
		return errs.NewValueIsInvalidErrorWithCause("inventory unit status",
			fmt.Errorf("%s cannot transition to returned", iu.status))
	}
	iu.status = InventoryUnitStatusReturned
	return nil
}

// AttachToShipment records which shipment carries this unit.
func (iu *InventoryUnit) AttachToShipment(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	iu.shipmentID = &shipmentID
	return nil
}

func (iu *InventoryUnit) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	iu.id = id
	return nil
}

func (iu *InventoryUnit) setVariantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	iu.variantID = id
	return nil
}
