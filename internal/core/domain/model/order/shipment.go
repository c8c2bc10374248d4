package order

import (
	"errors"
	"fmt"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

// ShipmentStatus is the lifecycle state of one shipment. Fulfillment
// internals are not modeled in depth; the order consumes this as opaque
// state when deriving its own shipmentState.
type ShipmentStatus int

const (
	// ShipmentStatusUnknown represents an invalid or undefined status.
	ShipmentStatusUnknown ShipmentStatus = iota

	// ShipmentStatusPending means the shipment is waiting on payment.
	ShipmentStatusPending

	// ShipmentStatusReady means the shipment can be dispatched.
	ShipmentStatusReady

	// ShipmentStatusShipped means the shipment left the warehouse.
	// Shipped is final; the sync routine never demotes it.
	ShipmentStatusShipped
)

// String implements fmt.Stringer.
func (s ShipmentStatus) String() string {
	switch s {
	case ShipmentStatusPending:
		return "pending"
	case ShipmentStatusReady:
		return "ready"
	case ShipmentStatusShipped:
		return "shipped"
	default:
		return "unknown"
	}
}

// Validate checks the status is one of the declared values.
func (s ShipmentStatus) Validate() error {
	if s <= ShipmentStatusUnknown || s > ShipmentStatusShipped {
		return errs.NewValueIsInvalidErrorWithCause("shipment status",
			fmt.Errorf("%d is not a valid shipment status", int(s)))
	}
	return nil
}

// Shipment carries a subset of the order's inventory units under one
// shipping method. Single-shipment workflows use the order's Shipment()
// accessor, which picks the most recently created one.
type Shipment struct {
	id             kernel.UUID
	status         ShipmentStatus
	methodID       kernel.UUID
	inventoryUnits []*InventoryUnit
	createdAt      time.Time
}

// NewShipment creates a pending shipment for the given method and units.
func NewShipment(id kernel.UUID, method ShippingMethod, units []*InventoryUnit) (*Shipment, error) {
	if method == nil {
		return nil, errs.NewValueIsRequiredError("shipping method")
	}

	s := &Shipment{
		status:    ShipmentStatusPending,
		methodID:  method.OriginatorID(),
		createdAt: time.Now(),
	}

	if err := errors.Join(
		s.setID(id),
	); err != nil {
		return nil, err
	}

	s.AssignInventoryUnits(units)
	return s, nil
}

// RestoreShipment rehydrates a shipment from persistence.
func RestoreShipment(id, methodID kernel.UUID, status ShipmentStatus, units []*InventoryUnit, createdAt time.Time) (*Shipment, error) {
	s := &Shipment{
		methodID:       methodID,
		inventoryUnits: units,
		createdAt:      createdAt,
	}

	if err := errors.Join(
		s.setID(id),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	s.status = status

	return s, nil
}

// ID returns the shipment identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// Status returns the shipment lifecycle state.
func (s *Shipment) Status() ShipmentStatus { return s.status }

// MethodID returns the identity of the shipping method in use.
func (s *Shipment) MethodID() kernel.UUID { return s.methodID }

// CreatedAt returns the creation time, used to pick the current shipment.
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }

// InventoryUnits returns the units carried by this shipment.
func (s *Shipment) InventoryUnits() []*InventoryUnit {
	units := make([]*InventoryUnit, len(s.inventoryUnits))
	copy(units, s.inventoryUnits)
	return units
}

// SetMethod re-points the shipment at a different shipping method.
func (s *Shipment) SetMethod(method ShippingMethod) error {
	if method == nil {
		return errs.NewValueIsRequiredError("shipping method")
	}
	s.methodID = method.OriginatorID()
	return nil
}

// AssignInventoryUnits replaces the unit set and attaches each unit to this
// shipment.
func (s *Shipment) AssignInventoryUnits(units []*InventoryUnit) {
	s.inventoryUnits = make([]*InventoryUnit, 0, len(units))
	for _, iu := range units {
		_ = iu.AttachToShipment(s.id)
		s.inventoryUnits = append(s.inventoryUnits, iu)
	}
}

// Ready marks the shipment dispatchable.
func (s *Shipment) Ready() error {
	if s.status == ShipmentStatusShipped {
		return errs.NewValueIsInvalidErrorWithCause("shipment status",
			fmt.Errorf("%s cannot transition to ready", s.status))
	}
	s.status = ShipmentStatusReady
	return nil
}

// Ship marks the shipment as dispatched. Only ready shipments can ship.
func (s *Shipment) Ship() error {
	if s.status != ShipmentStatusReady {
		return errs.NewValueIsInvalidErrorWithCause("shipment status",
			fmt.Errorf("%s cannot transition to shipped", s.status))
	}
	s.status = ShipmentStatusShipped
	return nil
}

// Sync lets the shipment self-correct against the current order context
// during the update pipeline: a shipment becomes ready once the order is
// fully paid and falls back to pending otherwise. Shipped shipments are
// never touched.
func (s *Shipment) Sync(o *Order) {
	if s.status == ShipmentStatusShipped {
		return
	}
	if o.paymentTotal.Cmp(o.total) >= 0 && !o.total.IsZero() {
		s.status = ShipmentStatusReady
		return
	}
	s.status = ShipmentStatusPending
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}
