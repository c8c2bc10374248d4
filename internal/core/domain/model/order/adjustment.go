package order

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

// Originator type discriminators, persisted alongside each adjustment so the
// synchronizer can find the charge it owns without loading the originator.
const (
	OriginatorTypeTaxRate        = "tax_rate"
	OriginatorTypeShippingMethod = "shipping_method"
)

// Originator is the source object responsible for an adjustment. The order
// core treats originators as behavior: it asks whether the charge still
// applies and what it is worth now, and compares identities to detect a stale
// charge left behind by an earlier originator.
type Originator interface {
	// OriginatorID is the stable identity of the source object.
	OriginatorID() kernel.UUID

	// OriginatorType is one of the OriginatorType* discriminators.
	OriginatorType() string

	// Applicable reports whether the charge should exist for this order.
	Applicable(o *Order) bool

	// ComputeAmount returns the current value of the charge.
	ComputeAmount(o *Order) kernel.Money
}

// TaxRate is the originator behind the order's tax charge. Concrete rates
// live in the tax package; the order core only needs identity, a label, and
// the compute hooks.
type TaxRate interface {
	Originator
	Label() string
}

// ShippingMethod is the originator behind the order's shipping charge.
// Concrete methods live in the shipping package.
type ShippingMethod interface {
	Originator
	Name() string
	Available(o *Order) bool
}

// Adjustment is a single named charge or credit applied to the order total.
// Tax and shipping adjustments are owned by the synchronization routines and
// carry an originator; ad-hoc adjustments (promotions, manual credits) have
// none and are left untouched by the sync.
//
// An adjustment loaded from persistence carries only its originator's
// identity. The behavior handle is re-bound by the update pipeline when the
// matching originator is supplied; until then the stored amount stands.
type Adjustment struct {
	id             kernel.UUID
	label          string
	amount         kernel.Money
	mandatory      bool
	originatorID   *kernel.UUID
	originatorType string
	originator     Originator
}

// NewAdjustment creates an ad-hoc adjustment with no originator.
func NewAdjustment(id kernel.UUID, label string, amount kernel.Money) (*Adjustment, error) {
	a := &Adjustment{
		label:  label,
		amount: amount,
	}

	if err := errors.Join(
		a.setID(id),
		a.setLabel(label),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// NewOriginatedAdjustment creates an adjustment owned by an originator, with
// the amount computed from the current order context. Originated adjustments
// are mandatory: they survive eligibility checks and are removed only by the
// synchronizer itself.
func NewOriginatedAdjustment(id kernel.UUID, label string, originator Originator, o *Order) (*Adjustment, error) {
	if originator == nil {
		return nil, errs.NewValueIsRequiredError("originator")
	}

	a, err := NewAdjustment(id, label, originator.ComputeAmount(o))
	if err != nil {
		return nil, err
	}

	originatorID := originator.OriginatorID()
	a.mandatory = true
	a.originatorID = &originatorID
	a.originatorType = originator.OriginatorType()
	a.originator = originator

	return a, nil
}

// RestoreAdjustment rehydrates an adjustment from persistence. The originator
// behavior handle stays nil until BindOriginator is called.
func RestoreAdjustment(id kernel.UUID, label string, amount kernel.Money, mandatory bool, originatorID *kernel.UUID, originatorType string) (*Adjustment, error) {
	a, err := NewAdjustment(id, label, amount)
	if err != nil {
		return nil, err
	}
	a.mandatory = mandatory
	a.originatorID = originatorID
	a.originatorType = originatorType
	return a, nil
}

// ID returns the adjustment identifier.
func (a *Adjustment) ID() kernel.UUID { return a.id }

// Label returns the human-readable description of the charge.
func (a *Adjustment) Label() string { return a.label }

// Amount returns the signed amount.
func (a *Adjustment) Amount() kernel.Money { return a.amount }

// Mandatory reports whether the adjustment survives eligibility checks.
func (a *Adjustment) Mandatory() bool { return a.mandatory }

// OriginatorID returns the identity of the owning originator, nil for ad-hoc
// adjustments.
func (a *Adjustment) OriginatorID() *kernel.UUID { return a.originatorID }

// OriginatorType returns the originator discriminator, empty for ad-hoc
// adjustments.
func (a *Adjustment) OriginatorType() string { return a.originatorType }

// IsTax reports whether this is the tax charge.
func (a *Adjustment) IsTax() bool {
	return a.originatorType == OriginatorTypeTaxRate
}

// IsShipping reports whether this is the shipping charge.
func (a *Adjustment) IsShipping() bool {
	return a.originatorType == OriginatorTypeShippingMethod
}

// OriginatedBy reports whether the given originator owns this adjustment.
func (a *Adjustment) OriginatedBy(originator Originator) bool {
	if a.originatorID == nil || originator == nil {
		return false
	}
	return a.originatorID.IsEqual(originator.OriginatorID()) &&
		a.originatorType == originator.OriginatorType()
}

// BindOriginator re-attaches the behavior handle after rehydration. Binding
// fails when the identities do not match.
func (a *Adjustment) BindOriginator(originator Originator) error {
	if originator == nil {
		return errs.NewValueIsRequiredError("originator")
	}
	if !a.OriginatedBy(originator) {
		return errs.NewValueIsInvalidError("originator")
	}
	a.originator = originator
	return nil
}

// RepointOriginator transfers ownership of the adjustment to a different
// originator and recomputes its amount. Used when the order's shipping
// method changes under an existing shipping charge.
func (a *Adjustment) RepointOriginator(originator Originator, o *Order) error {
	if originator == nil {
		return errs.NewValueIsRequiredError("originator")
	}
	originatorID := originator.OriginatorID()
	a.originatorID = &originatorID
	a.originatorType = originator.OriginatorType()
	a.originator = originator
	a.amount = originator.ComputeAmount(o)
	return nil
}

// Applicable reports whether the adjustment should survive the current update
// cycle. Mandatory adjustments always survive; an ad-hoc adjustment with a
// bound originator defers to it; an unbound ad-hoc adjustment keeps its
// stored amount.
func (a *Adjustment) Applicable(o *Order) bool {
	if a.mandatory {
		return true
	}
	if a.originator != nil {
		return a.originator.Applicable(o)
	}
	return true
}

// Refresh recomputes the amount from the bound originator. Without a bound
// originator the stored amount stands.
func (a *Adjustment) Refresh(o *Order) {
	if a.originator == nil {
		return
	}
	a.amount = a.originator.ComputeAmount(o)
}

func (a *Adjustment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Adjustment) setLabel(label string) error {
	if label == "" {
		return errs.NewValueIsRequiredError("label")
	}
	a.label = label
	return nil
}
