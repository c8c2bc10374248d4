package order

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

// ReturnAuthorizationStatus is the lifecycle state of a return authorization.
type ReturnAuthorizationStatus int

const (
	// ReturnAuthorizationStatusUnknown represents an invalid or undefined
	// status.
	ReturnAuthorizationStatusUnknown ReturnAuthorizationStatus = iota

	// ReturnAuthorizationStatusAuthorized means the return was approved and
	// the customer may send items back.
	ReturnAuthorizationStatusAuthorized

	// ReturnAuthorizationStatusReceived means the returned items arrived.
	ReturnAuthorizationStatusReceived

	// ReturnAuthorizationStatusCanceled means the authorization was revoked.
	ReturnAuthorizationStatusCanceled
)

// String implements fmt.Stringer.
func (s ReturnAuthorizationStatus) String() string {
	switch s {
	case ReturnAuthorizationStatusAuthorized:
		return "authorized"
	case ReturnAuthorizationStatusReceived:
		return "received"
	case ReturnAuthorizationStatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Validate checks the status is one of the declared values.
func (s ReturnAuthorizationStatus) Validate() error {
	if s <= ReturnAuthorizationStatusUnknown || s > ReturnAuthorizationStatusCanceled {
		return errs.NewValueIsInvalidErrorWithCause("return authorization status",
			fmt.Errorf("%d is not a valid return authorization status", int(s)))
	}
	return nil
}

// NewRandomReturnAuthorizationNumber generates a human-facing authorization
// number of the form RA followed by nine digits.
func NewRandomReturnAuthorizationNumber() string {
	return fmt.Sprintf("RA%09d", rand.IntN(1_000_000_000))
}

// ReturnAuthorization approves a set of the order's inventory units for
// return. The order enters awaiting_return when one is granted and moves to
// returned once the items come back.
type ReturnAuthorization struct {
	id        kernel.UUID
	number    string
	status    ReturnAuthorizationStatus
	unitIDs   []kernel.UUID
	createdAt time.Time
}

// NewReturnAuthorization creates an authorized return for the given units.
func NewReturnAuthorization(id kernel.UUID, number string, unitIDs []kernel.UUID) (*ReturnAuthorization, error) {
	ra := &ReturnAuthorization{
		status:    ReturnAuthorizationStatusAuthorized,
		createdAt: time.Now(),
	}

	if err := errors.Join(
		ra.setID(id),
		ra.setNumber(number),
		ra.setUnitIDs(unitIDs),
	); err != nil {
		return nil, err
	}

	return ra, nil
}

// RestoreReturnAuthorization rehydrates a return authorization from
// persistence.
func RestoreReturnAuthorization(id kernel.UUID, number string, status ReturnAuthorizationStatus, unitIDs []kernel.UUID, createdAt time.Time) (*ReturnAuthorization, error) {
	ra, err := NewReturnAuthorization(id, number, unitIDs)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	ra.status = status
	ra.createdAt = createdAt
	return ra, nil
}

// ID returns the authorization identifier.
func (ra *ReturnAuthorization) ID() kernel.UUID { return ra.id }

// Number returns the human-facing authorization number.
func (ra *ReturnAuthorization) Number() string { return ra.number }

// Status returns the lifecycle state.
func (ra *ReturnAuthorization) Status() ReturnAuthorizationStatus { return ra.status }

// CreatedAt returns the creation time.
func (ra *ReturnAuthorization) CreatedAt() time.Time { return ra.createdAt }

// UnitIDs returns the inventory units covered by this authorization.
func (ra *ReturnAuthorization) UnitIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(ra.unitIDs))
	copy(ids, ra.unitIDs)
	return ids
}

// Authorized reports whether the return may still be used.
func (ra *ReturnAuthorization) Authorized() bool {
	return ra.status == ReturnAuthorizationStatusAuthorized
}

// MarkReceived records that the returned items arrived.
func (ra *ReturnAuthorization) MarkReceived() error {
	if ra.status != ReturnAuthorizationStatusAuthorized {
		return errs.NewValueIsInvalidErrorWithCause("return authorization status",
			fmt.Errorf("%s cannot transition to received", ra.status))
	}
	ra.status = ReturnAuthorizationStatusReceived
	return nil
}

// Cancel revokes the authorization before items arrive.
func (ra *ReturnAuthorization) Cancel() error {
	if ra.status != ReturnAuthorizationStatusAuthorized {
		return errs.NewValueIsInvalidErrorWithCause("return authorization status",
			fmt.Errorf("%s cannot transition to canceled", ra.status))
	}
	ra.status = ReturnAuthorizationStatusCanceled
	return nil
}

func (ra *ReturnAuthorization) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	ra.id = id
	return nil
}

func (ra *ReturnAuthorization) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	ra.number = number
	return nil
}

func (ra *ReturnAuthorization) setUnitIDs(unitIDs []kernel.UUID) error {
	if len(unitIDs) == 0 {
		return errs.NewValueIsRequiredError("unit IDs")
	}
	ra.unitIDs = make([]kernel.UUID, len(unitIDs))
	copy(ra.unitIDs, unitIDs)
	return nil
}
