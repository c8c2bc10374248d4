// Package payments provides the payment gateway adapter used to settle
// payments when checkout completes. The current implementation settles
// in-process; a real acquirer integration would replace it behind the same
// interface.
package payments

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"
)

// Gateway implements order.PaymentProcessor. Payments up to the configured
// limit are approved; anything above it is declined, which aborts the
// completing transition.
type Gateway struct {
	limit kernel.Money
}

// NewGateway creates a gateway that approves payments up to limit. A zero
// limit disables the cap.
func NewGateway(limit kernel.Money) *Gateway {
	return &Gateway{limit: limit}
}

// Process settles one payment.
func (g *Gateway) Process(_ context.Context, _ *order.Order, payment *order.Payment) error {
	if !g.limit.IsZero() && payment.Amount().Cmp(g.limit) > 0 {
		return errs.NewValueIsOutOfRangeError(
			"amount", payment.Amount().String(), kernel.ZeroMoney().String(), g.limit.String(),
		)
	}
	return nil
}
