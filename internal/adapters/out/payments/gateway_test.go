package payments_test

import (
	"testing"

	"commerce/internal/adapters/out/payments"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newPayment(t *testing.T, amount string) *order.Payment {
	t.Helper()
	p, err := order.NewPayment(kernel.NewUUID(), mustMoney(t, amount), "credit_card")
	require.NoError(t, err)
	return p
}

func TestGateway_Process(t *testing.T) {
	t.Run("should approve a payment within the limit", func(t *testing.T) {
		gateway := payments.NewGateway(mustMoney(t, "100.00"))

		err := gateway.Process(t.Context(), nil, newPayment(t, "100.00"))

		assert.NoError(t, err)
	})

	t.Run("should decline a payment over the limit", func(t *testing.T) {
		gateway := payments.NewGateway(mustMoney(t, "100.00"))

		err := gateway.Process(t.Context(), nil, newPayment(t, "100.01"))

		require.Error(t, err)
		var rangeErr *errs.ValueIsOutOfRangeError
		assert.ErrorAs(t, err, &rangeErr)
	})

	t.Run("should approve everything with a zero limit", func(t *testing.T) {
		gateway := payments.NewGateway(kernel.ZeroMoney())

		err := gateway.Process(t.Context(), nil, newPayment(t, "100000.00"))

		assert.NoError(t, err)
	})
}
