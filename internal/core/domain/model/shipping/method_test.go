package shipping_test

import (
	"testing"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/model/shipping"
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

func orderShippingTo(t *testing.T, country string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "jane@example.com")
	require.NoError(t, err)
	addr, err := kernel.NewAddress("Jane", "Doe", "1 Main St", "Springfield", "IL", "62701", country)
	require.NoError(t, err)
	require.NoError(t, o.SetAddresses(addr, addr))
	return o
}

func TestNewMethod(t *testing.T) {
	t.Run("should create a valid method", func(t *testing.T) {
		id := kernel.NewUUID()

		m, err := shipping.NewMethod(id, "Ground", mustMoney(t, "5.00"), []string{"US", "CA"})

		require.NoError(t, err)
		assert.True(t, m.ID().IsEqual(id))
		assert.Equal(t, "Ground", m.Name())
		assert.Equal(t, "5.00", m.Cost().String())
		assert.Equal(t, order.OriginatorTypeShippingMethod, m.OriginatorType())
	})

	t.Run("should require a name", func(t *testing.T) {
		m, err := shipping.NewMethod(kernel.NewUUID(), "", mustMoney(t, "5.00"), nil)

		require.Error(t, err)
		assert.Nil(t, m)
	})

	t.Run("should reject a negative cost", func(t *testing.T) {
		m, err := shipping.NewMethod(kernel.NewUUID(), "Ground", mustMoney(t, "-5.00"), nil)

		require.Error(t, err)
		var invalidErr *errs.ValueIsInvalidError
		assert.ErrorAs(t, err, &invalidErr)
		assert.Nil(t, m)
	})
}

func TestMethod_Countries(t *testing.T) {
	t.Run("should return the countries sorted", func(t *testing.T) {
		m, err := shipping.NewMethod(kernel.NewUUID(), "Express", mustMoney(t, "12.00"), []string{"US", "DE", "CA"})
		require.NoError(t, err)

		assert.Equal(t, []string{"CA", "DE", "US"}, m.Countries())
	})

	t.Run("should be empty for a worldwide method", func(t *testing.T) {
		m, err := shipping.NewMethod(kernel.NewUUID(), "Ground", mustMoney(t, "5.00"), nil)
		require.NoError(t, err)

		assert.Empty(t, m.Countries())
	})
}

func TestMethod_Available(t *testing.T) {
	t.Run("should ship to a covered country", func(t *testing.T) {
		m, err := shipping.NewMethod(kernel.NewUUID(), "Ground", mustMoney(t, "5.00"), []string{"US", "CA"})
		require.NoError(t, err)

		assert.True(t, m.Available(orderShippingTo(t, "US")))
	})

	t.Run("should not ship to an uncovered country", func(t *testing.T) {
		m, err := shipping.NewMethod(kernel.NewUUID(), "Ground", mustMoney(t, "5.00"), []string{"US", "CA"})
		require.NoError(t, err)

		assert.False(t, m.Available(orderShippingTo(t, "DE")))
	})

	t.Run("should ship everywhere without a country list", func(t *testing.T) {
		m, err := shipping.NewMethod(kernel.NewUUID(), "Ground", mustMoney(t, "5.00"), nil)
		require.NoError(t, err)

		assert.True(t, m.Available(orderShippingTo(t, "JP")))
	})

	t.Run("should stay selectable before the address is known", func(t *testing.T) {
		m, err := shipping.NewMethod(kernel.NewUUID(), "Ground", mustMoney(t, "5.00"), []string{"US"})
		require.NoError(t, err)
		o, err := order.NewOrder(kernel.NewUUID(), "jane@example.com")
		require.NoError(t, err)

		assert.True(t, m.Available(o))
	})
}

func TestMethod_ComputeAmount(t *testing.T) {
	m, err := shipping.NewMethod(kernel.NewUUID(), "Ground", mustMoney(t, "5.00"), nil)
	require.NoError(t, err)

	o := orderShippingTo(t, "US")

	assert.Equal(t, "5.00", m.ComputeAmount(o).String())
	assert.True(t, m.Applicable(o))
}
