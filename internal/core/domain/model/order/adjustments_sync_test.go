package order_test

import (
	"testing"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_CreateTaxCharge(t *testing.T) {
	t.Run("should create exactly one charge for a matching rate", func(t *testing.T) {
		o := cartWithItem("10.00", 2)
		rate := newStubRate("Sales Tax 10%", "2.00")
		matcher := &stubMatcher{rate: rate}

		require.NoError(t, o.CreateTaxCharge(t.Context(), matcher))

		require.Len(t, o.Adjustments(), 1)
		adj := o.Adjustments()[0]
		assert.True(t, adj.IsTax())
		assert.True(t, adj.Mandatory())
		assert.Equal(t, "Sales Tax 10%", adj.Label())
		assert.True(t, adj.Amount().IsEqual(mustMoney("2.00")))
		assert.True(t, adj.OriginatedBy(rate))
	})

	t.Run("should not duplicate the charge on repeated invocation", func(t *testing.T) {
		o := cartWithItem("10.00", 2)
		matcher := &stubMatcher{rate: newStubRate("Sales Tax 10%", "2.00")}

		require.NoError(t, o.CreateTaxCharge(t.Context(), matcher))
		require.NoError(t, o.CreateTaxCharge(t.Context(), matcher))
		require.NoError(t, o.CreateTaxCharge(t.Context(), matcher))

		assert.Len(t, o.Adjustments(), 1)
	})

	t.Run("should refresh the amount when the owning rate changes value", func(t *testing.T) {
		o := cartWithItem("10.00", 2)
		rate := newStubRate("Sales Tax 10%", "2.00")
		matcher := &stubMatcher{rate: rate}
		require.NoError(t, o.CreateTaxCharge(t.Context(), matcher))

		rate.amount = mustMoney("3.00")
		require.NoError(t, o.CreateTaxCharge(t.Context(), matcher))

		require.Len(t, o.Adjustments(), 1)
		assert.True(t, o.TaxTotal().IsEqual(mustMoney("3.00")))
	})

	t.Run("should remove the charge when no rate matches", func(t *testing.T) {
		o := cartWithItem("10.00", 2)
		matcher := &stubMatcher{rate: newStubRate("Sales Tax 10%", "2.00")}
		require.NoError(t, o.CreateTaxCharge(t.Context(), matcher))

		require.NoError(t, o.CreateTaxCharge(t.Context(), &stubMatcher{}))

		assert.Empty(t, o.Adjustments())
		assert.True(t, o.TaxTotal().IsZero())
	})

	t.Run("should drop a stale charge first and recreate on the next pass", func(t *testing.T) {
		o := cartWithItem("10.00", 2)
		oldRate := newStubRate("Old Tax 5%", "1.00")
		require.NoError(t, o.CreateTaxCharge(t.Context(), &stubMatcher{rate: oldRate}))

		newRate := newStubRate("New Tax 10%", "2.00")
		matcher := &stubMatcher{rate: newRate}

		// First pass destroys the stale charge without creating the new one.
		require.NoError(t, o.CreateTaxCharge(t.Context(), matcher))
		assert.Empty(t, o.Adjustments())

		// Second pass creates the charge for the new rate.
		require.NoError(t, o.CreateTaxCharge(t.Context(), matcher))
		require.Len(t, o.Adjustments(), 1)
		assert.True(t, o.Adjustments()[0].OriginatedBy(newRate))
		assert.True(t, o.TaxTotal().IsEqual(mustMoney("2.00")))
	})

	t.Run("should leave ad-hoc adjustments alone", func(t *testing.T) {
		o := cartWithItem("10.00", 2)
		promo, err := order.NewAdjustment(kernel.NewUUID(), "Promo credit", mustMoney("-1.00"))
		require.NoError(t, err)
		require.NoError(t, o.AddAdjustment(promo))

		require.NoError(t, o.CreateTaxCharge(t.Context(), &stubMatcher{}))

		require.Len(t, o.Adjustments(), 1)
		assert.Equal(t, "Promo credit", o.Adjustments()[0].Label())
	})
}

func TestOrder_CreateShipment(t *testing.T) {
	t.Run("should be a no-op without a shipping method", func(t *testing.T) {
		o := cartWithItem("10.00", 1)

		require.NoError(t, o.CreateShipment())

		assert.Nil(t, o.Shipment())
		assert.Empty(t, o.Adjustments())
	})

	t.Run("should create the shipment and its charge", func(t *testing.T) {
		o := cartWithItem("10.00", 1)
		method := newStubMethod("Ground", "5.00")
		require.NoError(t, o.SetShippingMethod(method))

		require.NoError(t, o.CreateShipment())

		require.NotNil(t, o.Shipment())
		assert.Equal(t, order.ShipmentStatusPending, o.Shipment().Status())
		assert.True(t, o.Shipment().MethodID().IsEqual(method.OriginatorID()))
		require.Len(t, o.Adjustments(), 1)
		adj := o.Adjustments()[0]
		assert.True(t, adj.IsShipping())
		assert.Equal(t, "Ground", adj.Label())
		assert.True(t, adj.Amount().IsEqual(mustMoney("5.00")))
	})

	t.Run("should not duplicate the shipment on repeated invocation", func(t *testing.T) {
		o := cartWithItem("10.00", 1)
		require.NoError(t, o.SetShippingMethod(newStubMethod("Ground", "5.00")))

		require.NoError(t, o.CreateShipment())
		require.NoError(t, o.CreateShipment())

		assert.Len(t, o.Shipments(), 1)
		assert.Len(t, o.Adjustments(), 1)
	})

	t.Run("should re-point the existing shipment and charge at a new method", func(t *testing.T) {
		o := cartWithItem("10.00", 1)
		ground := newStubMethod("Ground", "5.00")
		require.NoError(t, o.SetShippingMethod(ground))
		require.NoError(t, o.CreateShipment())

		express := newStubMethod("Express", "12.00")
		require.NoError(t, o.SetShippingMethod(express))
		require.NoError(t, o.CreateShipment())

		require.Len(t, o.Shipments(), 1)
		assert.True(t, o.Shipment().MethodID().IsEqual(express.OriginatorID()))
		require.Len(t, o.Adjustments(), 1)
		adj := o.Adjustments()[0]
		assert.True(t, adj.OriginatedBy(express))
		assert.Equal(t, "Ground", adj.Label())
		assert.True(t, adj.Amount().IsEqual(mustMoney("12.00")))
	})

	t.Run("should reject an unavailable method", func(t *testing.T) {
		o := cartWithItem("10.00", 1)
		method := newStubMethod("Ground", "5.00")
		method.available = false

		err := o.SetShippingMethod(method)

		require.Error(t, err)
		assert.Nil(t, o.ShippingMethod())
	})
}
