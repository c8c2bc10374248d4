package services_test

import (
	"testing"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/model/tax"
	"commerce/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxSelector_Select(t *testing.T) {
	newOrder := func(t *testing.T, country string) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), "jane@example.com")
		require.NoError(t, err)
		if country != "" {
			addr, err := kernel.NewAddress("Jane", "Doe", "1 Main St", "Springfield", "IL", "62701", country)
			require.NoError(t, err)
			require.NoError(t, o.SetAddresses(addr, addr))
		}
		return o
	}

	newRate := func(t *testing.T, label, percentage, country string) *tax.Rate {
		t.Helper()
		pct, err := decimal.NewFromString(percentage)
		require.NoError(t, err)
		rate, err := tax.NewRate(kernel.NewUUID(), label, pct, country)
		require.NoError(t, err)
		return rate
	}

	t.Run("should select the rate covering the billing country", func(t *testing.T) {
		selector := services.NewTaxSelector()
		o := newOrder(t, "CA")
		us := newRate(t, "US Sales Tax", "0.05", "US")
		ca := newRate(t, "CA GST", "0.07", "CA")

		selected, err := selector.Select(o, []*tax.Rate{us, ca})

		require.NoError(t, err)
		require.NotNil(t, selected)
		assert.Equal(t, "CA GST", selected.Label())
	})

	t.Run("should follow the billing address when it differs from shipping", func(t *testing.T) {
		selector := services.NewTaxSelector()
		o, err := order.NewOrder(kernel.NewUUID(), "jane@example.com")
		require.NoError(t, err)
		bill, err := kernel.NewAddress("Jane", "Doe", "1 Main St", "Springfield", "IL", "62701", "US")
		require.NoError(t, err)
		ship, err := kernel.NewAddress("Jane", "Doe", "2 Rue de Lyon", "Paris", "", "75012", "FR")
		require.NoError(t, err)
		require.NoError(t, o.SetAddresses(bill, ship))
		us := newRate(t, "US Sales Tax", "0.05", "US")

		selected, err := selector.Select(o, []*tax.Rate{us})

		require.NoError(t, err)
		require.NotNil(t, selected)
		assert.Equal(t, "US Sales Tax", selected.Label())
	})

	t.Run("should return nil for an untaxed destination", func(t *testing.T) {
		selector := services.NewTaxSelector()
		o := newOrder(t, "GB")
		us := newRate(t, "US Sales Tax", "0.05", "US")

		selected, err := selector.Select(o, []*tax.Rate{us})

		require.NoError(t, err)
		assert.Nil(t, selected)
	})

	t.Run("should return nil before addresses are set", func(t *testing.T) {
		selector := services.NewTaxSelector()
		o := newOrder(t, "")
		us := newRate(t, "US Sales Tax", "0.05", "US")

		selected, err := selector.Select(o, []*tax.Rate{us})

		require.NoError(t, err)
		assert.Nil(t, selected)
	})
}
