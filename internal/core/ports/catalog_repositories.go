package ports

import (
	"context"

	"commerce/internal/core/domain/model/shipping"
	"commerce/internal/core/domain/model/tax"
)

// ShippingMethodRepository defines the read contract for the shipping method
// catalog. Methods are reference data maintained outside the order flow.
type ShippingMethodRepository interface {
	// GetAll retrieves every configured shipping method.
	GetAll(ctx context.Context) ([]*shipping.Method, error)
}

// TaxRateRepository defines the read contract for the tax rate catalog.
type TaxRateRepository interface {
	// GetAll retrieves every configured tax rate.
	GetAll(ctx context.Context) ([]*tax.Rate, error)
}
