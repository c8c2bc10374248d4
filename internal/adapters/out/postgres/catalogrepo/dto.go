// Package catalogrepo persists the store's reference data: shipping methods
// and tax rates. Both are small read-mostly catalogs maintained outside the
// order flow.
package catalogrepo

import (
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/shipping"
	"commerce/internal/core/domain/model/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingMethodDTO represents the database structure for shipping methods.
// Destination countries live in their own table; a method without country
// rows ships everywhere.
type ShippingMethodDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string

	Cost decimal.Decimal `gorm:"type:numeric"`

	Countries []ShippingMethodCountryDTO `gorm:"foreignKey:MethodID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipping methods.
func (ShippingMethodDTO) TableName() string {
	return "shipping_methods"
}

// ShippingMethodCountryDTO links a shipping method to one destination
// country it ships to.
type ShippingMethodCountryDTO struct {
	MethodID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Country  string    `gorm:"primaryKey"`
}

// TableName specifies the database table name for method countries.
func (ShippingMethodCountryDTO) TableName() string {
	return "shipping_method_countries"
}

// TaxRateDTO represents the database structure for tax rates.
type TaxRateDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Label string

	Percentage decimal.Decimal `gorm:"type:numeric"`
	Country    string          `gorm:"index"`
}

// TableName specifies the database table name for tax rates.
func (TaxRateDTO) TableName() string {
	return "tax_rates"
}

func methodFromDomain(method *shipping.Method) ShippingMethodDTO {
	dto := ShippingMethodDTO{
		ID:   method.ID().Bytes(),
		Name: method.Name(),
		Cost: method.Cost().Decimal(),
	}
	for _, country := range method.Countries() {
		dto.Countries = append(dto.Countries, ShippingMethodCountryDTO{
			MethodID: dto.ID,
			Country:  country,
		})
	}
	return dto
}

func methodToDomain(dto ShippingMethodDTO) (*shipping.Method, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	countries := make([]string, 0, len(dto.Countries))
	for _, c := range dto.Countries {
		countries = append(countries, c.Country)
	}

	return shipping.NewMethod(id, dto.Name, kernel.NewMoneyFromDecimal(dto.Cost), countries)
}

func rateFromDomain(rate *tax.Rate) TaxRateDTO {
	return TaxRateDTO{
		ID:         rate.ID().Bytes(),
		Label:      rate.Label(),
		Percentage: rate.Percentage(),
		Country:    rate.Country(),
	}
}

func rateToDomain(dto TaxRateDTO) (*tax.Rate, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return tax.NewRate(id, dto.Label, dto.Percentage, dto.Country)
}
