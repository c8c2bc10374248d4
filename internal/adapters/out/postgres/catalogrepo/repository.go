package catalogrepo

import (
	"context"

	"commerce/internal/core/domain/model/shipping"
	"commerce/internal/core/domain/model/tax"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShippingMethodRepository implements ports.ShippingMethodRepository
// using GORM.
type GormShippingMethodRepository struct {
	db *gorm.DB
}

// NewGormShippingMethodRepository creates a new GORM shipping method
// repository.
func NewGormShippingMethodRepository(db *gorm.DB) *GormShippingMethodRepository {
	return &GormShippingMethodRepository{db: db}
}

// GetAll retrieves every configured shipping method with its destination
// countries, sorted by name.
func (r *GormShippingMethodRepository) GetAll(ctx context.Context) ([]*shipping.Method, error) {
	var dtos []ShippingMethodDTO
	err := r.db.WithContext(ctx).
		Preload("Countries").
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	methods := make([]*shipping.Method, 0, len(dtos))
	for _, dto := range dtos {
		method, mErr := methodToDomain(dto)
		if mErr != nil {
			return nil, mErr
		}
		methods = append(methods, method)
	}

	return methods, nil
}

// Upsert stores a shipping method, replacing an existing row with the same
// ID. Used by the composition root to seed the catalog.
func (r *GormShippingMethodRepository) Upsert(ctx context.Context, method *shipping.Method) error {
	dto := methodFromDomain(method)
	db := r.db.WithContext(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Omit("Countries").Create(&dto).Error
	if err != nil {
		return err
	}

	if err := db.Where("method_id = ?", dto.ID).Delete(&ShippingMethodCountryDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Countries) > 0 {
		if err := db.Create(&dto.Countries).Error; err != nil {
			return err
		}
	}

	return nil
}

// GormTaxRateRepository implements ports.TaxRateRepository using GORM.
type GormTaxRateRepository struct {
	db *gorm.DB
}

// NewGormTaxRateRepository creates a new GORM tax rate repository.
func NewGormTaxRateRepository(db *gorm.DB) *GormTaxRateRepository {
	return &GormTaxRateRepository{db: db}
}

// GetAll retrieves every configured tax rate, sorted by country.
func (r *GormTaxRateRepository) GetAll(ctx context.Context) ([]*tax.Rate, error) {
	var dtos []TaxRateDTO
	err := r.db.WithContext(ctx).
		Order("country").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	rates := make([]*tax.Rate, 0, len(dtos))
	for _, dto := range dtos {
		rate, rErr := rateToDomain(dto)
		if rErr != nil {
			return nil, rErr
		}
		rates = append(rates, rate)
	}

	return rates, nil
}

// Upsert stores a tax rate, replacing an existing row with the same ID.
// Used by the composition root to seed the catalog.
func (r *GormTaxRateRepository) Upsert(ctx context.Context, rate *tax.Rate) error {
	dto := rateFromDomain(rate)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&dto).Error
}
