package orderrepo

import (
	"context"
	"errors"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM. Writes
// replace the aggregate's child rows wholesale inside the caller's
// transaction; the orders row itself carries an optimistic-lock version.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order aggregate and its child graph.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order aggregate. The orders row is updated only
// when its stored version matches the aggregate's; child rows are replaced.
// A version mismatch returns errs.VersionIsInvalidError.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"number":           dto.Number,
			"email":            dto.Email,
			"state":            dto.State,
			"payment_state":    dto.PaymentState,
			"shipment_state":   dto.ShipmentState,
			"item_total":       dto.ItemTotal,
			"adjustment_total": dto.AdjustmentTotal,
			"payment_total":    dto.PaymentTotal,
			"total":            dto.Total,
			"bill_first_name":  dto.BillAddress.FirstName,
			"bill_last_name":   dto.BillAddress.LastName,
			"bill_street":      dto.BillAddress.Street,
			"bill_city":        dto.BillAddress.City,
			"bill_region":      dto.BillAddress.Region,
			"bill_postal_code": dto.BillAddress.PostalCode,
			"bill_country":     dto.BillAddress.Country,
			"ship_first_name":  dto.ShipAddress.FirstName,
			"ship_last_name":   dto.ShipAddress.LastName,
			"ship_street":      dto.ShipAddress.Street,
			"ship_city":        dto.ShipAddress.City,
			"ship_region":      dto.ShipAddress.Region,
			"ship_postal_code": dto.ShipAddress.PostalCode,
			"ship_country":     dto.ShipAddress.Country,
			"completed_at":     dto.CompletedAt,
			"version":          aggregate.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError(aggregate.ID().String())
	}

	if err := r.replaceChildren(db, dto); err != nil {
		return err
	}

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// replaceChildren rewrites every child table for the order. Runs inside the
// caller's transaction, so a failure leaves the previous graph intact.
func (r *GormOrderRepository) replaceChildren(db *gorm.DB, dto OrderDTO) error {
	childTables := []any{
		&StateEventDTO{},
		&ReturnAuthorizationDTO{},
		&AdjustmentDTO{},
		&InventoryUnitDTO{},
		&ShipmentDTO{},
		&PaymentDTO{},
		&LineItemDTO{},
	}
	for _, table := range childTables {
		if err := db.Where("order_id = ?", dto.ID).Delete(table).Error; err != nil {
			return err
		}
	}

	if len(dto.LineItems) > 0 {
		if err := db.Create(&dto.LineItems).Error; err != nil {
			return err
		}
	}
	if len(dto.Payments) > 0 {
		if err := db.Create(&dto.Payments).Error; err != nil {
			return err
		}
	}
	if len(dto.Shipments) > 0 {
		if err := db.Create(&dto.Shipments).Error; err != nil {
			return err
		}
	}
	if len(dto.InventoryUnits) > 0 {
		if err := db.Create(&dto.InventoryUnits).Error; err != nil {
			return err
		}
	}
	if len(dto.Adjustments) > 0 {
		if err := db.Create(&dto.Adjustments).Error; err != nil {
			return err
		}
	}
	if len(dto.ReturnAuthorizations) > 0 {
		if err := db.Create(&dto.ReturnAuthorizations).Error; err != nil {
			return err
		}
	}
	if len(dto.StateEvents) > 0 {
		if err := db.Create(&dto.StateEvents).Error; err != nil {
			return err
		}
	}

	return nil
}

func withOrderGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("LineItems").
		Preload("Payments").
		Preload("Shipments").
		Preload("InventoryUnits").
		Preload("Adjustments").
		Preload("ReturnAuthorizations").
		Preload("ReturnAuthorizations.Units").
		Preload("StateEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("state_events.id")
		})
}

// Get retrieves an order by ID with its full child graph.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := withOrderGraph(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its customer-facing number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := withOrderGraph(r.db.WithContext(ctx)).First(&dto, "number = ?", number.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves an order by ID holding a FOR UPDATE row lock on
// the orders row until the surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := withOrderGraph(r.db.WithContext(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "orders"}}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindIncomplete retrieves all orders that have not completed checkout and
// are not canceled.
func (r *GormOrderRepository) FindIncomplete(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := withOrderGraph(r.db.WithContext(ctx)).
		Where("completed_at IS NULL AND state != ?", int(order.StateCanceled)).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// FindStaleCarts retrieves carts untouched for longer than maxAgeHours.
func (r *GormOrderRepository) FindStaleCarts(ctx context.Context, maxAgeHours int) ([]*order.Order, error) {
	cutoff := time.Now().Add(-time.Duration(maxAgeHours) * time.Hour)

	var dtos []OrderDTO
	err := withOrderGraph(r.db.WithContext(ctx)).
		Where("state = ? AND updated_at < ?", int(order.StateCart), cutoff).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// ExistsByNumber reports whether an order with the number exists.
func (r *GormOrderRepository) ExistsByNumber(ctx context.Context, number kernel.OrderNumber) (bool, error) {
	if err := number.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number = ?", number.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// SaveDerivedFields persists the update pipeline's snapshot in one write,
// leaving every other column untouched.
func (r *GormOrderRepository) SaveDerivedFields(ctx context.Context, id kernel.UUID, fields order.DerivedFields) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"payment_state":    int(fields.PaymentState),
			"shipment_state":   int(fields.ShipmentState),
			"item_total":       fields.ItemTotal.Decimal(),
			"adjustment_total": fields.AdjustmentTotal.Decimal(),
			"payment_total":    fields.PaymentTotal.Decimal(),
			"total":            fields.Total.Decimal(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
