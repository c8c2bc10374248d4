package ports

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities and
// for persisting the recomputed derived fields in a single write.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The stored
	// version must match the aggregate's version or the update fails with
	// errs.VersionIsInvalidError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier with its
	// full child graph.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its order number.
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate holding a row lock until
	// the surrounding transaction ends. Concurrent mutators of the same
	// order serialize on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindIncomplete retrieves all orders that have not completed
	// checkout and are not canceled.
	FindIncomplete(ctx context.Context) ([]*order.Order, error)

	// FindStaleCarts retrieves carts untouched for longer than maxAge.
	FindStaleCarts(ctx context.Context, maxAgeHours int) ([]*order.Order, error)

	// ExistsByNumber reports whether an order with the number exists.
	// Used to retry order number generation on a collision.
	ExistsByNumber(ctx context.Context, number kernel.OrderNumber) (bool, error)

	// SaveDerivedFields persists the snapshot produced by the update
	// pipeline in one write, leaving every other column untouched.
	SaveDerivedFields(ctx context.Context, id kernel.UUID, fields order.DerivedFields) error
}
