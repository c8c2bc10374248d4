package queries

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetIncompleteOrdersQueryHandler retrieves in-progress orders from the
// database. Canceled and completed orders are filtered out to show the
// active checkout workload.
type GetIncompleteOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetIncompleteOrdersQueryHandler creates a handler for in-progress
// order queries.
func NewGetIncompleteOrdersQueryHandler(db *gorm.DB) GetIncompleteOrdersQueryHandler {
	return GetIncompleteOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by order ID for consistent
// output.
func (h GetIncompleteOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetIncompleteOrdersQuery,
) ([]GetIncompleteOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetIncompleteOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			state,
			total
		FROM orders
		WHERE completed_at IS NULL
		  AND state != ?
		ORDER BY id
	`, int(order.StateCanceled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var number string
		var state int
		var total decimal.Decimal

		if err := rows.Scan(&id, &number, &state, &total); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderNumber, numberErr := kernel.OrderNumberFromString(number)
		if numberErr != nil {
			return nil, numberErr
		}

		orders = append(orders, GetIncompleteOrdersQueryResponse{
			ID:     orderID,
			Number: orderNumber,
			State:  order.State(state),
			Total:  kernel.NewMoneyFromDecimal(total),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
