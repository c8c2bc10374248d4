package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order straight from the database,
// bypassing the aggregate. Returns errs.ErrObjectNotFound when neither
// lookup key matches.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup by ID or number.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	stmt := h.db.WithContext(ctx)
	if id := query.OrderID(); id != nil {
		stmt = stmt.Raw(orderSelect+" WHERE id = ?", id.String())
	} else {
		stmt = stmt.Raw(orderSelect+" WHERE number = ?", query.Number().String())
	}

	row := stmt.Row()

	response, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.ErrObjectNotFound
		}
		return GetOrderQueryResponse{}, err
	}

	lineItems, err := h.loadLineItems(ctx, response.ID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.LineItems = lineItems

	return response, nil
}

const orderSelect = `
	SELECT
		id,
		number,
		email,
		state,
		payment_state,
		shipment_state,
		item_total,
		adjustment_total,
		payment_total,
		total,
		completed_at
	FROM orders`

func scanOrderRow(row *sql.Row) (GetOrderQueryResponse, error) {
	var id uuid.UUID
	var number, email string
	var state, payState, shipState int
	var item, adjustment, pay, total decimal.Decimal
	var completedAt sql.NullTime

	err := row.Scan(
		&id, &number, &email,
		&state, &payState, &shipState,
		&item, &adjustment, &pay, &total,
		&completedAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	orderNumber, err := kernel.OrderNumberFromString(number)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var completed *time.Time
	if completedAt.Valid {
		completed = &completedAt.Time
	}

	return GetOrderQueryResponse{
		ID:              orderID,
		Number:          orderNumber,
		Email:           email,
		State:           order.State(state),
		PaymentState:    order.PaymentState(payState),
		ShipmentState:   order.ShipmentState(shipState),
		ItemTotal:       kernel.NewMoneyFromDecimal(item),
		AdjustmentTotal: kernel.NewMoneyFromDecimal(adjustment),
		PaymentTotal:    kernel.NewMoneyFromDecimal(pay),
		Total:           kernel.NewMoneyFromDecimal(total),
		CompletedAt:     completed,
	}, nil
}

func (h GetOrderQueryHandler) loadLineItems(ctx context.Context, orderID kernel.UUID) ([]GetOrderQueryLineItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			variant_id,
			price,
			quantity
		FROM line_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lineItems := make([]GetOrderQueryLineItem, 0)

	for rows.Next() {
		var (
			id, variantID uuid.UUID
			price         decimal.Decimal
			quantity      int
		)

		if err := rows.Scan(&id, &variantID, &price, &quantity); err != nil {
			return nil, err
		}

		lineItemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		variant, variantErr := kernel.UUIDFromBytes(variantID[:])
		if variantErr != nil {
			return nil, variantErr
		}

		lineItems = append(lineItems, GetOrderQueryLineItem{
			ID:        lineItemID,
			VariantID: variant,
			Price:     kernel.NewMoneyFromDecimal(price),
			Quantity:  quantity,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lineItems, nil
}
