package queries

import (
	"context"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPartnerOrdersQueryHandler loads a partner's active orders from the
// database.
type GetPartnerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPartnerOrdersQueryHandler creates a handler for partner worklist
// queries. Requires a GORM database connection for query execution.
func NewGetPartnerOrdersQueryHandler(db *gorm.DB) GetPartnerOrdersQueryHandler {
	return GetPartnerOrdersQueryHandler{db: db}
}

// Handle executes the query. Terminal orders are excluded; the worklist only
// shows deliveries still in flight, oldest acceptance first.
func (h GetPartnerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPartnerOrdersQuery,
) ([]GetPartnerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPartnerOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_email,
			total,
			street,
			city,
			status,
			accepted_at
		FROM orders
		WHERE assigned_partner = ? AND status NOT IN (?, ?)
		ORDER BY accepted_at
	`, query.PartnerID().Bytes(),
		order.Delivered.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPartnerOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.CustomerEmail,
			&resp.Total,
			&resp.Street,
			&resp.City,
			&resp.Status,
			&resp.AcceptedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
