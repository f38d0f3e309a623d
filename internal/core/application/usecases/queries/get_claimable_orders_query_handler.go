package queries

import (
	"context"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetClaimableOrdersQueryHandler loads open orders from the database.
//
// The list is a snapshot: by the time a partner acts on it, any entry may
// already be taken. The claim path tolerates that; this handler makes no
// freshness promise beyond "open at read time".
type GetClaimableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetClaimableOrdersQueryHandler creates a handler for open-order queries.
// Requires a GORM database connection for query execution.
func NewGetClaimableOrdersQueryHandler(db *gorm.DB) GetClaimableOrdersQueryHandler {
	return GetClaimableOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted oldest first so long-waiting
// orders surface at the top of the feed.
func (h GetClaimableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetClaimableOrdersQuery,
) ([]GetClaimableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetClaimableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_email,
			total,
			street,
			city,
			placed_at
		FROM orders
		WHERE status = ? AND assigned_partner IS NULL
		ORDER BY placed_at
	`, order.Placed.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetClaimableOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.CustomerEmail,
			&resp.Total,
			&resp.Street,
			&resp.City,
			&resp.PlacedAt,
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
