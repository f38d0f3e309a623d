package queries

import (
	"context"
	"database/sql"
	"errors"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderSummaryQueryHandler loads one order's durable state from the
// database.
type GetOrderSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderSummaryQueryHandler creates a handler for order summary queries.
// Requires a GORM database connection for query execution.
func NewGetOrderSummaryQueryHandler(db *gorm.DB) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when the order
// does not exist.
func (h GetOrderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSummaryQuery,
) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			customer_email,
			total,
			status,
			assigned_partner,
			placed_at,
			accepted_at,
			picked_up_at,
			in_transit_at,
			delivered_at,
			cancelled_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var resp GetOrderSummaryQueryResponse
	var id, customerID uuid.UUID
	var assignedPartner uuid.NullUUID

	err := row.Scan(
		&id,
		&customerID,
		&resp.CustomerEmail,
		&resp.Total,
		&resp.Status,
		&assignedPartner,
		&resp.PlacedAt,
		&resp.AcceptedAt,
		&resp.PickedUpAt,
		&resp.InTransitAt,
		&resp.DeliveredAt,
		&resp.CancelledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderSummaryQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	if assignedPartner.Valid {
		partnerID, idErr := kernel.UUIDFromBytes(assignedPartner.UUID[:])
		if idErr != nil {
			return GetOrderSummaryQueryResponse{}, idErr
		}
		resp.AssignedPartner = &partnerID
	}

	return resp, nil
}
