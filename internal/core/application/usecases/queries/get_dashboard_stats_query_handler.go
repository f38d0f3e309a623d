package queries

import (
	"context"

	"quickdrop/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetDashboardStatsQueryHandler computes order counts in the database.
type GetDashboardStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetDashboardStatsQueryHandler creates a handler for dashboard
// statistics. Requires a GORM database connection for query execution.
func NewGetDashboardStatsQueryHandler(db *gorm.DB) GetDashboardStatsQueryHandler {
	return GetDashboardStatsQueryHandler{db: db}
}

// Handle executes the query. Counting happens entirely in the database in a
// single statement.
func (h GetDashboardStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardStatsQuery,
) (GetDashboardStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardStatsQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status IN (?, ?, ?)),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?)
		FROM orders
	`,
		order.Placed.String(),
		order.Accepted.String(), order.PickedUp.String(), order.InTransit.String(),
		order.Delivered.String(),
		order.Cancelled.String(),
	).Row()

	var resp GetDashboardStatsQueryResponse
	err := row.Scan(
		&resp.Total,
		&resp.Claimable,
		&resp.Active,
		&resp.Delivered,
		&resp.Cancelled,
	)
	if err != nil {
		return GetDashboardStatsQueryResponse{}, err
	}

	return resp, nil
}
