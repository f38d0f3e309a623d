package queries

import (
	"errors"

	"quickdrop/internal/pkg/guard"
)

var ErrGetDashboardStatsQueryIsNotConstructed = errors.New(
	"GetDashboardStatsQuery must be created via NewGetDashboardStatsQuery constructor",
)

// GetDashboardStatsQuery retrieves order counts by lifecycle stage for the
// admin console. Served on demand over HTTP and broadcast periodically to
// the admin topic.
type GetDashboardStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDashboardStatsQuery creates a query for dashboard statistics.
// This is a parameterless query.
func NewGetDashboardStatsQuery() GetDashboardStatsQuery {
	return GetDashboardStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDashboardStatsQueryIsNotConstructed if validation fails.
func (q GetDashboardStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardStatsQueryIsNotConstructed)
}

// GetDashboardStatsQueryResponse holds order counts by lifecycle stage.
// Active covers accepted, picked_up and in_transit.
type GetDashboardStatsQueryResponse struct {
	Total     int64
	Claimable int64
	Active    int64
	Delivered int64
	Cancelled int64
}
