package queries

import (
	"errors"
	"time"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/pkg/guard"
)

var ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
	"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
)

// GetOrderSummaryQuery retrieves the durable state of one order: status,
// assignment and the per-status timeline. Together with the cached courier
// position it forms the tracking snapshot handed to late joiners.
type GetOrderSummaryQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderSummaryQuery creates a query for one order's summary.
func NewGetOrderSummaryQuery(orderID kernel.UUID) (GetOrderSummaryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderSummaryQuery{}, err
	}

	return GetOrderSummaryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderSummaryQueryIsNotConstructed if validation fails.
func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

// OrderID returns the order whose summary is requested.
func (q GetOrderSummaryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderSummaryQueryResponse is the durable state of one order.
// Timeline entries are nil for statuses the order has not reached.
type GetOrderSummaryQueryResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	CustomerEmail   string
	Total           float64
	Status          string
	AssignedPartner *kernel.UUID

	PlacedAt    *time.Time
	AcceptedAt  *time.Time
	PickedUpAt  *time.Time
	InTransitAt *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}
