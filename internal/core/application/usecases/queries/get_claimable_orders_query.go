// Package queries contains read-only operations in the CQRS architecture.
// Query handlers go straight to the database with raw SQL, bypassing the
// aggregate and unit-of-work machinery that write operations use.
package queries

import (
	"errors"
	"time"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/pkg/guard"
)

var ErrGetClaimableOrdersQueryIsNotConstructed = errors.New(
	"GetClaimableOrdersQuery must be created via NewGetClaimableOrdersQuery constructor",
)

// GetClaimableOrdersQuery retrieves every order still open for a claim.
// This backs the partners' order feed: the list a partner sees when they
// connect, kept current afterwards by order_available/order_removed events.
//
// Example:
//
//	query := NewGetClaimableOrdersQuery()
//	handler := NewGetClaimableOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load open orders: %w", err)
//	}
//	fmt.Printf("%d orders waiting for a courier\n", len(orders))
type GetClaimableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetClaimableOrdersQuery creates a query to retrieve open orders.
// This is a parameterless query.
func NewGetClaimableOrdersQuery() GetClaimableOrdersQuery {
	return GetClaimableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetClaimableOrdersQueryIsNotConstructed if validation fails.
func (q GetClaimableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetClaimableOrdersQueryIsNotConstructed)
}

// GetClaimableOrdersQueryResponse is one open order as shown in the
// partners' feed.
type GetClaimableOrdersQueryResponse struct {
	ID            kernel.UUID
	CustomerEmail string
	Total         float64
	Street        string
	City          string
	PlacedAt      time.Time
}
