package queries

import (
	"errors"
	"time"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/pkg/guard"
)

var ErrGetPartnerOrdersQueryIsNotConstructed = errors.New(
	"GetPartnerOrdersQuery must be created via NewGetPartnerOrdersQuery constructor",
)

// GetPartnerOrdersQuery retrieves the orders currently assigned to one
// partner that have not reached a terminal status. This is the partner's
// active worklist.
type GetPartnerOrdersQuery struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPartnerOrdersQuery creates a query for a partner's active orders.
func NewGetPartnerOrdersQuery(partnerID kernel.UUID) (GetPartnerOrdersQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetPartnerOrdersQuery{}, err
	}

	return GetPartnerOrdersQuery{
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPartnerOrdersQueryIsNotConstructed if validation fails.
func (q GetPartnerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPartnerOrdersQueryIsNotConstructed)
}

// PartnerID returns the partner whose worklist is requested.
func (q GetPartnerOrdersQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

// GetPartnerOrdersQueryResponse is one active order in a partner's worklist.
type GetPartnerOrdersQueryResponse struct {
	ID            kernel.UUID
	CustomerEmail string
	Total         float64
	Street        string
	City          string
	Status        string
	AcceptedAt    time.Time
}
