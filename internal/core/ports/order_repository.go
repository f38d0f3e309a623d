package ports

import (
	"context"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/order"
)

// Precondition describes the stored state an order must still be in for a
// conditional update to apply. It is evaluated by the storage engine inside a
// single atomic statement, never as a separate read.
type Precondition struct {
	// Status the stored row must currently have.
	Status order.Status

	// RequireUnassigned demands that no partner is assigned yet. Exactly one
	// of RequireUnassigned and AssignedPartner is set.
	RequireUnassigned bool

	// AssignedPartner, when non-nil, demands that the stored row is assigned
	// to this exact partner.
	AssignedPartner *kernel.UUID
}

// ClaimPrecondition is the guard for winning an order: still claimable and
// nobody assigned.
func ClaimPrecondition() Precondition {
	return Precondition{
		Status:            order.Placed,
		RequireUnassigned: true,
	}
}

// OwnedPrecondition is the guard for progressing an order: it must still be
// in the status the caller observed and assigned to the acting partner.
func OwnedPrecondition(status order.Status, partnerID kernel.UUID) Precondition {
	return Precondition{
		Status:          status,
		AssignedPartner: &partnerID,
	}
}

// StatusPrecondition guards updates that only require the status to be
// unchanged, such as cancelling a still-unassigned order.
func StatusPrecondition(status order.Status) Precondition {
	return Precondition{Status: status}
}

// OrderRepository provides access to the Order aggregate store.
//
// All mutations of already-persisted orders go through UpdateIf so that
// concurrent writers race on the database's atomicity guarantees instead of
// on read-check-write sequences in application code.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get loads an order by ID. Returns an ObjectNotFoundError when no such
	// order exists.
	Get(ctx context.Context, orderID kernel.UUID) (*order.Order, error)

	// GetAllClaimable loads every order still open for a claim.
	GetAllClaimable(ctx context.Context) ([]*order.Order, error)

	// GetAllByPartner loads every order assigned to the given partner.
	GetAllByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error)

	// UpdateIf persists the aggregate's current state only if the stored row
	// still satisfies the precondition. When the row exists but the
	// precondition no longer holds it returns a ConflictError; when the row
	// does not exist it returns an ObjectNotFoundError.
	UpdateIf(ctx context.Context, aggregate *order.Order, expected Precondition) error
}
