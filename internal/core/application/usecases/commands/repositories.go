// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence and post-commit notification.
package commands

import (
	"context"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/tracking"
	"quickdrop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// LocationTracker is the slice of the live-status tracker that command
// handlers touch: recording fresh courier positions and dropping the cached
// position once an order reaches a terminal status.
type LocationTracker interface {
	Record(sample tracking.LocationSample)
	Evict(orderID kernel.UUID)
}
