package commands

import (
	"errors"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a partner's attempt to win an open order.
// Many partners may race on the same order; at most one claim succeeds.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command for a partner to claim an order.
// Validates that both identifiers are valid.
func NewClaimOrderCommand(orderID kernel.UUID, partnerID kernel.UUID) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPartnerID(partnerID),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimOrderCommandIsNotConstructed if validation fails.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the claiming partner.
func (c ClaimOrderCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}
