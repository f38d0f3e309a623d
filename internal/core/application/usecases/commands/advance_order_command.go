package commands

import (
	"errors"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/order"
	"quickdrop/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand represents the assigned partner moving an order along
// its lifecycle (picked_up, in_transit, delivered).
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID
	requested order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order's status.
// Validates the identifiers and that the requested status is a defined one;
// whether the transition is legal from the current status is decided by the
// aggregate when the command is handled.
func NewAdvanceOrderCommand(
	orderID kernel.UUID,
	partnerID kernel.UUID,
	requested order.Status,
) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPartnerID(partnerID),
		cmd.setRequested(requested),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceOrderCommandIsNotConstructed if validation fails.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the order being advanced.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the acting partner.
func (c AdvanceOrderCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Requested returns the target status.
func (c AdvanceOrderCommand) Requested() order.Status {
	return c.requested
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *AdvanceOrderCommand) setRequested(requested order.Status) error {
	if err := requested.Validate(); err != nil {
		return err
	}

	c.requested = requested
	return nil
}
