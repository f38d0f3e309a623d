package commands

import (
	"errors"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand represents a courier position report for an order.
// Coordinate bounds are validated later, when the tracking sample is built.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID
	lat       float64
	lng       float64

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a command to report a courier position.
func NewReportLocationCommand(
	orderID kernel.UUID,
	partnerID kernel.UUID,
	lat float64,
	lng float64,
) (ReportLocationCommand, error) {
	cmd := ReportLocationCommand{
		lat:   lat,
		lng:   lng,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPartnerID(partnerID),
	); err != nil {
		return ReportLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReportLocationCommandIsNotConstructed if validation fails.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// OrderID returns the order the position belongs to.
func (c ReportLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the reporting partner.
func (c ReportLocationCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Lat returns the reported latitude.
func (c ReportLocationCommand) Lat() float64 {
	return c.lat
}

// Lng returns the reported longitude.
func (c ReportLocationCommand) Lng() float64 {
	return c.lng
}

func (c *ReportLocationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReportLocationCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}
