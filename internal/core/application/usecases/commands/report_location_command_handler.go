package commands

import (
	"context"
	"fmt"
	"time"

	"quickdrop/internal/core/domain/events"
	"quickdrop/internal/core/domain/model/tracking"
	"quickdrop/internal/core/ports"
	"quickdrop/internal/pkg/errs"
)

// ReportLocationCommandHandler handles courier position reports.
//
// A report never touches the order row. It is accepted only from the assigned
// partner of a live order, cached as the order's last-known position and
// fanned out to the order's watchers. Reports for finished orders are
// rejected so the cache cannot be repopulated after eviction.
type ReportLocationCommandHandler struct {
	uowFactory OrderUoWFactory
	bus        ports.EventBus
	tracker    LocationTracker
}

// NewReportLocationCommandHandler creates a handler for position reports.
func NewReportLocationCommandHandler(
	uowFactory OrderUoWFactory,
	bus ports.EventBus,
	tracker LocationTracker,
) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
		tracker:    tracker,
	}
}

// Handle processes a position report.
func (h *ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	assigned := aggregate.AssignedPartner()
	if assigned == nil || !assigned.IsEqual(cmd.PartnerID()) {
		return errs.NewForbiddenErrorWithCause("partnerId",
			fmt.Errorf("partner %s is not assigned to order %s", cmd.PartnerID(), aggregate.ID()))
	}
	if aggregate.IsTerminal() {
		return errs.NewForbiddenErrorWithCause("orderId",
			fmt.Errorf("order %s is %s and no longer tracked", aggregate.ID(), aggregate.Status()))
	}

	sample, err := tracking.NewLocationSample(
		cmd.OrderID(), cmd.Lat(), cmd.Lng(), aggregate.Status(), time.Now())
	if err != nil {
		return err
	}

	h.tracker.Record(sample)

	update := events.LocationUpdate{
		OrderID:    sample.OrderID().String(),
		Lat:        sample.Lat(),
		Lng:        sample.Lng(),
		Status:     sample.Status().String(),
		ObservedAt: sample.ObservedAt(),
	}
	h.bus.Publish(ports.TopicOrder(aggregate.ID()), update)
	h.bus.Publish(ports.TopicCustomer(aggregate.CustomerID()), update)

	return nil
}
