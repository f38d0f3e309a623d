package commands

import (
	"context"
	"fmt"
	"time"

	"quickdrop/internal/core/domain/events"
	"quickdrop/internal/core/domain/model/order"
	"quickdrop/internal/core/ports"
	"quickdrop/internal/pkg/errs"
)

// CancelOrderCommandHandler handles order cancellation. Only the owning
// customer or an admin may cancel, and only while the order is placed or
// accepted; the aggregate rejects later stages.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	bus        ports.EventBus
	tracker    LocationTracker
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	bus ports.EventBus,
	tracker LocationTracker,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
		tracker:    tracker,
	}
}

// Handle processes a cancellation request.
// A cancelled order that was still claimable is also removed from the
// partners' feed so nobody claims a dead order.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	actor := cmd.Actor()
	if !actor.IsAdmin() && !(actor.IsCustomer() && actor.ID().IsEqual(aggregate.CustomerID())) {
		return errs.NewForbiddenErrorWithCause("actor",
			fmt.Errorf("%s may not cancel order %s", actor, aggregate.ID()))
	}

	observed := aggregate.Status()
	if err = aggregate.Cancel(time.Now()); err != nil {
		return err
	}

	expected := ports.StatusPrecondition(observed)
	if observed == order.Placed {
		expected = ports.ClaimPrecondition()
	} else if assigned := aggregate.AssignedPartner(); assigned != nil {
		expected = ports.OwnedPrecondition(observed, *assigned)
	}

	if err = orderRepo.UpdateIf(ctx, aggregate, expected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	cancelledAt, _ := aggregate.ReachedAt(order.Cancelled)
	changed := events.StatusChanged{
		OrderID:   aggregate.ID().String(),
		Status:    order.Cancelled.String(),
		ChangedAt: cancelledAt,
	}

	h.bus.Publish(ports.TopicOrder(aggregate.ID()), changed)
	h.bus.Publish(ports.TopicCustomer(aggregate.CustomerID()), changed)
	h.bus.Publish(ports.TopicAdmin, changed)
	if observed == order.Placed {
		h.bus.Publish(ports.TopicPartners, events.OrderRemoved{OrderID: aggregate.ID().String()})
	}

	h.tracker.Evict(aggregate.ID())

	return nil
}
