package commands

import (
	"context"
	"time"

	"quickdrop/internal/core/domain/events"
	"quickdrop/internal/core/ports"
)

// AdvanceOrderCommandHandler handles lifecycle progression by the assigned
// partner. The aggregate enforces ownership and the transition table; the
// conditional update pins the transition to the status the partner observed,
// so two concurrent advances cannot both apply.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	bus        ports.EventBus
	tracker    LocationTracker
}

// NewAdvanceOrderCommandHandler creates a handler for status progression.
func NewAdvanceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	bus ports.EventBus,
	tracker LocationTracker,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
		tracker:    tracker,
	}
}

// Handle processes a status advancement.
// On success the transition is fanned out to the order's watchers, the owning
// customer and the admin console. Reaching a terminal status also drops the
// order's cached courier position.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
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

	observed := aggregate.Status()
	now := time.Now()
	if err = aggregate.AdvanceTo(cmd.PartnerID(), cmd.Requested(), now); err != nil {
		return err
	}

	if err = orderRepo.UpdateIf(ctx, aggregate, ports.OwnedPrecondition(observed, cmd.PartnerID())); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	changedAt, _ := aggregate.ReachedAt(aggregate.Status())
	changed := events.StatusChanged{
		OrderID:   aggregate.ID().String(),
		Status:    aggregate.Status().String(),
		ChangedAt: changedAt,
	}

	h.bus.Publish(ports.TopicOrder(aggregate.ID()), changed)
	h.bus.Publish(ports.TopicCustomer(aggregate.CustomerID()), changed)
	h.bus.Publish(ports.TopicAdmin, changed)

	if aggregate.IsTerminal() {
		h.tracker.Evict(aggregate.ID())
	}

	return nil
}
