package commands

import (
	"context"
	"time"

	"quickdrop/internal/core/domain/events"
	"quickdrop/internal/core/domain/model/order"
	"quickdrop/internal/core/ports"
)

// ClaimOrderCommandHandler handles the race for an open order.
//
// The winner is decided by the storage layer: the aggregate's Claim is an
// advisory check on the loaded copy, and the conditional update re-evaluates
// "still placed, still unassigned" atomically on write. Losers get a
// ConflictError no matter how stale their loaded copy was; there is no
// read-check-write window.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	bus        ports.EventBus
}

// NewClaimOrderCommandHandler creates a handler for claim attempts.
func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory, bus ports.EventBus) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
	}
}

// Handle processes a claim attempt.
// On success the order moves to accepted with the partner assigned, and the
// win is fanned out: partners lose the order from their feed, the admin
// console and the owning customer learn who took it.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	now := time.Now()
	if err = aggregate.Claim(cmd.PartnerID(), now); err != nil {
		return err
	}

	if err = orderRepo.UpdateIf(ctx, aggregate, ports.ClaimPrecondition()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	acceptedAt, _ := aggregate.ReachedAt(order.Accepted)
	orderID := aggregate.ID().String()
	partnerID := cmd.PartnerID().String()

	h.bus.Publish(ports.TopicPartners, events.OrderRemoved{OrderID: orderID})
	h.bus.Publish(ports.TopicAdmin, events.OrderAssigned{
		OrderID:       orderID,
		PartnerID:     partnerID,
		CustomerEmail: aggregate.CustomerEmail(),
		AssignedAt:    acceptedAt,
	})
	h.bus.Publish(ports.TopicCustomer(aggregate.CustomerID()), events.OrderAccepted{
		OrderID:    orderID,
		PartnerID:  partnerID,
		AcceptedAt: acceptedAt,
	})
	h.bus.Publish(ports.TopicOrder(aggregate.ID()), events.StatusChanged{
		OrderID:   orderID,
		Status:    order.Accepted.String(),
		ChangedAt: acceptedAt,
	})

	return nil
}
