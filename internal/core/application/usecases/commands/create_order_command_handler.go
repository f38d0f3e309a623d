package commands

import (
	"context"
	"time"

	"quickdrop/internal/core/domain/events"
	"quickdrop/internal/core/domain/model/order"
	"quickdrop/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for placing orders.
// Persists the new order in "placed" status and announces it to connected
// partners and the admin console.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	bus        ports.EventBus
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence and an EventBus
// for post-commit notifications.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, bus ports.EventBus) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
	}
}

// Handle processes the order placement command.
// Creates the order in "placed" status inside a transaction; events are
// published only after the commit succeeds, so subscribers never see an order
// that was rolled back.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.CustomerEmail(),
		cmd.Items(),
		cmd.Total(),
		cmd.DeliveryAddress(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	placedAt, _ := aggregate.ReachedAt(order.Placed)

	h.bus.Publish(ports.TopicPartners, events.OrderAvailable{
		OrderID:       aggregate.ID().String(),
		CustomerEmail: aggregate.CustomerEmail(),
		Total:         aggregate.Total(),
		Street:        aggregate.DeliveryAddress().Street,
		City:          aggregate.DeliveryAddress().City,
		PlacedAt:      placedAt,
	})
	h.bus.Publish(ports.TopicAdmin, events.OrderCreated{
		OrderID:       aggregate.ID().String(),
		CustomerEmail: aggregate.CustomerEmail(),
		Total:         aggregate.Total(),
		PlacedAt:      placedAt,
	})

	return nil
}
