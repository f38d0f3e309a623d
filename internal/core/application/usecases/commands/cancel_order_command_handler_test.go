package commands_test

import (
	"context"
	"testing"
	"time"

	"quickdrop/internal/core/application/usecases/commands"
	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/order"
	"quickdrop/internal/core/domain/model/principal"
	"quickdrop/internal/core/ports"
	"quickdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPrincipal(t *testing.T, id kernel.UUID, role principal.Role) principal.Principal {
	t.Helper()

	p, err := principal.NewPrincipal(id, role)
	require.NoError(t, err)
	return p
}

func TestCancelOrderCommandHandler_Handle_CustomerCancelsPlacedOrder(t *testing.T) {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	testOrder := newPlacedOrder(t, customerID)
	actor := newPrincipal(t, customerID, principal.RoleCustomer)

	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), actor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	bus := new(MockEventBus)
	tracker := new(MockLocationTracker)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("UpdateIf", ctx, mock.AnythingOfType("*order.Order"), ports.ClaimPrecondition()).
			Return(nil).
			Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	bus.On("Publish", ports.TopicOrder(testOrder.ID()), mock.AnythingOfType("events.StatusChanged")).Once()
	bus.On("Publish", ports.TopicCustomer(customerID), mock.AnythingOfType("events.StatusChanged")).Once()
	bus.On("Publish", ports.TopicAdmin, mock.AnythingOfType("events.StatusChanged")).Once()
	bus.On("Publish", ports.TopicPartners, mock.AnythingOfType("events.OrderRemoved")).Once()
	tracker.On("Evict", testOrder.ID()).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, bus, tracker)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	bus.AssertExpectations(t)
	tracker.AssertExpectations(t)
	assert.Equal(t, order.Cancelled, testOrder.Status())
}

func TestCancelOrderCommandHandler_Handle_AdminCancelsAcceptedOrder(t *testing.T) {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	partnerID := kernel.NewUUID()
	testOrder := newClaimedOrder(t, customerID, partnerID)
	actor := newPrincipal(t, kernel.NewUUID(), principal.RoleAdmin)

	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), actor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	bus := new(MockEventBus)
	tracker := new(MockLocationTracker)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("UpdateIf", ctx, mock.AnythingOfType("*order.Order"),
			ports.OwnedPrecondition(order.Accepted, partnerID)).
			Return(nil).
			Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	bus.On("Publish", mock.Anything, mock.AnythingOfType("events.StatusChanged")).Times(3)
	tracker.On("Evict", testOrder.ID()).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, bus, tracker)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	bus.AssertExpectations(t)

	// Not claimable anymore, so partners never saw it in the feed.
	bus.AssertNotCalled(t, "Publish", ports.TopicPartners, mock.AnythingOfType("events.OrderRemoved"))
}

func TestCancelOrderCommandHandler_Handle_StrangerCustomerIsForbidden(t *testing.T) {
	ctx := context.Background()

	testOrder := newPlacedOrder(t, kernel.NewUUID())
	actor := newPrincipal(t, kernel.NewUUID(), principal.RoleCustomer)

	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), actor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	bus := new(MockEventBus)
	tracker := new(MockLocationTracker)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, bus, tracker)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	orderRepo.AssertNotCalled(t, "UpdateIf")
	bus.AssertNotCalled(t, "Publish")
	assert.Equal(t, order.Placed, testOrder.Status())
}

func TestCancelOrderCommandHandler_Handle_PartnerIsForbidden(t *testing.T) {
	ctx := context.Background()

	partnerID := kernel.NewUUID()
	testOrder := newClaimedOrder(t, kernel.NewUUID(), partnerID)
	actor := newPrincipal(t, partnerID, principal.RolePartner)

	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), actor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	bus := new(MockEventBus)
	tracker := new(MockLocationTracker)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, bus, tracker)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestCancelOrderCommandHandler_Handle_TooLateToCancel(t *testing.T) {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	partnerID := kernel.NewUUID()
	testOrder := newClaimedOrder(t, customerID, partnerID)
	require.NoError(t, testOrder.AdvanceTo(partnerID, order.PickedUp, time.Now()))

	actor := newPrincipal(t, customerID, principal.RoleCustomer)
	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), actor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	bus := new(MockEventBus)
	tracker := new(MockLocationTracker)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, bus, tracker)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
	tracker.AssertNotCalled(t, "Evict")
	assert.Equal(t, order.PickedUp, testOrder.Status())
}
