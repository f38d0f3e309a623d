package commands_test

import (
	"context"
	"errors"
	"testing"

	"quickdrop/internal/core/application/usecases/commands"
	"quickdrop/internal/core/domain/events"
	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "jane@example.com", testItems(), 18.50, testAddress())
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	cmd := newCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	bus := new(MockEventBus)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	bus.On("Publish", ports.TopicPartners, mock.AnythingOfType("events.OrderAvailable")).Once()
	bus.On("Publish", ports.TopicAdmin, mock.AnythingOfType("events.OrderCreated")).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, bus)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	bus.AssertExpectations(t)
	factory.AssertExpectations(t)

	// The partners announcement carries the order identity and total.
	available := bus.Calls[0].Arguments[1].(events.OrderAvailable)
	assert.Equal(t, cmd.OrderID().String(), available.OrderID)
	assert.InDelta(t, 18.50, available.Total, 1e-9)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := context.Background()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	bus := new(MockEventBus)
	handler := commands.NewCreateOrderCommandHandler(factory, bus)

	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
	bus.AssertNotCalled(t, "Publish")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := context.Background()
	cmd := newCreateOrderCommand(t)

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	bus := new(MockEventBus)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, bus)
	err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	bus.AssertNotCalled(t, "Publish")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := context.Background()
	cmd := newCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	bus := new(MockEventBus)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Return(errors.New("insert error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, bus)
	err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "insert error")
	bus.AssertNotCalled(t, "Publish")
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := context.Background()
	cmd := newCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	bus := new(MockEventBus)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, bus)
	err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	bus.AssertNotCalled(t, "Publish")
}
