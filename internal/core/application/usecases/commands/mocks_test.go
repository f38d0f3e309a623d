package commands_test

import (
	"context"
	"testing"
	"time"

	"quickdrop/internal/core/application/usecases/commands"
	"quickdrop/internal/core/domain/events"
	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/order"
	"quickdrop/internal/core/domain/model/tracking"
	"quickdrop/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllClaimable(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateIf(ctx context.Context, o *order.Order, expected ports.Precondition) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEventBus struct{ mock.Mock }

func (m *MockEventBus) Publish(topic ports.Topic, event events.Event) {
	m.Called(topic, event)
}

func (m *MockEventBus) Subscribe(topic ports.Topic) ports.Subscription {
	args := m.Called(topic)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(ports.Subscription)
}

type MockLocationTracker struct{ mock.Mock }

func (m *MockLocationTracker) Record(sample tracking.LocationSample) {
	m.Called(sample)
}

func (m *MockLocationTracker) Evict(orderID kernel.UUID) {
	m.Called(orderID)
}

func testItems() []order.Item {
	return []order.Item{
		{ProductID: "sku-1", Name: "Margherita", Price: 12.50, Quantity: 1},
		{ProductID: "sku-2", Name: "Lemonade", Price: 3.00, Quantity: 2},
	}
}

func testAddress() order.Address {
	return order.Address{
		Street:  "742 Evergreen Terrace",
		City:    "Springfield",
		State:   "OR",
		ZipCode: "97477",
		Phone:   "+1-555-0100",
	}
}

func newPlacedOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(), customerID, "jane@example.com",
		testItems(), 18.50, testAddress(), time.Now())
	require.NoError(t, err)
	return o
}

func newClaimedOrder(t *testing.T, customerID, partnerID kernel.UUID) *order.Order {
	t.Helper()

	o := newPlacedOrder(t, customerID)
	require.NoError(t, o.Claim(partnerID, time.Now()))
	return o
}
