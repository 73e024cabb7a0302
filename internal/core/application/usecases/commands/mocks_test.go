package commands_test

import (
	"context"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, notifications ...ports.Notification) {
	m.Called(ctx, notifications)
}

// Sent flattens every notification handed to the mock, in call order.
func (m *MockNotifier) Sent() []ports.Notification {
	var sent []ports.Notification
	for _, call := range m.Calls {
		sent = append(sent, call.Arguments.Get(1).([]ports.Notification)...)
	}
	return sent
}

// SentTo returns the kinds of the notifications addressed to one recipient.
func (m *MockNotifier) SentTo(recipient kernel.ActorID) []ports.NotificationKind {
	var kinds []ports.NotificationKind
	for _, n := range m.Sent() {
		if n.Recipient.IsEqual(recipient) {
			kinds = append(kinds, n.Kind)
		}
	}
	return kinds
}

type MockArchive struct{ mock.Mock }

func (m *MockArchive) ArchiveOrder(ctx context.Context, snapshot order.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockArchive) ArchiveFeedback(ctx context.Context, entry feedback.Feedback) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) NextNumber(ctx context.Context) (kernel.OrderNumber, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.OrderNumber), args.Error(1)
}

func (m *MockOrderRepository) AddDraft(ctx context.Context, draft *order.Order) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Activate(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Archive(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) RemoveDraft(ctx context.Context, number kernel.OrderNumber) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockOrderRepository) FindAwaitingInput(ctx context.Context, operator kernel.ActorID) (*order.Order, error) {
	args := m.Called(ctx, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListHistory(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
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
