package commands_test

import (
	"context"
	"testing"
	"time"

	"courierbot/internal/adapters/out/memory"
	"courierbot/internal/adapters/out/scheduler"
	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/domain/services"
	"courierbot/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	operator  = kernel.MustNewActorID("admin1")
	intruder  = kernel.MustNewActorID("admin2")
	driver42  = kernel.MustNewActorID("42")
	driver43  = kernel.MustNewActorID("43")
	customer7 = kernel.MustNewActorID("7")
)

const reminderDelay = 45 * time.Minute

// fixture wires the handlers over a real in-memory state, a deadline scheduler
// driven by a fake clock and mocked outbound collaborators.
type fixture struct {
	t   *testing.T
	ctx context.Context
	now time.Time

	state     *memory.State
	uows      *memory.UnitOfWorkFactory
	scheduler *scheduler.DeadlineScheduler
	reminders *scheduler.ReminderTimers
	notifier  *MockNotifier
	archive   *MockArchive

	createOrder  commands.CreateOrderCommandHandler
	requestInput commands.RequestInputCommandHandler
	editField    commands.EditFieldCommandHandler
	submitInput  commands.SubmitInputCommandHandler
	setPayment   commands.SetPaymentCommandHandler
	cancelDraft  commands.CancelDraftCommandHandler
	dispatch     commands.DispatchCommandHandler
	assignDriver commands.AssignDriverCommandHandler
	advance      *commands.DriverAdvanceCommandHandler
	connect      commands.DriverConnectCommandHandler
	disconnect   commands.DriverDisconnectCommandHandler
	feedback     commands.FeedbackCommandHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		t:        t,
		ctx:      t.Context(),
		now:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		state:    memory.NewState(memory.DefaultHistoryRetention),
		notifier: new(MockNotifier),
		archive:  new(MockArchive),
	}
	f.uows = memory.NewUnitOfWorkFactory(f.state)
	f.scheduler = scheduler.NewDeadlineScheduler(f.clock)
	f.reminders = scheduler.NewReminderTimers(f.scheduler)

	f.notifier.On("Notify", mock.Anything, mock.Anything).Return()
	f.archive.On("ArchiveOrder", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.archive.On("ArchiveFeedback", mock.Anything, mock.Anything).Return(nil).Maybe()

	var (
		orderUoWs    commands.OrderUoWFactory    = orderUoWFactory{f.uows}
		driverUoWs   commands.DriverUoWFactory   = driverUoWFactory{f.uows}
		feedbackUoWs commands.FeedbackUoWFactory = feedbackUoWFactory{f.uows}
		allUoWs      commands.UoWFactory         = uowFactory{f.uows}
		operators                                = []kernel.ActorID{operator}
		matcher                                  = services.NewAssignmentMatcher()
		logger                                   = zap.NewNop()
	)

	f.createOrder = commands.NewCreateOrderCommandHandler(orderUoWs, order.PaymentCash, f.clock)
	f.requestInput = commands.NewRequestInputCommandHandler(orderUoWs)
	f.editField = commands.NewEditFieldCommandHandler(orderUoWs)
	f.submitInput = commands.NewSubmitInputCommandHandler(orderUoWs)
	f.setPayment = commands.NewSetPaymentCommandHandler(orderUoWs)
	f.cancelDraft = commands.NewCancelDraftCommandHandler(orderUoWs)
	f.dispatch = commands.NewDispatchCommandHandler(allUoWs, matcher)
	f.assignDriver = commands.NewAssignDriverCommandHandler(allUoWs, matcher, f.notifier, f.clock)
	f.advance = commands.NewDriverAdvanceCommandHandler(
		allUoWs, f.notifier, f.reminders, f.archive, reminderDelay, logger, f.clock)
	f.connect = commands.NewDriverConnectCommandHandler(driverUoWs, f.notifier, operators, f.clock)
	f.disconnect = commands.NewDriverDisconnectCommandHandler(driverUoWs, f.notifier, operators, f.clock)
	f.feedback = commands.NewFeedbackCommandHandler(feedbackUoWs, f.notifier, f.archive, operators, logger, f.clock)

	return f
}

func (f *fixture) clock() time.Time {
	return f.now
}

// elapse moves the fake clock forward and fires every reminder that became due.
func (f *fixture) elapse(d time.Duration) int {
	f.now = f.now.Add(d)
	return f.scheduler.RunDue(f.now)
}

func (f *fixture) newDraft() kernel.OrderNumber {
	f.t.Helper()

	cmd, err := commands.NewCreateOrderCommand(operator)
	require.NoError(f.t, err)
	number, err := f.createOrder.Handle(f.ctx, cmd)
	require.NoError(f.t, err)
	return number
}

func (f *fixture) edit(number kernel.OrderNumber, field order.Field, value string) error {
	cmd, err := commands.NewEditFieldCommand(operator, number, field, value)
	require.NoError(f.t, err)
	return f.editField.Handle(f.ctx, cmd)
}

// readyDraft creates a draft with customer and location set.
func (f *fixture) readyDraft() kernel.OrderNumber {
	f.t.Helper()

	number := f.newDraft()
	require.NoError(f.t, f.edit(number, order.FieldCustomerID, customer7.String()))
	require.NoError(f.t, f.edit(number, order.FieldLocation, "12 Baker Street"))
	return number
}

func (f *fixture) connectDriver(id kernel.ActorID, name string) {
	f.t.Helper()

	info, err := driver.NewInfo(id, name)
	require.NoError(f.t, err)
	cmd, err := commands.NewDriverConnectCommand(info)
	require.NoError(f.t, err)
	_, err = f.connect.Handle(f.ctx, cmd)
	require.NoError(f.t, err)
}

func (f *fixture) assign(number kernel.OrderNumber, driverID kernel.ActorID) (order.Snapshot, error) {
	cmd, err := commands.NewAssignDriverCommand(operator, number, driverID)
	require.NoError(f.t, err)
	return f.assignDriver.Handle(f.ctx, cmd)
}

// activeOrder returns an order assigned to driver42.
func (f *fixture) activeOrder() kernel.OrderNumber {
	f.t.Helper()

	f.connectDriver(driver42, "Alice")
	number := f.readyDraft()
	_, err := f.assign(number, driver42)
	require.NoError(f.t, err)
	return number
}

func (f *fixture) advanceBy(
	driverID kernel.ActorID,
	number kernel.OrderNumber,
	transition order.Transition,
) (commands.AdvanceResult, error) {
	cmd, err := commands.NewDriverAdvanceCommand(driverID, number, transition)
	require.NoError(f.t, err)
	return f.advance.Handle(f.ctx, cmd)
}

// deliver walks an active order of driver42 to completion.
func (f *fixture) deliver(number kernel.OrderNumber) {
	f.t.Helper()

	for _, transition := range []order.Transition{
		order.TransitionPickup, order.TransitionArrive, order.TransitionComplete,
	} {
		_, err := f.advanceBy(driver42, number, transition)
		require.NoError(f.t, err)
	}
}

func (f *fixture) snapshot(number kernel.OrderNumber) order.Snapshot {
	f.t.Helper()

	uow := f.uows.Create()
	require.NoError(f.t, uow.Begin(f.ctx))
	defer func() { _ = uow.Rollback(f.ctx) }()

	o, err := uow.OrderRepository().Get(f.ctx, number)
	require.NoError(f.t, err)
	return o.Snapshot()
}

func (f *fixture) inspect(fn func(uow ports.UnitOfWork)) {
	f.t.Helper()

	uow := f.uows.Create()
	require.NoError(f.t, uow.Begin(f.ctx))
	defer func() { _ = uow.Rollback(f.ctx) }()
	fn(uow)
}

type orderUoWFactory struct{ uows *memory.UnitOfWorkFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uows.Create() }

type driverUoWFactory struct{ uows *memory.UnitOfWorkFactory }

func (f driverUoWFactory) Create() commands.DriverUoW { return f.uows.Create() }

type feedbackUoWFactory struct{ uows *memory.UnitOfWorkFactory }

func (f feedbackUoWFactory) Create() commands.FeedbackUoW { return f.uows.Create() }

type uowFactory struct{ uows *memory.UnitOfWorkFactory }

func (f uowFactory) Create() commands.UoW { return f.uows.Create() }
