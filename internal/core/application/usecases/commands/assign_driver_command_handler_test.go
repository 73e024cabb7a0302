package commands_test

import (
	"testing"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/domain/services"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchCommandHandler_ListsCandidatesWithoutChangingState(t *testing.T) {
	f := newFixture(t)
	f.connectDriver(driver43, "Bob")
	f.connectDriver(driver42, "Alice")
	number := f.readyDraft()

	cmd, err := commands.NewDispatchCommand(operator, number)
	require.NoError(t, err)
	candidates, err := f.dispatch.Handle(f.ctx, cmd)
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, driver42, candidates[0].ID())
	assert.Equal(t, "Alice", candidates[0].DisplayName())
	assert.Equal(t, driver43, candidates[1].ID())
	assert.Equal(t, order.Created, f.snapshot(number).Status)
}

func TestDispatchCommandHandler_GuardOrder(t *testing.T) {
	f := newFixture(t)
	number := f.newDraft()

	byIntruder, _ := commands.NewDispatchCommand(intruder, number)
	_, err := f.dispatch.Handle(f.ctx, byIntruder)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)

	cmd, _ := commands.NewDispatchCommand(operator, number)
	_, err = f.dispatch.Handle(f.ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "customerId")
	assert.Contains(t, err.Error(), "location")

	require.NoError(t, f.edit(number, order.FieldCustomerID, "7"))
	require.NoError(t, f.edit(number, order.FieldLocation, "12 Baker Street"))

	_, err = f.dispatch.Handle(f.ctx, cmd)
	require.ErrorIs(t, err, services.ErrNoDriversAvailable)
	assert.Equal(t, errs.KindPreconditionFailed, errs.KindOf(err))
}

func TestAssignDriverCommandHandler_Success(t *testing.T) {
	f := newFixture(t)
	f.connectDriver(driver42, "Alice")
	number := f.readyDraft()

	request, _ := commands.NewRequestInputCommand(operator, number, order.FieldNotes)
	require.NoError(t, f.requestInput.Handle(f.ctx, request))

	snapshot, err := f.assign(number, driver42)
	require.NoError(t, err)

	assert.Equal(t, order.Assigned, snapshot.Status)
	assert.Equal(t, driver42, snapshot.DriverID)
	assert.Equal(t, order.FieldUnknown, snapshot.PendingField)
	_, assigned := snapshot.MilestoneAt(order.MilestoneAssigned)
	assert.True(t, assigned)

	f.inspect(func(uow ports.UnitOfWork) {
		active, err := uow.OrderRepository().ListActive(f.ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, number, active[0].Number())
	})

	assert.Equal(t, []ports.NotificationKind{ports.KindOrderAssigned}, f.notifier.SentTo(driver42))
	assert.Contains(t, f.notifier.SentTo(operator), ports.KindOrderDispatched)
	assert.Equal(t, []ports.NotificationKind{ports.KindCustomerOrderCreated}, f.notifier.SentTo(customer7))

	for _, n := range f.notifier.Sent() {
		if n.Kind == ports.KindOrderAssigned {
			assert.Equal(t, "12 Baker Street", n.Payload["location"])
			assert.Equal(t, "7", n.Payload["customerId"])
			assert.Equal(t, number, n.OrderNumber)
		}
	}
}

func TestAssignDriverCommandHandler_DriverGoneLeavesDraftUntouched(t *testing.T) {
	f := newFixture(t)
	f.connectDriver(driver42, "Alice")
	f.connectDriver(driver43, "Bob")
	number := f.readyDraft()

	disconnect, _ := commands.NewDriverDisconnectCommand(driver43, commands.DisconnectRequested)
	_, err := f.disconnect.Handle(f.ctx, disconnect)
	require.NoError(t, err)

	_, err = f.assign(number, driver43)

	require.ErrorIs(t, err, services.ErrDriverNotConnected)
	s := f.snapshot(number)
	assert.Equal(t, order.Created, s.Status)
	assert.True(t, s.DriverID.IsZero())
	assert.Empty(t, f.notifier.SentTo(driver43))
}

func TestAssignDriverCommandHandler_NoDrivers(t *testing.T) {
	f := newFixture(t)
	number := f.readyDraft()

	_, err := f.assign(number, driver42)

	require.ErrorIs(t, err, services.ErrNoDriversAvailable)
	assert.Equal(t, order.Created, f.snapshot(number).Status)
}

func TestAssignDriverCommandHandler_NoReassignment(t *testing.T) {
	f := newFixture(t)
	number := f.activeOrder()
	f.connectDriver(driver43, "Bob")

	_, err := f.assign(number, driver43)

	require.ErrorIs(t, err, order.ErrNotDraft)
	assert.Equal(t, driver42, f.snapshot(number).DriverID)
}
