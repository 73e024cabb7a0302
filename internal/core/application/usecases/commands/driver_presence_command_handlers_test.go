package commands_test

import (
	"strconv"
	"sync"
	"testing"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverConnectCommandHandler(t *testing.T) {
	f := newFixture(t)

	cmd, err := commands.NewDriverConnectCommand(driver.MustNewInfo("42", "Alice"))
	require.NoError(t, err)

	isNew, err := f.connect.Handle(f.ctx, cmd)
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ConnectedDrivers), 0)

	renamed, _ := commands.NewDriverConnectCommand(driver.MustNewInfo("42", "Alice B."))
	isNew, err = f.connect.Handle(f.ctx, renamed)
	require.NoError(t, err)
	assert.False(t, isNew)

	f.inspect(func(uow ports.UnitOfWork) {
		assert.Equal(t, 1, uow.DriverRegistry().Count())
		info, ok := uow.DriverRegistry().Get(driver42)
		require.True(t, ok)
		assert.Equal(t, "Alice B.", info.DisplayName())
	})

	assert.Equal(t, []ports.NotificationKind{ports.KindDriverConnected}, f.notifier.SentTo(operator))
}

func TestDriverDisconnectCommandHandler(t *testing.T) {
	f := newFixture(t)
	f.connectDriver(driver42, "Alice")

	cmd, err := commands.NewDriverDisconnectCommand(driver42, commands.DisconnectLeftGroup)
	require.NoError(t, err)

	removed, err := f.disconnect.Handle(f.ctx, cmd)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.ConnectedDrivers), 0)

	removed, err = f.disconnect.Handle(f.ctx, cmd)
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Equal(t, []ports.NotificationKind{
		ports.KindDriverConnected,
		ports.KindDriverLeftGroup,
	}, f.notifier.SentTo(operator))

	for _, n := range f.notifier.Sent() {
		if n.Kind == ports.KindDriverLeftGroup {
			assert.Equal(t, "Alice", n.Payload["driverName"])
			assert.Equal(t, "left-group", n.Payload["reason"])
		}
	}
}

func TestDriverDisconnectCommandHandler_LeavesActiveOrders(t *testing.T) {
	f := newFixture(t)
	number := f.activeOrder()

	cmd, _ := commands.NewDriverDisconnectCommand(driver42, commands.DisconnectRequested)
	_, err := f.disconnect.Handle(f.ctx, cmd)
	require.NoError(t, err)

	s := f.snapshot(number)
	assert.Equal(t, driver42, s.DriverID)
	assert.Contains(t, f.notifier.SentTo(operator), ports.KindDriverDisconnected)
}

func TestDriverPresence_GaugeFollowsRegistryUnderConcurrency(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	for i := range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			id := strconv.Itoa(100 + i)
			connect, err := commands.NewDriverConnectCommand(driver.MustNewInfo(id, "Driver "+id))
			if !assert.NoError(t, err) {
				return
			}
			_, err = f.connect.Handle(f.ctx, connect)
			assert.NoError(t, err)

			if i%2 == 0 {
				disconnect, err := commands.NewDriverDisconnectCommand(connect.Info().ID(), commands.DisconnectRequested)
				if !assert.NoError(t, err) {
					return
				}
				_, err = f.disconnect.Handle(f.ctx, disconnect)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	f.inspect(func(uow ports.UnitOfWork) {
		assert.Equal(t, 20, uow.DriverRegistry().Count())
	})
	assert.InDelta(t, 20, testutil.ToFloat64(metrics.ConnectedDrivers), 0)
}
