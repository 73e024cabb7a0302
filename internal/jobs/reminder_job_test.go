package jobs

import (
	"sync/atomic"
	"testing"
	"time"

	"courierbot/internal/adapters/out/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReminderJob_Tick(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base

	s := scheduler.NewDeadlineScheduler(func() time.Time { return base })
	var fired atomic.Int32
	s.Schedule(time.Minute, func() { fired.Add(1) })
	s.Schedule(time.Hour, func() { fired.Add(1) })

	job := NewReminderJob(s, zap.NewNop())
	job.now = func() time.Time { return now }

	job.Tick()
	assert.Equal(t, int32(0), fired.Load())

	now = base.Add(2 * time.Minute)
	job.Tick()
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, 1, s.Pending())

	job.Tick()
	assert.Equal(t, int32(1), fired.Load())
}

func TestReminderJob_TickSurvivesPanickingCallback(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	s := scheduler.NewDeadlineScheduler(nil)
	var fired atomic.Int32
	s.Schedule(0, func() { panic("boom") })
	s.Schedule(time.Millisecond, func() { fired.Add(1) })

	job := NewReminderJob(s, zap.New(core))
	job.now = func() time.Time { return time.Now().Add(time.Second) }

	assert.NotPanics(t, job.Tick)
	assert.Equal(t, int32(1), fired.Load(), "reminders behind a panicking one must still fire")
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 1, logs.FilterMessage("Reminder callback panicked").Len())
}

func TestJobManager_StartStop(t *testing.T) {
	s := scheduler.NewDeadlineScheduler(nil)
	done := make(chan struct{})
	s.Schedule(0, func() { close(done) })

	jm := NewJobManager(s, zap.NewNop())
	require.NoError(t, jm.StartAll())
	defer jm.StopAll()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("reminder did not fire")
	}
}
