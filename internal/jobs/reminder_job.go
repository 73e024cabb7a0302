package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DueRunner runs the callbacks whose deadline has passed.
type DueRunner interface {
	RunDue(now time.Time) int
	Pending() int
	SetPanicHandler(fn func(recovered any))
}

// ReminderJob fires due late-delivery reminders. It ticks every second, which
// bounds how late a reminder can be.
type ReminderJob struct {
	scheduler DueRunner
	now       func() time.Time
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewReminderJob creates a job polling the given scheduler. A panicking
// reminder is logged and the reminders due after it still run.
func NewReminderJob(scheduler DueRunner, logger *zap.Logger) *ReminderJob {
	j := &ReminderJob{
		scheduler: scheduler,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "reminder_job")),
	}
	scheduler.SetPanicHandler(func(recovered any) {
		j.logger.Error("Reminder callback panicked", zap.Any("panic", recovered))
	})
	return j
}

// Start begins polling every second.
func (j *ReminderJob) Start() error {
	if _, err := j.cron.AddFunc("* * * * * *", j.Tick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Reminder job started (running every second)")
	return nil
}

// Tick runs one polling round.
func (j *ReminderJob) Tick() {
	if fired := j.scheduler.RunDue(j.now()); fired > 0 {
		j.logger.Debug("Reminders fired",
			zap.Int("fired", fired),
			zap.Int("pending", j.scheduler.Pending()))
	}
}

// Stop stops the job and waits for a running tick to finish.
func (j *ReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Reminder job stopped")
}
