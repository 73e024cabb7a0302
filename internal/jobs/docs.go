// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ReminderJob - Runs every second and fires the late-delivery reminders
// whose deadline has passed
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(deadlineScheduler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reminder job uses the cron expression "* * * * * *" (every second), so a
// reminder fires at most one second after its deadline.
//
// # Error Handling
//
// A panicking reminder callback is logged. It neither stops the job nor keeps
// the reminders due after it from firing.
package jobs
