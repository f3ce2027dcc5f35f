package jobs

import (
	"carsharing-backend/internal/config"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/notify"
	"carsharing-backend/internal/service"
)

// Job names accepted by cmd/cronjob -run-once.
const (
	JobSendOverdueReminders = "send-overdue-reminders"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals  service.RentalService
	notifier notify.Notifier
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(rentals service.RentalService, notifier notify.Notifier, cfg *config.Config) *JobRunner {
	return &JobRunner{
		rentals:  rentals,
		notifier: notifier,
		config:   cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// Run executes a job by name. It returns false for unknown names.
func (jr *JobRunner) Run(name string) bool {
	switch name {
	case JobSendOverdueReminders:
		jr.SendOverdueReminders()
	default:
		return false
	}
	return true
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
