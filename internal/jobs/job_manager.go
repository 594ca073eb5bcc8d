package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryDayJob *DeliveryDayJob
}

// NewJobManager creates a new job manager with all required jobs.
// An empty schedule disables the delivery day job.
func NewJobManager(
	runDeliveryDayHandler DeliveryDayRunner,
	deliveryDaySchedule string,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	if deliveryDaySchedule != "" {
		jm.deliveryDayJob = NewDeliveryDayJob(runDeliveryDayHandler, deliveryDaySchedule, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.deliveryDayJob == nil {
		return nil
	}
	if err := jm.deliveryDayJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery day job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.deliveryDayJob != nil {
		jm.deliveryDayJob.Stop()
	}
}
