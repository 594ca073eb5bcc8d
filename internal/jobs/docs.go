// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DeliveryDayJob - Plans, simulates and stores a delivery day for the current date
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the command handler and the configured schedule
//	jobManager := jobs.NewJobManager(runDeliveryDayHandler, "0 0 7 * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules take six fields with seconds first, or a descriptor such as "@daily".
// An empty schedule leaves the job disabled; days can still be run over HTTP.
//
// # Error Handling
//
// - Failed days are logged with the "error" attribute and the job keeps its schedule
// - Overlapping ticks are skipped while a day is still running
// - A schedule that does not parse fails StartAll
package jobs
