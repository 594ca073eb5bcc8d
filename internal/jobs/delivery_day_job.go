package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// DeliveryDayRunner is satisfied by *commands.RunDeliveryDayCommandHandler.
type DeliveryDayRunner interface {
	Handle(ctx context.Context, cmd commands.RunDeliveryDayCommand) (*services.DayReport, error)
}

// DeliveryDayJob runs a delivery day on a cron schedule.
// A tick that arrives while the previous day is still running is skipped.
type DeliveryDayJob struct {
	handler  DeliveryDayRunner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewDeliveryDayJob creates the job. schedule is a six-field cron expression
// (seconds first) or a descriptor such as "@daily".
func NewDeliveryDayJob(handler DeliveryDayRunner, schedule string, logger *slog.Logger) *DeliveryDayJob {
	return &DeliveryDayJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "delivery_day_job"),
		now:      time.Now,
	}
}

// Start registers the schedule and starts the scheduler.
func (j *DeliveryDayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery day job started", "schedule", j.schedule)
	return nil
}

// Run simulates the current day once. Failures are logged, not returned.
func (j *DeliveryDayJob) Run(ctx context.Context) {
	cmd, err := commands.NewRunDeliveryDayCommand(j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery day job failed", "error", err)
		return
	}

	report, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery day job failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Delivery day job finished",
		"run_id", report.RunID.String(),
		"delivered", report.Delivered(),
		"unassigned", len(report.Unassigned),
		"mileage", report.TotalMileage,
	)
}

// Stop stops the scheduler and waits for a running day to finish.
func (j *DeliveryDayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Delivery day job stopped")
}
