package components

import (
	"log/slog"

	"inspection-marketplace/internal/pkg/config"
	"inspection-marketplace/internal/usecase/jobs"
	"inspection-marketplace/internal/usecase/shared"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		NewJobSettings,
		jobs.NewRunner,
	),
	fx.Invoke(
		RegisterJobs,
	),
)

func NewJobSettings(cfg config.Config) jobs.Settings {
	return jobs.Settings{
		PendingTimeout:         cfg.Booking.AcceptanceTimeout,
		PendingTimeoutInterval: cfg.Jobs.PendingTimeoutInterval,
		ReleaseDelay:           cfg.Booking.PaymentReleaseWait,
		OverdueReleaseInterval: cfg.Jobs.OverdueReleaseInterval,
		ReminderInterval:       cfg.Jobs.ReminderInterval,
		ReminderLeads:          cfg.Jobs.ReminderLeads,
		WebhookCleanupInterval: cfg.Jobs.WebhookCleanupInterval,
		WebhookRetention:       cfg.Jobs.WebhookRetention,
		NoShowDecayInterval:    cfg.Jobs.NoShowDecayInterval,
		NoShowDecayAfter:       cfg.Jobs.NoShowDecayAfter,
		ProposalExpiryInterval: cfg.Jobs.ProposalExpiryInterval,
		DispatchInterval:       cfg.Jobs.DispatchInterval,
		DispatchBatchSize:      cfg.Jobs.DispatchBatchSize,
		DispatchMaxAttempts:    cfg.Jobs.DispatchMaxAttempts,
		HousekeepingInterval:   cfg.Jobs.HousekeepingInterval,
		SweepBatchSize:         cfg.Jobs.SweepBatchSize,
	}
}

// RegisterJobs runs before the scheduler's start hook, so recurring jobs are in place when
// it starts. One-shot jobs scheduled by requests work either way.
func RegisterJobs(cfg config.Config, runner *jobs.Runner, s shared.Scheduler) error {
	if !cfg.Jobs.Enabled {
		slog.Warn("background jobs disabled")
		return nil
	}
	return runner.Register(s)
}
