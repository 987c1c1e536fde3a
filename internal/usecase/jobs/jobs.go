package jobs

import (
	"context"
	"log/slog"
	"time"

	"inspection-marketplace/internal/pkg/clock"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/pkg/tracing"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type Settings struct {
	PendingTimeout         time.Duration
	PendingTimeoutInterval time.Duration
	ReleaseDelay           time.Duration
	OverdueReleaseInterval time.Duration
	ReminderInterval       time.Duration
	ReminderLeads          []time.Duration
	WebhookCleanupInterval time.Duration
	WebhookRetention       time.Duration
	NoShowDecayInterval    time.Duration
	NoShowDecayAfter       time.Duration
	ProposalExpiryInterval time.Duration
	DispatchInterval       time.Duration
	DispatchBatchSize      int
	DispatchMaxAttempts    int
	HousekeepingInterval   time.Duration
	SweepBatchSize         int
}

// Runner holds the periodic reconciliation jobs. None of them keep state between runs:
// each run re-derives what is due from persisted deadlines, so a restart loses nothing.
type Runner struct {
	uow       shared.UnitOfWork
	bookings  commands.BookingCommands
	proposals commands.ProposalCommands
	publisher shared.EventPublisher
	clock     clock.Clock
	settings  Settings
}

func NewRunner(
	uow shared.UnitOfWork,
	bookings commands.BookingCommands,
	proposals commands.ProposalCommands,
	publisher shared.EventPublisher,
	clk clock.Clock,
	settings Settings,
) *Runner {
	return &Runner{
		uow:       uow,
		bookings:  bookings,
		proposals: proposals,
		publisher: publisher,
		clock:     clk,
		settings:  settings,
	}
}

// Register schedules every job that has a positive interval.
func (r *Runner) Register(s shared.Scheduler) error {
	jobs := []struct {
		interval time.Duration
		job      shared.Job
	}{
		{r.settings.PendingTimeoutInterval, r.job("pending-timeout", r.ExpirePendingBookings)},
		{r.settings.OverdueReleaseInterval, r.job("overdue-release", r.ReleaseOverduePayments)},
		{r.settings.ReminderInterval, r.job("reminders", r.SendReminders)},
		{r.settings.WebhookCleanupInterval, r.job("webhook-cleanup", r.PurgeWebhookEvents)},
		{r.settings.NoShowDecayInterval, r.job("no-show-decay", r.DecayNoShows)},
		{r.settings.ProposalExpiryInterval, r.job("proposal-expiry", r.ExpireProposals)},
		{r.settings.DispatchInterval, r.job("notification-dispatch", r.DispatchNotifications)},
		{r.settings.HousekeepingInterval, r.job("housekeeping", r.Housekeeping)},
	}
	for _, j := range jobs {
		if j.interval <= 0 {
			slog.Warn("job disabled", slog.String("job", j.job.Name))
			continue
		}
		if err := s.ScheduleRecurring(j.interval, j.job); err != nil {
			return errs.Wrapf(err, "schedule %s", j.job.Name)
		}
	}
	return nil
}

func (r *Runner) job(name string, run func(ctx context.Context) error) shared.Job {
	return shared.Job{
		Name: name,
		Run: func(ctx context.Context) (err error) {
			ctx, span := tracing.Start(ctx, "job."+name, attribute.String("job", name))
			defer func() { tracing.End(span, err) }()

			if err = run(ctx); err != nil {
				slog.Error("job run failed", slog.String("job", name), slog.String("error", err.Error()))
			}
			return err
		},
	}
}

// listIDs runs a candidate query in its own short transaction.
func (r *Runner) listIDs(ctx context.Context, list func(ctx context.Context, tx shared.Tx) ([]uuid.UUID, error)) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		ids, err = list(ctx, tx)
		return err
	})
	return ids, err
}

// sweep applies fn to every id. A failing item is logged and left for the next run.
func (r *Runner) sweep(ctx context.Context, name string, ids []uuid.UUID, fn func(ctx context.Context, id uuid.UUID) (bool, error)) {
	done, failed := 0, 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		ok, err := fn(ctx, id)
		if err != nil {
			failed++
			slog.Error("job item failed",
				slog.String("job", name),
				slog.String("id", id.String()),
				slog.String("error", err.Error()))
			continue
		}
		if ok {
			done++
		}
	}
	if done > 0 || failed > 0 {
		slog.Info("job swept",
			slog.String("job", name),
			slog.Int("candidates", len(ids)),
			slog.Int("applied", done),
			slog.Int("failed", failed))
	}
}
