package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// Scheduler runs jobs in-process on gocron. One-shot registrations live only in memory;
// anything they would do is also picked up by a recurring sweeper after a restart.
type Scheduler struct {
	cron   gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending map[string]uuid.UUID
}

var _ shared.Scheduler = (*Scheduler)(nil)

func New() (*Scheduler, error) {
	cron, err := gocron.NewScheduler(
		gocron.WithLogger(slog.Default()),
		gocron.WithStopTimeout(30*time.Second),
	)
	if err != nil {
		return nil, errs.Wrap(err, "create scheduler")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron,
		ctx:     ctx,
		cancel:  cancel,
		pending: map[string]uuid.UUID{},
	}, nil
}

func (s *Scheduler) ScheduleOnce(delay time.Duration, job shared.Job, dedupeKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[dedupeKey]; ok && dedupeKey != "" {
		slog.Debug("one-shot job already pending", slog.String("job", job.Name), slog.String("dedupe_key", dedupeKey))
		return nil
	}

	start := gocron.OneTimeJobStartImmediately()
	if delay > 0 {
		start = gocron.OneTimeJobStartDateTime(time.Now().Add(delay))
	}
	j, err := s.cron.NewJob(
		gocron.OneTimeJob(start),
		gocron.NewTask(s.runOnce, job, dedupeKey),
		gocron.WithName(job.Name),
	)
	if err != nil {
		return errs.Wrapf(err, "schedule %s", job.Name)
	}
	if dedupeKey != "" {
		s.pending[dedupeKey] = j.ID()
	}
	return nil
}

// ScheduleRecurring never overlaps two runs of the same job; a run still going when the
// next tick fires makes that tick skip.
func (s *Scheduler) ScheduleRecurring(interval time.Duration, job shared.Job) error {
	_, err := s.cron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run, job),
		gocron.WithName(job.Name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return errs.Wrapf(err, "schedule %s", job.Name)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", slog.Int("jobs", len(s.cron.Jobs())))
}

// Shutdown cancels the context handed to running jobs and waits for them to return.
func (s *Scheduler) Shutdown() error {
	s.cancel()
	if err := s.cron.Shutdown(); err != nil {
		return errs.Wrap(err, "scheduler shutdown")
	}
	return nil
}

// Pending reports whether a one-shot job with the key is waiting to run.
func (s *Scheduler) Pending(dedupeKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[dedupeKey]
	return ok
}

func (s *Scheduler) run(job shared.Job) {
	if s.ctx.Err() != nil {
		return
	}
	if err := job.Run(s.ctx); err != nil {
		slog.Warn("scheduled job returned error", slog.String("job", job.Name), slog.String("error", err.Error()))
	}
}

func (s *Scheduler) runOnce(job shared.Job, dedupeKey string) {
	defer func() {
		s.mu.Lock()
		delete(s.pending, dedupeKey)
		s.mu.Unlock()
	}()
	s.run(job)
}
