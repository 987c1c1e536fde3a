package jobs

import (
	"context"
	"log/slog"
	"time"

	"inspection-marketplace/internal/usecase/shared"
)

const (
	retryBase = 30 * time.Second
	retryMax  = time.Hour
)

// DispatchNotifications publishes due outbox rows. Claiming and marking happen in one
// transaction so the SKIP LOCKED claim holds while messages go out; a crash before commit
// republishes the batch, and consumers drop repeats by message id.
func (r *Runner) DispatchNotifications(ctx context.Context) error {
	sent, failed := 0, 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent, failed = 0, 0
		now := r.clock.Now()
		due, err := tx.Notifications().ClaimDue(ctx, now, r.settings.DispatchBatchSize)
		if err != nil {
			return err
		}

		for _, job := range due {
			if pubErr := r.publisher.Publish(ctx, RoutingKey(job), job.Payload); pubErr != nil {
				failed++
				slog.Warn("notification publish failed",
					slog.String("notification_id", job.ID.String()),
					slog.String("topic", string(job.Topic)),
					slog.Int("attempts", job.Attempts+1),
					slog.String("error", pubErr.Error()))
				retryAt := now.Add(backoff(job.Attempts))
				if err := tx.Notifications().MarkFailed(ctx, job.ID, pubErr.Error(), retryAt, r.settings.DispatchMaxAttempts, now); err != nil {
					return err
				}
				continue
			}
			if err := tx.Notifications().MarkSent(ctx, job.ID, now); err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	if err != nil {
		return err
	}
	if sent > 0 || failed > 0 {
		slog.Info("notifications dispatched", slog.Int("sent", sent), slog.Int("failed", failed))
	}
	return nil
}

// RoutingKey is "<kind>.<topic>", e.g. "email.booking_confirmed" or "admin.refund_failed".
func RoutingKey(job shared.NotificationJob) string {
	return string(job.Kind) + "." + string(job.Topic)
}

func backoff(attempts int) time.Duration {
	d := retryBase << attempts
	if d <= 0 || d > retryMax {
		return retryMax
	}
	return d
}
