package jobs

import (
	"context"
	"time"

	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

// ExpirePendingBookings cancels bookings the mechanic left unanswered past the timeout.
func (r *Runner) ExpirePendingBookings(ctx context.Context) error {
	cutoff := r.clock.Now().Add(-r.settings.PendingTimeout)
	ids, err := r.listIDs(ctx, func(ctx context.Context, tx shared.Tx) ([]uuid.UUID, error) {
		return tx.Bookings().ListStalePending(ctx, cutoff, r.settings.SweepBatchSize)
	})
	if err != nil {
		return err
	}
	r.sweep(ctx, "pending-timeout", ids, r.bookings.ExpirePending)
	return nil
}

// ReleaseOverduePayments catches validated bookings whose one-shot release job was lost.
func (r *Runner) ReleaseOverduePayments(ctx context.Context) error {
	cutoff := r.clock.Now().Add(-r.settings.ReleaseDelay)
	ids, err := r.listIDs(ctx, func(ctx context.Context, tx shared.Tx) ([]uuid.UUID, error) {
		return tx.Bookings().ListOverdueValidated(ctx, cutoff, r.settings.SweepBatchSize)
	})
	if err != nil {
		return err
	}
	r.sweep(ctx, "overdue-release", ids, r.bookings.ReleasePayment)
	return nil
}

// SendReminders matches confirmed bookings starting around each lead time. The window is
// one interval wide on both sides to absorb drift between runs; the dedupe key carries the
// lead so overlapping windows never notify twice.
func (r *Runner) SendReminders(ctx context.Context) error {
	now := r.clock.Now()
	slack := r.settings.ReminderInterval

	for _, lead := range r.settings.ReminderLeads {
		from, to := reminderWindow(now, lead, slack)

		var due []uuid.UUID
		recipients := map[uuid.UUID][2]uuid.UUID{}
		err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			found, err := tx.Bookings().ListConfirmedInWindow(ctx, from, to)
			if err != nil {
				return err
			}
			for _, b := range found {
				due = append(due, b.ID())
				recipients[b.ID()] = [2]uuid.UUID{b.BuyerID(), b.MechanicID()}
			}
			return nil
		})
		if err != nil {
			return err
		}

		suffix := "lead:" + lead.String()
		data := map[string]string{"lead": lead.String()}
		r.sweep(ctx, "reminders", due, func(ctx context.Context, id uuid.UUID) (bool, error) {
			parties := recipients[id]
			err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
				at := r.clock.Now()
				for _, recipient := range parties {
					n := commands.Notification{
						Topic:        shared.TopicBookingReminder,
						Recipient:    recipient,
						Subject:      id,
						Data:         data,
						DedupeSuffix: suffix,
					}
					if err := commands.Enqueue(ctx, tx, n, at); err != nil {
						return err
					}
				}
				return nil
			})
			return err == nil, err
		})
	}
	return nil
}

func reminderWindow(now time.Time, lead, slack time.Duration) (time.Time, time.Time) {
	return now.Add(lead - slack), now.Add(lead + slack)
}
