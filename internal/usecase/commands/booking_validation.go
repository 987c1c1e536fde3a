package commands

import (
	"context"
	"log/slog"
	"strings"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/dispute"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

const releasePaymentJob = "release-payment"

type ValidationInput struct {
	Accepted    bool
	Reason      string
	Description string
}

type ValidationResult struct {
	Status    booking.Status
	DisputeID *uuid.UUID
}

func ReleasePaymentDedupeKey(bookingID uuid.UUID) string {
	return releasePaymentJob + ":" + bookingID.String()
}

func (c *bookingCommandsImpl) Validate(ctx context.Context, buyerID, bookingID uuid.UUID, in ValidationInput) (*ValidationResult, error) {
	if !in.Accepted && (strings.TrimSpace(in.Reason) == "" || strings.TrimSpace(in.Description) == "") {
		return nil, ErrRejectionIncomplete
	}

	res := &ValidationResult{}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockAs(ctx, tx, bookingID, buyerID, false)
		if err != nil {
			return err
		}
		now := c.clock.Now()

		if in.Accepted {
			if err := b.Validate(now); err != nil {
				return err
			}
			res.Status, res.DisputeID = b.Status(), nil
			return tx.Bookings().Save(ctx, b)
		}

		if err := b.Dispute(now); err != nil {
			return err
		}
		dc, err := dispute.Open(b.ID(), buyerID, dispute.Reason(in.Reason), in.Description, now)
		if err != nil {
			return err
		}
		if err := tx.Disputes().Create(ctx, dc); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return err
		}
		id := dc.ID()
		res.Status, res.DisputeID = b.Status(), &id
		return enqueueAll(ctx, tx, now,
			Notification{Topic: shared.TopicBookingDisputed, Recipient: b.MechanicID(), Subject: b.ID()},
			adminAlert(shared.TopicBookingDisputed, b.ID(), map[string]string{"reason": in.Reason}, ""),
		)
	})
	if err != nil {
		return nil, err
	}

	if in.Accepted {
		c.scheduleRelease(bookingID)
	}
	return res, nil
}

// scheduleRelease is best-effort: the overdue release sweep captures anything a lost
// timer leaves behind.
func (c *bookingCommandsImpl) scheduleRelease(bookingID uuid.UUID) {
	job := shared.Job{
		Name: releasePaymentJob,
		Run: func(ctx context.Context) error {
			_, err := c.ReleasePayment(ctx, bookingID)
			return err
		},
	}
	if err := c.scheduler.ScheduleOnce(c.settings.ReleaseDelay, job, ReleasePaymentDedupeKey(bookingID)); err != nil {
		slog.Warn("failed to schedule payment release",
			slog.String("booking_id", bookingID.String()),
			slog.String("error", err.Error()))
	}
}

func (c *bookingCommandsImpl) ReleasePayment(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	released := false
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		released = false
		b, err := tx.Bookings().GetForUpdateSkipLocked(ctx, bookingID)
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if b.Status() != booking.StatusValidated {
			return nil
		}
		if err := captureAndComplete(ctx, tx, c.payment, b, c.clock.Now()); err != nil {
			return err
		}
		released = true
		return nil
	})
	if err == nil && released {
		slog.Info("payment released", slog.String("booking_id", bookingID.String()))
	}
	return released, err
}
