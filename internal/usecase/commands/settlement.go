package commands

import (
	"context"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/shared"
)

// The helpers below run with the booking row already locked by the caller. The processor
// call happens under that lock with a per-booking idempotency key: if the commit fails
// afterwards, a retry repeats the same processor request instead of moving money twice.

func cancelKey(b *booking.Booking) string  { return "cancel:" + b.ID().String() }
func captureKey(b *booking.Booking) string { return "capture:" + b.ID().String() }

// cancelAndRelease voids (or refunds, if a capture won the race) the authorization, cancels
// the booking and frees every slot it holds. settle=false skips the processor when the
// payment is already dead on its side.
func cancelAndRelease(ctx context.Context, tx shared.Tx, pay shared.PaymentGateway, b *booking.Booking, by booking.CancelledBy, settle bool, now time.Time) error {
	if !booking.CanTransition(b.Status(), booking.StatusCancelled) {
		return errs.Wrapf(booking.ErrInvalidTransition, "%s -> %s", b.Status(), booking.StatusCancelled)
	}

	if settle {
		outcome, err := pay.CancelAuthorization(ctx, b.PaymentIntentID(), cancelKey(b))
		if err != nil {
			return paymentErr(err)
		}
		switch outcome {
		case shared.CancelVoided:
			b.ApplyPaymentStatus(booking.PaymentCancelled, now)
		case shared.CancelRefunded:
			b.ApplyPaymentStatus(booking.PaymentRefunded, now)
		}
	}

	if err := b.Cancel(by, now); err != nil {
		return err
	}
	if err := freeSlots(ctx, tx, b, now); err != nil {
		return err
	}
	if err := tx.Bookings().Save(ctx, b); err != nil {
		return err
	}

	return enqueueAll(ctx, tx, now,
		Notification{Topic: shared.TopicBookingCancelled, Recipient: b.BuyerID(), Subject: b.ID()},
		Notification{Topic: shared.TopicBookingCancelled, Recipient: b.MechanicID(), Subject: b.ID()},
	)
}

// captureAndComplete checks the transition before touching the processor so an illegal
// state never captures money.
func captureAndComplete(ctx context.Context, tx shared.Tx, pay shared.PaymentGateway, b *booking.Booking, now time.Time) error {
	if !booking.CanTransition(b.Status(), booking.StatusCompleted) {
		return errs.Wrapf(booking.ErrInvalidTransition, "%s -> %s", b.Status(), booking.StatusCompleted)
	}
	if err := pay.CaptureAuthorization(ctx, b.PaymentIntentID(), captureKey(b)); err != nil {
		return paymentErr(err)
	}
	return completeCaptured(ctx, tx, b, now)
}

// completeCaptured records a capture that already happened on the processor side.
func completeCaptured(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
	if err := b.Complete(now); err != nil {
		return err
	}
	if err := tx.Bookings().Save(ctx, b); err != nil {
		return err
	}
	return Enqueue(ctx, tx, Notification{Topic: shared.TopicPaymentReleased, Recipient: b.MechanicID(), Subject: b.ID()}, now)
}

func freeSlots(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
	held, err := tx.Slots().LockByBooking(ctx, b.ID())
	if err != nil {
		return err
	}
	for _, s := range held {
		if err := s.Release(b.ID(), now); err != nil {
			return err
		}
		if err := tx.Slots().Save(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
