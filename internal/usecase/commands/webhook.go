package commands

import (
	"context"
	"log/slog"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/pkg/clock"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

var errDuplicateEvent = errs.New("webhook event already processed")

type WebhookCommands interface {
	// Ingest verifies and applies one processor event. A replayed event id is a silent no-op.
	Ingest(ctx context.Context, payload []byte, signature string) error
}

type webhookCommandsImpl struct {
	uow     shared.UnitOfWork
	payment shared.PaymentGateway
	clock   clock.Clock
}

func NewWebhookCommands(uow shared.UnitOfWork, payment shared.PaymentGateway, clk clock.Clock) WebhookCommands {
	return &webhookCommandsImpl{uow: uow, payment: payment, clock: clk}
}

func (w *webhookCommandsImpl) Ingest(ctx context.Context, payload []byte, signature string) error {
	ev, err := w.payment.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}

	attrs := []any{slog.String("event_id", ev.ID), slog.String("event_type", ev.Type)}
	if ev.BookingID != nil {
		attrs = append(attrs, slog.String("booking_id", ev.BookingID.String()))
	}

	// The ledger row and the effect commit together. A concurrent copy blocks on the
	// unique key until this one commits, then fails with DUPLICATE_KEY.
	err = w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := w.clock.Now()
		if err := tx.WebhookEvents().Record(ctx, ev.ID, ev.Type, now); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errDuplicateEvent
			}
			return err
		}
		return w.apply(ctx, tx, ev)
	})
	if errs.Is(err, errDuplicateEvent) {
		slog.Info("duplicate webhook event ignored", attrs...)
		return nil
	}
	if err != nil {
		slog.Error("webhook event failed", append(attrs, slog.String("error", err.Error()))...)
		return err
	}

	slog.Info("webhook event processed", attrs...)
	return nil
}

func (w *webhookCommandsImpl) apply(ctx context.Context, tx shared.Tx, ev shared.PaymentEvent) error {
	now := w.clock.Now()

	switch ev.Kind {
	case shared.EventAuthorizationUpdated:
		return w.withBooking(ctx, tx, ev, false, func(b *booking.Booking) error {
			return w.savePaymentStatus(ctx, tx, b, booking.PaymentAuthorized)
		})

	case shared.EventAuthorizationSucceeded:
		// skip-locked: a release worker holding the row will complete it itself
		return w.withBooking(ctx, tx, ev, true, func(b *booking.Booking) error {
			b.ApplyPaymentStatus(booking.PaymentCaptured, now)
			if b.Status() == booking.StatusValidated {
				return completeCaptured(ctx, tx, b, now)
			}
			return tx.Bookings().Save(ctx, b)
		})

	case shared.EventPaymentFailed:
		return w.withBooking(ctx, tx, ev, false, func(b *booking.Booking) error {
			b.ApplyPaymentStatus(booking.PaymentFailed, now)
			if b.Status() == booking.StatusPendingAcceptance {
				return cancelAndRelease(ctx, tx, w.payment, b, booking.CancelledBySystem, false, now)
			}
			return tx.Bookings().Save(ctx, b)
		})

	case shared.EventAuthorizationCanceled:
		return w.withBooking(ctx, tx, ev, false, func(b *booking.Booking) error {
			return w.savePaymentStatus(ctx, tx, b, booking.PaymentCancelled)
		})

	case shared.EventRefundCreated, shared.EventRefundUpdated:
		return w.withBooking(ctx, tx, ev, false, func(b *booking.Booking) error {
			return w.savePaymentStatus(ctx, tx, b, booking.PaymentRefunded)
		})

	case shared.EventRefundFailed:
		return Enqueue(ctx, tx, adminAlert(shared.TopicRefundFailed, subjectOf(ev), w.alertData(ev), ev.ID), now)

	case shared.EventAccountUpdated:
		p, err := tx.Mechanics().GetByPayoutAccountForUpdate(ctx, ev.AccountID)
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("webhook for unknown payout account", slog.String("event_id", ev.ID))
			return nil
		}
		if err != nil {
			return err
		}
		if !p.SetPayoutsEnabled(ev.PayoutsEnabled, now) {
			return nil
		}
		return tx.Mechanics().Save(ctx, p)

	case shared.EventDisputeCreated, shared.EventDisputeClosed,
		shared.EventDisputeFundsWithdrawn, shared.EventDisputeFundsReinstated:
		return Enqueue(ctx, tx, adminAlert(shared.TopicPaymentDispute, subjectOf(ev), w.alertData(ev), ev.ID), now)

	default:
		return nil
	}
}

func (w *webhookCommandsImpl) savePaymentStatus(ctx context.Context, tx shared.Tx, b *booking.Booking, ps booking.PaymentStatus) error {
	if !b.ApplyPaymentStatus(ps, w.clock.Now()) {
		return nil
	}
	return tx.Bookings().Save(ctx, b)
}

// withBooking locks the booking the event refers to. Events for unknown bookings are
// recorded and otherwise ignored.
func (w *webhookCommandsImpl) withBooking(ctx context.Context, tx shared.Tx, ev shared.PaymentEvent, skipLocked bool, fn func(b *booking.Booking) error) error {
	id, ok, err := w.resolveBooking(ctx, tx, ev)
	if err != nil || !ok {
		return err
	}

	var b *booking.Booking
	if skipLocked {
		b, err = tx.Bookings().GetForUpdateSkipLocked(ctx, id)
	} else {
		b, err = tx.Bookings().GetForUpdate(ctx, id)
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return fn(b)
}

func (w *webhookCommandsImpl) resolveBooking(ctx context.Context, tx shared.Tx, ev shared.PaymentEvent) (uuid.UUID, bool, error) {
	if ev.BookingID != nil {
		return *ev.BookingID, true, nil
	}
	if ev.PaymentIntentID == "" {
		return uuid.Nil, false, nil
	}
	id, err := tx.Reads().BookingIDByPaymentIntent(ctx, ev.PaymentIntentID)
	if infra.IsKind(err, infra.KindNotFound) {
		slog.Warn("webhook for unknown payment", slog.String("event_id", ev.ID))
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}

func subjectOf(ev shared.PaymentEvent) uuid.UUID {
	if ev.BookingID != nil {
		return *ev.BookingID
	}
	return uuid.Nil
}

// alertData carries identifiers only, never payload fields.
func (w *webhookCommandsImpl) alertData(ev shared.PaymentEvent) map[string]string {
	return map[string]string{
		"event_id":          ev.ID,
		"event_type":        ev.Type,
		"payment_intent_id": ev.PaymentIntentID,
	}
}
