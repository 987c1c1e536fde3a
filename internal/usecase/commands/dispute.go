package commands

import (
	"context"
	"log/slog"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/dispute"
	"inspection-marketplace/internal/pkg/clock"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

type DisputeCommands interface {
	Resolve(ctx context.Context, adminID, disputeID uuid.UUID, resolution, note string) error
}

type disputeCommandsImpl struct {
	uow     shared.UnitOfWork
	payment shared.PaymentGateway
	clock   clock.Clock
}

func NewDisputeCommands(uow shared.UnitOfWork, payment shared.PaymentGateway, clk clock.Clock) DisputeCommands {
	return &disputeCommandsImpl{uow: uow, payment: payment, clock: clk}
}

// Resolve locks booking, then dispute, then (for a no-show) the mechanic profile.
func (d *disputeCommandsImpl) Resolve(ctx context.Context, adminID, disputeID uuid.UUID, resolution, note string) error {
	in := dispute.Resolution(resolution)
	if !in.IsValid() {
		return dispute.ErrInvalidResolution
	}

	// unlocked read only to find which booking to lock first
	found, err := d.uow.CommandReads().DisputeByID(ctx, disputeID)
	if err != nil {
		return notFound(err, ErrDisputeNotFound)
	}

	err = d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().GetForUpdate(ctx, found.BookingID())
		if err != nil {
			return notFound(err, ErrBookingNotFound)
		}
		dc, err := tx.Disputes().GetForUpdate(ctx, disputeID)
		if err != nil {
			return notFound(err, ErrDisputeNotFound)
		}

		now := d.clock.Now()
		if err := dc.Resolve(in, adminID, note, now); err != nil {
			return err
		}

		switch in {
		case dispute.ResolutionBuyer:
			if err := cancelAndRelease(ctx, tx, d.payment, b, booking.CancelledBySystem, true, now); err != nil {
				return err
			}
			if dc.Reason() == dispute.ReasonNoShow {
				if err := penalizeNoShow(ctx, tx, b.MechanicID(), now); err != nil {
					return err
				}
			}
		case dispute.ResolutionMechanic:
			if err := captureAndComplete(ctx, tx, d.payment, b, now); err != nil {
				return err
			}
		}

		if err := tx.Disputes().Save(ctx, dc); err != nil {
			return err
		}
		data := map[string]string{"resolution": string(in)}
		return enqueueAll(ctx, tx, now,
			Notification{Topic: shared.TopicDisputeResolved, Recipient: b.BuyerID(), Subject: dc.ID(), Data: data},
			Notification{Topic: shared.TopicDisputeResolved, Recipient: b.MechanicID(), Subject: dc.ID(), Data: data},
		)
	})
	if err != nil {
		return err
	}

	slog.Info("dispute resolved",
		slog.String("dispute_id", disputeID.String()),
		slog.String("booking_id", found.BookingID().String()),
		slog.String("resolution", resolution))
	return nil
}

func penalizeNoShow(ctx context.Context, tx shared.Tx, mechanicID uuid.UUID, now time.Time) error {
	p, err := tx.Mechanics().GetForUpdate(ctx, mechanicID)
	if err != nil {
		return notFound(err, ErrMechanicNotFound)
	}
	p.RecordNoShow(now)
	if err := tx.Mechanics().Save(ctx, p); err != nil {
		return err
	}
	slog.Warn("mechanic no-show recorded",
		slog.String("mechanic_id", mechanicID.String()),
		slog.Int("no_show_count", p.NoShowCount()),
		slog.Bool("is_active", p.IsActive()))
	return nil
}
