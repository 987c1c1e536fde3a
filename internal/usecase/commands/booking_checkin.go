package commands

import (
	"context"
	"strconv"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/dispute"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

// CheckIn either issues a fresh code or, when the buyer reports the mechanic absent,
// opens a no-show dispute.
func (c *bookingCommandsImpl) CheckIn(ctx context.Context, buyerID, bookingID uuid.UUID, mechanicAbsent bool) (*CheckInResult, error) {
	if mechanicAbsent {
		return c.reportNoShow(ctx, buyerID, bookingID)
	}

	code, err := booking.GenerateCheckInCode()
	if err != nil {
		return nil, errs.Wrap(err, "generate check-in code")
	}
	hash := booking.HashCheckInCode(c.settings.Code.Secret, code)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockAs(ctx, tx, bookingID, buyerID, false)
		if err != nil {
			return err
		}
		now := c.clock.Now()
		if err := b.IssueCheckInCode(hash, now, c.settings.CheckInTolerance); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return err
		}
		// tells the mechanic a code is waiting; the code itself only goes to the buyer
		return Enqueue(ctx, tx, Notification{
			Kind:         shared.NotifyPush,
			Topic:        shared.TopicCheckInCode,
			Recipient:    b.MechanicID(),
			Subject:      b.ID(),
			DedupeSuffix: strconv.FormatInt(now.UnixNano(), 10),
		}, now)
	})
	if err != nil {
		return nil, err
	}
	return &CheckInResult{Code: code}, nil
}

func (c *bookingCommandsImpl) reportNoShow(ctx context.Context, buyerID, bookingID uuid.UUID) (*CheckInResult, error) {
	var caseID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockAs(ctx, tx, bookingID, buyerID, false)
		if err != nil {
			return err
		}
		now := c.clock.Now()
		if err := b.ReportNoShow(now); err != nil {
			return err
		}
		dc, err := dispute.Open(b.ID(), buyerID, dispute.ReasonNoShow, "", now)
		if err != nil {
			return err
		}
		if err := tx.Disputes().Create(ctx, dc); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return err
		}
		caseID = dc.ID()
		return enqueueAll(ctx, tx, now,
			Notification{Topic: shared.TopicBookingDisputed, Recipient: b.MechanicID(), Subject: b.ID()},
			adminAlert(shared.TopicBookingDisputed, b.ID(), map[string]string{"reason": string(dispute.ReasonNoShow)}, ""),
		)
	})
	if err != nil {
		return nil, err
	}
	return &CheckInResult{DisputeID: &caseID}, nil
}

// EnterCode commits the attempt counter even when the code is wrong, so the cap holds
// across requests. The row lock serializes concurrent guesses.
func (c *bookingCommandsImpl) EnterCode(ctx context.Context, mechanicID, bookingID uuid.UUID, code string) error {
	var wrongCode error
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		wrongCode = nil
		b, err := lockAs(ctx, tx, bookingID, mechanicID, true)
		if err != nil {
			return err
		}
		now := c.clock.Now()
		err = b.EnterCode(code, c.settings.Code, now)
		switch {
		case errs.Is(err, booking.ErrInvalidCode):
			wrongCode = err
		case err != nil:
			return err
		}
		return tx.Bookings().Save(ctx, b)
	})
	if err != nil {
		return err
	}
	return wrongCode
}
