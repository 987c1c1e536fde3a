package commands

import (
	"context"
	"log/slog"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/inspection"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

const reportContentType = "application/pdf"

type Photo struct {
	Data        []byte
	ContentType string
}

type CheckOutInput struct {
	Photos       []Photo
	Conditions   map[string]string
	Notes        map[string]string
	OdometerKm   int
	PlateReading string
	GPSLat       *float64
	GPSLng       *float64
}

type CheckOutResult struct {
	ProofID    uuid.UUID
	ReportURL  string
	IsReplayed bool
}

// CheckOut uploads evidence before taking the booking lock; uploads are slow and
// orphaned files are harmless, a lock held across them is not.
func (c *bookingCommandsImpl) CheckOut(ctx context.Context, mechanicID, bookingID uuid.UUID, in CheckOutInput) (*CheckOutResult, error) {
	reads := c.uow.CommandReads()

	b, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	if b.MechanicID() != mechanicID {
		return nil, ErrForbidden
	}
	if replay, err := c.existingProof(ctx, b); replay != nil || err != nil {
		return replay, err
	}
	if b.Status() != booking.StatusCheckedIn {
		return nil, errs.Wrapf(booking.ErrInvalidTransition, "%s -> %s", b.Status(), booking.StatusCheckedOut)
	}

	if err := inspection.ValidateInput(in.OdometerKm, in.PlateReading, in.GPSLat, in.GPSLng); err != nil {
		return nil, err
	}
	checklist, err := inspection.NewChecklist(in.Conditions, in.Notes)
	if err != nil {
		return nil, err
	}
	switch {
	case len(in.Photos) == 0:
		return nil, inspection.ErrNoPhotos
	case c.settings.MaxPhotos > 0 && len(in.Photos) > c.settings.MaxPhotos:
		return nil, ErrTooManyPhotos
	}

	urls := make([]string, 0, len(in.Photos))
	for _, p := range in.Photos {
		url, err := c.storage.Upload(ctx, p.Data, p.ContentType)
		if err != nil {
			return nil, storageErr(err)
		}
		urls = append(urls, url)
	}

	now := c.clock.Now()
	proof, err := inspection.NewProof(inspection.ProofInput{
		BookingID:    b.ID(),
		PhotoURLs:    urls,
		OdometerKm:   in.OdometerKm,
		PlateReading: in.PlateReading,
		GPSLat:       in.GPSLat,
		GPSLng:       in.GPSLng,
		Checklist:    checklist,
	}, now)
	if err != nil {
		return nil, err
	}

	pdf, err := c.renderer.Render(b, proof)
	if err != nil {
		return nil, errs.Wrap(err, "render inspection report")
	}
	reportURL, err := c.storage.Upload(ctx, pdf, reportContentType)
	if err != nil {
		return nil, storageErr(err)
	}
	proof.AttachReport(reportURL)

	var replayed bool
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayed = false
		locked, err := lockAs(ctx, tx, bookingID, mechanicID, true)
		if err != nil {
			return err
		}
		// a concurrent submission won; keep its proof
		if locked.Status() == booking.StatusCheckedOut {
			replayed = true
			return nil
		}
		if err := locked.CheckOut(now); err != nil {
			return err
		}
		if err := tx.Proofs().Create(ctx, proof); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, locked); err != nil {
			return err
		}
		return Enqueue(ctx, tx, Notification{
			Topic:     shared.TopicInspectionReportReady,
			Recipient: locked.BuyerID(),
			Subject:   locked.ID(),
			Data:      map[string]string{"report_url": reportURL},
		}, now)
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		slog.Info("duplicate check-out discarded", slog.String("booking_id", bookingID.String()))
		return c.existingProof(ctx, b)
	}

	return &CheckOutResult{ProofID: proof.ID(), ReportURL: reportURL}, nil
}

func (c *bookingCommandsImpl) existingProof(ctx context.Context, b *booking.Booking) (*CheckOutResult, error) {
	p, err := c.uow.CommandReads().ProofByBooking(ctx, b.ID())
	if infra.IsKind(err, infra.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	res := &CheckOutResult{ProofID: p.ID(), IsReplayed: true}
	if p.ReportURL() != nil {
		res.ReportURL = *p.ReportURL()
	}
	return res, nil
}

func storageErr(err error) error {
	if errs.Is(err, shared.ErrUnsupportedContent) || errs.Is(err, shared.ErrContentTooLarge) {
		return err
	}
	return errs.Mark(err, ErrStorageUnavailable)
}
