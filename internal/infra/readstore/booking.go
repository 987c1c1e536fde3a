package readstore

import (
	"context"

	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/infra/repository/converter"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"
	"inspection-marketplace/internal/pkg/ptr"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingViewQueries interface {
	GetBooking(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	GetProofByBooking(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) (sqlc.ValidationProofs, error)
	ListBookingsByBuyer(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByBuyerParams) ([]sqlc.Bookings, error)
	ListBookingsByMechanic(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByMechanicParams) ([]sqlc.Bookings, error)
	ListBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsParams) ([]sqlc.Bookings, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingRecord, error) {
	row, err := r.queries.GetBooking(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	rec, err := rowToBookingRecord(row)
	if err != nil {
		return nil, err
	}

	proof, err := r.queries.GetProofByBooking(ctx, r.db, id)
	switch {
	case err == nil:
		rec.ReportURL = pgconv.StringPtrFromPgtype(proof.ReportUrl)
	case !pgconv.IsNoRows(err):
		return nil, infra.WrapRepoErr("failed to load inspection proof", err)
	}
	return rec, nil
}

func (r *BookingReadStore) ListByBuyer(ctx context.Context, buyerID uuid.UUID, page *queries.Page, limit int) ([]*queries.BookingRecord, error) {
	after, afterID := keyset(page)
	rows, err := r.queries.ListBookingsByBuyer(ctx, r.db, sqlc.ListBookingsByBuyerParams{
		BuyerID:        buyerID,
		AfterCreatedAt: after,
		AfterID:        afterID,
		Limit:          int32(limit), // #nosec G115
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by buyer", err)
	}
	return rowsToBookingRecords(rows)
}

func (r *BookingReadStore) ListByMechanic(ctx context.Context, mechanicID uuid.UUID, page *queries.Page, limit int) ([]*queries.BookingRecord, error) {
	after, afterID := keyset(page)
	rows, err := r.queries.ListBookingsByMechanic(ctx, r.db, sqlc.ListBookingsByMechanicParams{
		MechanicID:     mechanicID,
		AfterCreatedAt: after,
		AfterID:        afterID,
		Limit:          int32(limit), // #nosec G115
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by mechanic", err)
	}
	return rowsToBookingRecords(rows)
}

func (r *BookingReadStore) ListAll(ctx context.Context, page *queries.Page, limit int) ([]*queries.BookingRecord, error) {
	after, afterID := keyset(page)
	rows, err := r.queries.ListBookings(ctx, r.db, sqlc.ListBookingsParams{
		AfterCreatedAt: after,
		AfterID:        afterID,
		Limit:          int32(limit), // #nosec G115
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return rowsToBookingRecords(rows)
}

func rowsToBookingRecords(rows []sqlc.Bookings) ([]*queries.BookingRecord, error) {
	result := make([]*queries.BookingRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := rowToBookingRecord(row)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, nil
}

// rowToBookingRecord goes through the write-side converter so a corrupt row fails the same way on both sides.
func rowToBookingRecord(row sqlc.Bookings) (*queries.BookingRecord, error) {
	b, err := converter.BookingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking", err)
	}
	s := b.Snapshot()
	rec := &queries.BookingRecord{
		ID:                  s.ID,
		BuyerID:             s.BuyerID,
		MechanicID:          s.MechanicID,
		SlotID:              s.SlotID,
		Status:              s.Status.String(),
		ScheduledAt:         s.ScheduledAt,
		VehicleType:         string(s.Vehicle.Type),
		VehicleBrand:        s.Vehicle.Brand,
		VehicleModel:        s.Vehicle.Model,
		VehicleYear:         s.Vehicle.Year,
		VehiclePlate:        s.Vehicle.Plate,
		MeetingLat:          s.Location.Lat,
		MeetingLng:          s.Location.Lng,
		MeetingAddress:      s.Location.Address,
		DistanceKm:          s.DistanceKm,
		OBDRequested:        s.OBDRequested,
		BasePrice:           s.Price.BasePrice,
		TravelFees:          s.Price.TravelFees,
		ProcessorFee:        s.Price.ProcessorFee,
		TotalPrice:          s.Price.TotalPrice,
		CommissionRate:      s.Price.CommissionRate.StringFixed(4),
		CommissionAmount:    s.Price.CommissionAmount,
		MechanicPayout:      s.Price.MechanicPayout,
		PaymentIntentID:     s.PaymentIntentID,
		PaymentStatus:       string(s.PaymentStatus),
		CheckInAttempts:     s.CheckInAttempts,
		CheckInCodeIssuedAt: s.CheckInCodeIssuedAt,
		ConfirmedAt:         s.ConfirmedAt,
		CheckedInAt:         s.CheckedInAt,
		CheckedOutAt:        s.CheckedOutAt,
		ValidatedAt:         s.ValidatedAt,
		PaymentReleasedAt:   s.PaymentReleasedAt,
		CancelledAt:         s.CancelledAt,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
	if s.CancelledBy != nil {
		rec.CancelledBy = ptr.Of(string(*s.CancelledBy))
	}
	return rec, nil
}
