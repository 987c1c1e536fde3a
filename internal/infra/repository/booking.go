package repository

import (
	"context"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/infra/repository/converter"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	InsertBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertBookingParams) error
	GetBookingForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	GetBookingForUpdateSkipLocked(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	UpdateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingParams) (int64, error)
	ListStalePendingBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ListStalePendingBookingsParams) ([]uuid.UUID, error)
	ListOverdueValidatedBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOverdueValidatedBookingsParams) ([]uuid.UUID, error)
	ListConfirmedBookingsInWindow(ctx context.Context, db sqlc.DBTX, arg sqlc.ListConfirmedBookingsInWindowParams) ([]sqlc.Bookings, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if err := r.queries.InsertBooking(ctx, r.db, converter.BookingToInsert(b)); err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

func (r *BookingRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, wrapLookupErr("booking", err)
	}
	return converter.BookingFromRow(row)
}

func (r *BookingRepository) GetForUpdateSkipLocked(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingForUpdateSkipLocked(ctx, r.db, id)
	if err != nil {
		return nil, wrapLookupErr("booking", err)
	}
	return converter.BookingFromRow(row)
}

func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	n, err := r.queries.UpdateBooking(ctx, r.db, converter.BookingToUpdate(b))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	return expectOneRow("booking", n)
}

func (r *BookingRepository) ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListStalePendingBookings(ctx, r.db, sqlc.ListStalePendingBookingsParams{
		CreatedBefore: pgconv.TimeToPgtype(createdBefore),
		Limit:         int32(limit), // #nosec G115
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stale pending bookings", err)
	}
	return ids, nil
}

func (r *BookingRepository) ListOverdueValidated(ctx context.Context, validatedBefore time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListOverdueValidatedBookings(ctx, r.db, sqlc.ListOverdueValidatedBookingsParams{
		ValidatedBefore: pgconv.TimeToPgtype(validatedBefore),
		Limit:           int32(limit), // #nosec G115
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overdue validated bookings", err)
	}
	return ids, nil
}

func (r *BookingRepository) ListConfirmedInWindow(ctx context.Context, from, to time.Time) ([]*booking.Booking, error) {
	rows, err := r.queries.ListConfirmedBookingsInWindow(ctx, r.db, sqlc.ListConfirmedBookingsInWindowParams{
		From: pgconv.TimeToPgtype(from),
		To:   pgconv.TimeToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list confirmed bookings", err)
	}
	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := converter.BookingFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
