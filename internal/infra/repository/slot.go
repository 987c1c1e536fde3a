package repository

import (
	"context"
	"time"

	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/infra/repository/converter"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SlotWriteQueries interface {
	CreateSlot(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateSlotParams) error
	GetSlotForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.AvailabilitySlots, error)
	CountOverlappingSlots(ctx context.Context, db sqlc.DBTX, arg sqlc.CountOverlappingSlotsParams) (int64, error)
	LockFreeSlotsInWindow(ctx context.Context, db sqlc.DBTX, arg sqlc.LockFreeSlotsInWindowParams) ([]sqlc.AvailabilitySlots, error)
	LockSlotsByBooking(ctx context.Context, db sqlc.DBTX, bookingID pgtype.UUID) ([]sqlc.AvailabilitySlots, error)
	UpdateSlotBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateSlotBookingParams) (int64, error)
}

type SlotRepository struct {
	queries SlotWriteQueries
	db      sqlc.DBTX
}

func NewSlotRepository(queries SlotWriteQueries, db sqlc.DBTX) *SlotRepository {
	return &SlotRepository{
		queries: queries,
		db:      db,
	}
}

func (r *SlotRepository) Create(ctx context.Context, s *slot.Slot) error {
	if err := r.queries.CreateSlot(ctx, r.db, converter.SlotToCreate(s)); err != nil {
		return infra.WrapRepoErr("failed to create slot", err)
	}
	return nil
}

func (r *SlotRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	row, err := r.queries.GetSlotForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, wrapLookupErr("slot", err)
	}
	return converter.SlotFromRow(row), nil
}

func (r *SlotRepository) CountOverlapping(ctx context.Context, mechanicID uuid.UUID, start, end time.Time) (int64, error) {
	n, err := r.queries.CountOverlappingSlots(ctx, r.db, sqlc.CountOverlappingSlotsParams{
		MechanicID: mechanicID,
		StartsAt:   pgconv.TimeToPgtype(start),
		EndsAt:     pgconv.TimeToPgtype(end),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping slots", err)
	}
	return n, nil
}

func (r *SlotRepository) LockFreeInWindow(ctx context.Context, mechanicID, excludeID uuid.UUID, start, end time.Time) ([]*slot.Slot, error) {
	rows, err := r.queries.LockFreeSlotsInWindow(ctx, r.db, sqlc.LockFreeSlotsInWindowParams{
		MechanicID:    mechanicID,
		ExcludeSlotID: excludeID,
		WindowStart:   pgconv.TimeToPgtype(start),
		WindowEnd:     pgconv.TimeToPgtype(end),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock buffer slots", err)
	}
	return converter.SlotsFromRows(rows), nil
}

func (r *SlotRepository) LockByBooking(ctx context.Context, bookingID uuid.UUID) ([]*slot.Slot, error) {
	rows, err := r.queries.LockSlotsByBooking(ctx, r.db, pgconv.UUIDToPgtype(bookingID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock booking slots", err)
	}
	return converter.SlotsFromRows(rows), nil
}

func (r *SlotRepository) Save(ctx context.Context, s *slot.Slot) error {
	n, err := r.queries.UpdateSlotBooking(ctx, r.db, converter.SlotToUpdate(s))
	if err != nil {
		return infra.WrapRepoErr("failed to update slot", err)
	}
	return expectOneRow("slot", n)
}
