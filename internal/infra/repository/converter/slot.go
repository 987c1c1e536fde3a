package converter

import (
	"inspection-marketplace/internal/domain/slot"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"
)

func SlotToCreate(s *slot.Slot) sqlc.CreateSlotParams {
	return sqlc.CreateSlotParams{
		ID:         s.ID(),
		MechanicID: s.MechanicID(),
		StartsAt:   pgconv.TimeToPgtype(s.StartsAt()),
		EndsAt:     pgconv.TimeToPgtype(s.EndsAt()),
		IsBooked:   s.IsBooked(),
		BookingID:  pgconv.UUIDPtrToPgtype(s.BookingID()),
		CreatedAt:  pgconv.TimeToPgtype(s.CreatedAt()),
	}
}

func SlotToUpdate(s *slot.Slot) sqlc.UpdateSlotBookingParams {
	return sqlc.UpdateSlotBookingParams{
		ID:        s.ID(),
		IsBooked:  s.IsBooked(),
		BookingID: pgconv.UUIDPtrToPgtype(s.BookingID()),
		UpdatedAt: pgconv.TimeToPgtype(s.UpdatedAt()),
	}
}

func SlotFromRow(row sqlc.AvailabilitySlots) *slot.Slot {
	return slot.Reconstruct(
		row.ID,
		row.MechanicID,
		row.StartsAt.Time,
		row.EndsAt.Time,
		row.IsBooked,
		pgconv.UUIDPtrFromPgtype(row.BookingID),
		row.CreatedAt.Time,
		row.UpdatedAt.Time,
	)
}

func SlotsFromRows(rows []sqlc.AvailabilitySlots) []*slot.Slot {
	out := make([]*slot.Slot, 0, len(rows))
	for _, r := range rows {
		out = append(out, SlotFromRow(r))
	}
	return out
}
