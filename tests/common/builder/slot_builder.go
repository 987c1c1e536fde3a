//go:build unit || e2e

package builder

import (
	"time"

	"inspection-marketplace/internal/domain/slot"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	ID         uuid.UUID
	MechanicID uuid.UUID
	StartsAt   time.Time
	EndsAt     time.Time
	BookingID  *uuid.UUID
}

func NewSlotBuilder() *SlotBuilder {
	start := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	return &SlotBuilder{
		ID:         uuid.New(),
		MechanicID: uuid.New(),
		StartsAt:   start,
		EndsAt:     start.Add(time.Hour),
	}
}

func (s *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(s)
	return s
}

func (s *SlotBuilder) WithMechanic(id uuid.UUID) *SlotBuilder {
	s.MechanicID = id
	return s
}

func (s *SlotBuilder) StartingAt(start time.Time, d time.Duration) *SlotBuilder {
	s.StartsAt = start
	s.EndsAt = start.Add(d)
	return s
}

func (s *SlotBuilder) BookedBy(bookingID uuid.UUID) *SlotBuilder {
	s.BookingID = &bookingID
	return s
}

func (s *SlotBuilder) BuildDomain() *slot.Slot {
	created := s.StartsAt.Add(-72 * time.Hour)
	return slot.Reconstruct(s.ID, s.MechanicID, s.StartsAt, s.EndsAt, s.BookingID != nil, s.BookingID, created, created)
}
