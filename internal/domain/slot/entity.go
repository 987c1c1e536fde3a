package slot

import (
	"time"

	"inspection-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

const MaxDuration = 12 * time.Hour

var (
	ErrInvalidWindow = errs.New("slot must end after it starts and last at most 12h")
	ErrInPast        = errs.New("slot cannot start in the past")
	ErrOverlap       = errs.New("slot overlaps an existing slot")
	ErrAlreadyBooked = errs.New("slot already booked")
	ErrNotHeldBy     = errs.New("slot is not held by this booking")
)

type Slot struct {
	id         uuid.UUID
	mechanicID uuid.UUID
	startsAt   time.Time
	endsAt     time.Time
	isBooked   bool
	bookingID  *uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

func NewSlot(mechanicID uuid.UUID, startsAt, endsAt, now time.Time) (*Slot, error) {
	if !endsAt.After(startsAt) || endsAt.Sub(startsAt) > MaxDuration {
		return nil, ErrInvalidWindow
	}
	if !startsAt.After(now) {
		return nil, ErrInPast
	}
	return &Slot{
		id:         uuid.New(),
		mechanicID: mechanicID,
		startsAt:   startsAt.UTC(),
		endsAt:     endsAt.UTC(),
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func Reconstruct(id, mechanicID uuid.UUID, startsAt, endsAt time.Time, isBooked bool, bookingID *uuid.UUID, createdAt, updatedAt time.Time) *Slot {
	return &Slot{
		id:         id,
		mechanicID: mechanicID,
		startsAt:   startsAt,
		endsAt:     endsAt,
		isBooked:   isBooked,
		bookingID:  bookingID,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (s *Slot) Overlaps(start, end time.Time) bool {
	return s.startsAt.Before(end) && start.Before(s.endsAt)
}

// BufferWindow is the span whose slots are held alongside this one for travel time.
func (s *Slot) BufferWindow(buffer time.Duration) (time.Time, time.Time) {
	return s.startsAt.Add(-buffer), s.endsAt.Add(buffer)
}

func (s *Slot) Book(bookingID uuid.UUID, now time.Time) error {
	if s.isBooked {
		return ErrAlreadyBooked
	}
	s.isBooked = true
	s.bookingID = &bookingID
	s.updatedAt = now
	return nil
}

func (s *Slot) Release(bookingID uuid.UUID, now time.Time) error {
	if !s.isBooked || s.bookingID == nil || *s.bookingID != bookingID {
		return ErrNotHeldBy
	}
	s.isBooked = false
	s.bookingID = nil
	s.updatedAt = now
	return nil
}

func (s *Slot) ID() uuid.UUID         { return s.id }
func (s *Slot) MechanicID() uuid.UUID { return s.mechanicID }
func (s *Slot) StartsAt() time.Time   { return s.startsAt }
func (s *Slot) EndsAt() time.Time     { return s.endsAt }
func (s *Slot) IsBooked() bool        { return s.isBooked }
func (s *Slot) BookingID() *uuid.UUID { return s.bookingID }
func (s *Slot) CreatedAt() time.Time  { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time  { return s.updatedAt }
