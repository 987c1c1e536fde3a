package commands

import (
	"context"
	"time"

	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/pkg/clock"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityCommands interface {
	CreateSlot(ctx context.Context, mechanicID uuid.UUID, startsAt, endsAt time.Time) (uuid.UUID, error)
}

type availabilityCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAvailabilityCommands(uow shared.UnitOfWork, clk clock.Clock) AvailabilityCommands {
	return &availabilityCommandsImpl{uow: uow, clock: clk}
}

// CreateSlot serializes concurrent creations for one mechanic on the profile row lock,
// so the overlap check and the insert cannot interleave.
func (a *availabilityCommandsImpl) CreateSlot(ctx context.Context, mechanicID uuid.UUID, startsAt, endsAt time.Time) (uuid.UUID, error) {
	s, err := slot.NewSlot(mechanicID, startsAt, endsAt, a.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Mechanics().GetForUpdate(ctx, mechanicID); err != nil {
			return notFound(err, ErrMechanicNotFound)
		}

		n, err := tx.Slots().CountOverlapping(ctx, mechanicID, s.StartsAt(), s.EndsAt())
		if err != nil {
			return err
		}
		if n > 0 {
			return slot.ErrOverlap
		}

		return tx.Slots().Create(ctx, s)
	})
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "create slot")
	}
	return s.ID(), nil
}
