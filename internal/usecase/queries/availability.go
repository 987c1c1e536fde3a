package queries

import (
	"context"
	"time"

	"inspection-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

// MaxAvailabilityRange bounds a single free-slot listing.
const MaxAvailabilityRange = 31 * 24 * time.Hour

var ErrInvalidRange = errs.New("invalid availability range")

type SlotReadStore interface {
	ListFree(ctx context.Context, mechanicID uuid.UUID, from, to time.Time) ([]*SlotView, error)
}

type AvailabilityQueries interface {
	ListFree(ctx context.Context, mechanicID uuid.UUID, from, to time.Time) ([]*SlotView, error)
}

type availabilityQueriesImpl struct {
	store SlotReadStore
}

func NewAvailabilityQueries(store SlotReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store}
}

func (q *availabilityQueriesImpl) ListFree(ctx context.Context, mechanicID uuid.UUID, from, to time.Time) ([]*SlotView, error) {
	if !to.After(from) || to.Sub(from) > MaxAvailabilityRange {
		return nil, ErrInvalidRange
	}
	return q.store.ListFree(ctx, mechanicID, from, to)
}
