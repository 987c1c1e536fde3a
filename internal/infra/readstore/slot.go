package readstore

import (
	"context"
	"time"

	"inspection-marketplace/internal/infra"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotViewQueries interface {
	ListFreeSlots(ctx context.Context, db sqlc.DBTX, arg sqlc.ListFreeSlotsParams) ([]sqlc.AvailabilitySlots, error)
}

type SlotReadStore struct {
	queries SlotViewQueries
	db      sqlc.DBTX
}

func NewSlotReadStore(queries SlotViewQueries, db sqlc.DBTX) *SlotReadStore {
	return &SlotReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *SlotReadStore) ListFree(ctx context.Context, mechanicID uuid.UUID, from, to time.Time) ([]*queries.SlotView, error) {
	rows, err := r.queries.ListFreeSlots(ctx, r.db, sqlc.ListFreeSlotsParams{
		MechanicID: mechanicID,
		From:       pgconv.TimeToPgtype(from),
		To:         pgconv.TimeToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list free slots", err)
	}

	result := make([]*queries.SlotView, len(rows))
	for i, row := range rows {
		result[i] = &queries.SlotView{
			ID:         row.ID,
			MechanicID: row.MechanicID,
			StartsAt:   row.StartsAt.Time,
			EndsAt:     row.EndsAt.Time,
		}
	}
	return result, nil
}
