package readstore

import (
	"context"

	"inspection-marketplace/internal/infra"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/usecase/queries"
)

type DisputeViewQueries interface {
	ListOpenDisputes(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOpenDisputesParams) ([]sqlc.DisputeCases, error)
}

type DisputeReadStore struct {
	queries DisputeViewQueries
	db      sqlc.DBTX
}

func NewDisputeReadStore(queries DisputeViewQueries, db sqlc.DBTX) *DisputeReadStore {
	return &DisputeReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *DisputeReadStore) ListOpen(ctx context.Context, limit, offset int) ([]*queries.DisputeView, error) {
	rows, err := r.queries.ListOpenDisputes(ctx, r.db, sqlc.ListOpenDisputesParams{
		Limit:  int32(limit),  // #nosec G115
		Offset: int32(offset), // #nosec G115
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list open disputes", err)
	}

	result := make([]*queries.DisputeView, len(rows))
	for i, row := range rows {
		result[i] = &queries.DisputeView{
			ID:          row.ID,
			BookingID:   row.BookingID,
			OpenedBy:    row.OpenedBy,
			Reason:      row.Reason,
			Description: row.Description,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt.Time,
		}
	}
	return result, nil
}
