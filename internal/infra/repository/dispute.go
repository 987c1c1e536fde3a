package repository

import (
	"context"

	"inspection-marketplace/internal/domain/dispute"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/infra/repository/converter"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type DisputeWriteQueries interface {
	InsertDispute(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertDisputeParams) error
	GetDisputeForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.DisputeCases, error)
	UpdateDispute(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateDisputeParams) (int64, error)
}

type DisputeRepository struct {
	queries DisputeWriteQueries
	db      sqlc.DBTX
}

func NewDisputeRepository(queries DisputeWriteQueries, db sqlc.DBTX) *DisputeRepository {
	return &DisputeRepository{
		queries: queries,
		db:      db,
	}
}

// Create relies on the one-open-dispute-per-booking unique index; a second open case surfaces as DUPLICATE_KEY.
func (r *DisputeRepository) Create(ctx context.Context, c *dispute.Case) error {
	if err := r.queries.InsertDispute(ctx, r.db, converter.DisputeToInsert(c)); err != nil {
		return infra.WrapRepoErr("failed to insert dispute", err)
	}
	return nil
}

func (r *DisputeRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*dispute.Case, error) {
	row, err := r.queries.GetDisputeForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, wrapLookupErr("dispute", err)
	}
	return converter.DisputeFromRow(row), nil
}

func (r *DisputeRepository) Save(ctx context.Context, c *dispute.Case) error {
	n, err := r.queries.UpdateDispute(ctx, r.db, converter.DisputeToUpdate(c))
	if err != nil {
		return infra.WrapRepoErr("failed to update dispute", err)
	}
	return expectOneRow("dispute", n)
}
