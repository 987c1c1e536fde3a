package repository

import (
	"context"

	"inspection-marketplace/internal/domain/inspection"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/infra/repository/converter"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
)

type ProofWriteQueries interface {
	InsertProof(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertProofParams) error
}

type ProofRepository struct {
	queries ProofWriteQueries
	db      sqlc.DBTX
}

func NewProofRepository(queries ProofWriteQueries, db sqlc.DBTX) *ProofRepository {
	return &ProofRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ProofRepository) Create(ctx context.Context, p *inspection.Proof) error {
	params, err := converter.ProofToInsert(p)
	if err != nil {
		return err
	}
	if err := r.queries.InsertProof(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to insert validation proof", err)
	}
	return nil
}
