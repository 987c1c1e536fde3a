package repository

import (
	"context"
	"time"

	"inspection-marketplace/internal/domain/proposal"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/infra/repository/converter"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ProposalWriteQueries interface {
	InsertProposal(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertProposalParams) error
	GetProposalForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.DateProposals, error)
	UpdateProposal(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateProposalParams) (int64, error)
	ListExpiredPendingProposals(ctx context.Context, db sqlc.DBTX, arg sqlc.ListExpiredPendingProposalsParams) ([]uuid.UUID, error)
}

type ProposalRepository struct {
	queries ProposalWriteQueries
	db      sqlc.DBTX
}

func NewProposalRepository(queries ProposalWriteQueries, db sqlc.DBTX) *ProposalRepository {
	return &ProposalRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ProposalRepository) Create(ctx context.Context, p *proposal.Proposal) error {
	if err := r.queries.InsertProposal(ctx, r.db, converter.ProposalToInsert(p)); err != nil {
		return infra.WrapRepoErr("failed to insert proposal", err)
	}
	return nil
}

func (r *ProposalRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*proposal.Proposal, error) {
	row, err := r.queries.GetProposalForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, wrapLookupErr("proposal", err)
	}
	return converter.ProposalFromRow(row), nil
}

func (r *ProposalRepository) Save(ctx context.Context, p *proposal.Proposal) error {
	n, err := r.queries.UpdateProposal(ctx, r.db, converter.ProposalToUpdate(p))
	if err != nil {
		return infra.WrapRepoErr("failed to update proposal", err)
	}
	return expectOneRow("proposal", n)
}

func (r *ProposalRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListExpiredPendingProposals(ctx, r.db, sqlc.ListExpiredPendingProposalsParams{
		Now:   pgconv.TimeToPgtype(now),
		Limit: int32(limit), // #nosec G115
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired proposals", err)
	}
	return ids, nil
}
