package readstore

import (
	"context"

	"inspection-marketplace/internal/infra"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProposalViewQueries interface {
	ListProposalsByUser(ctx context.Context, db sqlc.DBTX, arg sqlc.ListProposalsByUserParams) ([]sqlc.DateProposals, error)
}

type ProposalReadStore struct {
	queries ProposalViewQueries
	db      sqlc.DBTX
}

func NewProposalReadStore(queries ProposalViewQueries, db sqlc.DBTX) *ProposalReadStore {
	return &ProposalReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ProposalReadStore) ListByUser(ctx context.Context, userID uuid.UUID, page *queries.Page, limit int) ([]*queries.ProposalView, error) {
	after, afterID := keyset(page)
	rows, err := r.queries.ListProposalsByUser(ctx, r.db, sqlc.ListProposalsByUserParams{
		UserID:         userID,
		AfterCreatedAt: after,
		AfterID:        afterID,
		Limit:          int32(limit), // #nosec G115
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list proposals", err)
	}

	result := make([]*queries.ProposalView, len(rows))
	for i, row := range rows {
		result[i] = rowToProposalView(row)
	}
	return result, nil
}

func rowToProposalView(row sqlc.DateProposals) *queries.ProposalView {
	return &queries.ProposalView{
		ID:           row.ID,
		BuyerID:      row.BuyerID,
		MechanicID:   row.MechanicID,
		ParentID:     pgconv.UUIDPtrFromPgtype(row.ParentID),
		RoundNumber:  int(row.RoundNumber),
		RespondedBy:  row.RespondedBy,
		Status:       row.Status,
		ProposedAt:   row.ProposedAt.Time,
		VehicleType:  row.VehicleType,
		VehicleBrand: row.VehicleBrand,
		VehicleModel: row.VehicleModel,
		VehicleYear:  int(row.VehicleYear),
		Address:      row.MeetingAddress,
		OBDRequested: row.ObdRequested,
		BookingID:    pgconv.UUIDPtrFromPgtype(row.BookingID),
		ExpiresAt:    row.ExpiresAt.Time,
		CreatedAt:    row.CreatedAt.Time,
	}
}
