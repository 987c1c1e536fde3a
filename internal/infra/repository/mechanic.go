package repository

import (
	"context"
	"time"

	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/infra/repository/converter"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type MechanicWriteQueries interface {
	UpsertMechanicProfile(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertMechanicProfileParams) error
	GetMechanicProfileForUpdate(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (sqlc.MechanicProfiles, error)
	GetMechanicProfileByPayoutAccountForUpdate(ctx context.Context, db sqlc.DBTX, payoutAccountID pgtype.Text) (sqlc.MechanicProfiles, error)
	UpdateMechanicProfile(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateMechanicProfileParams) (int64, error)
	ListMechanicsForNoShowDecay(ctx context.Context, db sqlc.DBTX, arg sqlc.ListMechanicsForNoShowDecayParams) ([]uuid.UUID, error)
}

type MechanicRepository struct {
	queries MechanicWriteQueries
	db      sqlc.DBTX
}

func NewMechanicRepository(queries MechanicWriteQueries, db sqlc.DBTX) *MechanicRepository {
	return &MechanicRepository{
		queries: queries,
		db:      db,
	}
}

func (r *MechanicRepository) Upsert(ctx context.Context, p *mechanic.Profile) error {
	if err := r.queries.UpsertMechanicProfile(ctx, r.db, converter.MechanicToUpsert(p)); err != nil {
		return infra.WrapRepoErr("failed to upsert mechanic profile", err)
	}
	return nil
}

func (r *MechanicRepository) GetForUpdate(ctx context.Context, userID uuid.UUID) (*mechanic.Profile, error) {
	row, err := r.queries.GetMechanicProfileForUpdate(ctx, r.db, userID)
	if err != nil {
		return nil, wrapLookupErr("mechanic profile", err)
	}
	return converter.MechanicFromRow(row)
}

func (r *MechanicRepository) GetByPayoutAccountForUpdate(ctx context.Context, accountID string) (*mechanic.Profile, error) {
	row, err := r.queries.GetMechanicProfileByPayoutAccountForUpdate(ctx, r.db, pgconv.StringToPgtype(accountID))
	if err != nil {
		return nil, wrapLookupErr("mechanic profile", err)
	}
	return converter.MechanicFromRow(row)
}

func (r *MechanicRepository) Save(ctx context.Context, p *mechanic.Profile) error {
	n, err := r.queries.UpdateMechanicProfile(ctx, r.db, converter.MechanicToUpdate(p))
	if err != nil {
		return infra.WrapRepoErr("failed to update mechanic profile", err)
	}
	return expectOneRow("mechanic profile", n)
}

func (r *MechanicRepository) ListNoShowDecayCandidates(ctx context.Context, lastNoShowBefore time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListMechanicsForNoShowDecay(ctx, r.db, sqlc.ListMechanicsForNoShowDecayParams{
		LastNoShowBefore: pgconv.TimeToPgtype(lastNoShowBefore),
		Limit:            int32(limit), // #nosec G115
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list no-show decay candidates", err)
	}
	return ids, nil
}
