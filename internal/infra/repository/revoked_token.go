package repository

import (
	"context"
	"time"

	"inspection-marketplace/internal/infra"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RevokedTokenWriteQueries interface {
	InsertRevokedToken(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertRevokedTokenParams) error
	DeleteExpiredRevokedTokens(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) (int64, error)
}

type RevokedTokenRepository struct {
	queries RevokedTokenWriteQueries
	db      sqlc.DBTX
}

func NewRevokedTokenRepository(queries RevokedTokenWriteQueries, db sqlc.DBTX) *RevokedTokenRepository {
	return &RevokedTokenRepository{
		queries: queries,
		db:      db,
	}
}

func (r *RevokedTokenRepository) Revoke(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) error {
	err := r.queries.InsertRevokedToken(ctx, r.db, sqlc.InsertRevokedTokenParams{
		Jti:       jti,
		UserID:    userID,
		ExpiresAt: pgconv.TimeToPgtype(expiresAt),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to revoke token", err)
	}
	return nil
}

func (r *RevokedTokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.queries.DeleteExpiredRevokedTokens(ctx, r.db, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge revoked tokens", err)
	}
	return n, nil
}
