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

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.TryInsertIdempotencyKeyParams) (int64, error)
	UpdateIdempotencyKeyCompleted(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateIdempotencyKeyCompletedParams) error
	DeleteIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteIdempotencyKeyParams) error
	DeleteExpiredIdempotencyKeys(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      sqlc.DBTX
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db sqlc.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
	}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt, now time.Time) (bool, error) {
	params := sqlc.TryInsertIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
		CreatedAt:   pgconv.TimeToPgtype(now),
	}

	n, err := r.queries.TryInsertIdempotencyKey(ctx, r.db, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}

	return n > 0, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, key, userID, bookingID uuid.UUID, at time.Time) error {
	params := sqlc.UpdateIdempotencyKeyCompletedParams{
		Key:             key,
		UserID:          userID,
		ResultBookingID: pgconv.UUIDToPgtype(bookingID),
		UpdatedAt:       pgconv.TimeToPgtype(at),
	}

	err := r.queries.UpdateIdempotencyKeyCompleted(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}

	return nil
}

// Release drops a key still in processing so the client can retry with it.
func (r *IdempotencyRepository) Release(ctx context.Context, key, userID uuid.UUID) error {
	err := r.queries.DeleteIdempotencyKey(ctx, r.db, sqlc.DeleteIdempotencyKeyParams{Key: key, UserID: userID})
	if err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, r.db, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}

	return count, nil
}
