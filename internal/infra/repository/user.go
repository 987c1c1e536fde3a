package repository

import (
	"context"
	"time"

	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/infra/repository/converter"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserWriteQueries interface {
	CreateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateUserParams) error
	MarkUserEmailVerified(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkUserEmailVerifiedParams) (int64, error)
}

type UserRepository struct {
	queries UserWriteQueries
	db      sqlc.DBTX
}

func NewUserRepository(queries UserWriteQueries, db sqlc.DBTX) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      db,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if err := r.queries.CreateUser(ctx, r.db, converter.UserToCreate(u)); err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	n, err := r.queries.MarkUserEmailVerified(ctx, r.db, sqlc.MarkUserEmailVerifiedParams{
		ID:        id,
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark email verified", err)
	}
	return expectOneRow("user", n)
}
