package repository

import (
	"context"
	"time"

	"inspection-marketplace/internal/infra"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationWriteQueries interface {
	InsertNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertNotificationJobParams) (int64, error)
	ClaimDueNotificationJobs(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimDueNotificationJobsParams) ([]sqlc.NotificationJobs, error)
	MarkNotificationJobSent(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkNotificationJobSentParams) error
	MarkNotificationJobFailed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkNotificationJobFailedParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
	db      sqlc.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db sqlc.DBTX) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *NotificationRepository) Enqueue(ctx context.Context, job shared.NotificationJob) (bool, error) {
	params := sqlc.InsertNotificationJobParams{
		Kind:      string(job.Kind),
		Topic:     string(job.Topic),
		DedupeKey: job.DedupeKey,
		Payload:   job.Payload,
		RunAt:     pgtype.Timestamptz{Time: job.RunAt, Valid: true},
		CreatedAt: pgtype.Timestamptz{Time: job.CreatedAt, Valid: true},
	}

	n, err := r.queries.InsertNotificationJob(ctx, r.db, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to enqueue notification job", err)
	}

	return n > 0, nil
}

func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	rows, err := r.queries.ClaimDueNotificationJobs(ctx, r.db, sqlc.ClaimDueNotificationJobsParams{
		Now:   pgconv.TimeToPgtype(now),
		Limit: int32(limit), // #nosec G115
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	jobs := make([]shared.NotificationJob, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, shared.NotificationJob{
			ID:        row.ID,
			Kind:      shared.NotificationKind(row.Kind),
			Topic:     shared.NotificationTopic(row.Topic),
			DedupeKey: row.DedupeKey,
			Payload:   row.Payload,
			RunAt:     row.RunAt.Time,
			Attempts:  int(row.Attempts),
			CreatedAt: row.CreatedAt.Time,
		})
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	err := r.queries.MarkNotificationJobSent(ctx, r.db, sqlc.MarkNotificationJobSentParams{
		ID:        id,
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string, retryAt time.Time, maxAttempts int, at time.Time) error {
	params := sqlc.MarkNotificationJobFailedParams{
		ID:          id,
		LastError:   pgconv.StringToPgtype(reason),
		RetryAt:     pgconv.TimeToPgtype(retryAt),
		MaxAttempts: int32(maxAttempts), // #nosec G115
		UpdatedAt:   pgconv.TimeToPgtype(at),
	}

	err := r.queries.MarkNotificationJobFailed(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
