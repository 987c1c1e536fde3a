package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertNotificationJob = `-- name: InsertNotificationJob :execrows
INSERT INTO notification_jobs (kind, topic, dedupe_key, payload, run_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (dedupe_key) DO NOTHING
`

type InsertNotificationJobParams struct {
	Kind      string             `json:"kind"`
	Topic     string             `json:"topic"`
	DedupeKey string             `json:"dedupe_key"`
	Payload   []byte             `json:"payload"`
	RunAt     pgtype.Timestamptz `json:"run_at"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) InsertNotificationJob(ctx context.Context, db DBTX, arg InsertNotificationJobParams) (int64, error) {
	result, err := db.Exec(ctx, insertNotificationJob,
		arg.Kind,
		arg.Topic,
		arg.DedupeKey,
		arg.Payload,
		arg.RunAt,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const claimDueNotificationJobs = `-- name: ClaimDueNotificationJobs :many
SELECT id, kind, topic, dedupe_key, payload, run_at, status, attempts, last_error, created_at, updated_at
FROM notification_jobs
WHERE status = 'queued' AND run_at <= $1
ORDER BY run_at
LIMIT $2
FOR UPDATE SKIP LOCKED
`

type ClaimDueNotificationJobsParams struct {
	Now   pgtype.Timestamptz `json:"now"`
	Limit int32              `json:"limit"`
}

func (q *Queries) ClaimDueNotificationJobs(ctx context.Context, db DBTX, arg ClaimDueNotificationJobsParams) ([]NotificationJobs, error) {
	rows, err := db.Query(ctx, claimDueNotificationJobs, arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []NotificationJobs{}
	for rows.Next() {
		var i NotificationJobs
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.Topic,
			&i.DedupeKey,
			&i.Payload,
			&i.RunAt,
			&i.Status,
			&i.Attempts,
			&i.LastError,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markNotificationJobSent = `-- name: MarkNotificationJobSent :exec
UPDATE notification_jobs
SET status = 'sent', attempts = attempts + 1, last_error = NULL, updated_at = $2
WHERE id = $1
`

type MarkNotificationJobSentParams struct {
	ID        uuid.UUID          `json:"id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) MarkNotificationJobSent(ctx context.Context, db DBTX, arg MarkNotificationJobSentParams) error {
	_, err := db.Exec(ctx, markNotificationJobSent, arg.ID, arg.UpdatedAt)
	return err
}

const markNotificationJobFailed = `-- name: MarkNotificationJobFailed :exec
UPDATE notification_jobs
SET attempts = attempts + 1,
    last_error = $2,
    run_at = $3,
    status = CASE WHEN attempts + 1 >= $4 THEN 'failed' ELSE 'queued' END,
    updated_at = $5
WHERE id = $1
`

type MarkNotificationJobFailedParams struct {
	ID          uuid.UUID          `json:"id"`
	LastError   pgtype.Text        `json:"last_error"`
	RetryAt     pgtype.Timestamptz `json:"retry_at"`
	MaxAttempts int32              `json:"max_attempts"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) MarkNotificationJobFailed(ctx context.Context, db DBTX, arg MarkNotificationJobFailedParams) error {
	_, err := db.Exec(ctx, markNotificationJobFailed,
		arg.ID,
		arg.LastError,
		arg.RetryAt,
		arg.MaxAttempts,
		arg.UpdatedAt,
	)
	return err
}
