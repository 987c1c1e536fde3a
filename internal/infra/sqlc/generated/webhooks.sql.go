package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertProcessedWebhookEvent = `-- name: InsertProcessedWebhookEvent :exec
INSERT INTO processed_webhook_events (event_id, event_type, processed_at)
VALUES ($1, $2, $3)
`

type InsertProcessedWebhookEventParams struct {
	EventID     string             `json:"event_id"`
	EventType   string             `json:"event_type"`
	ProcessedAt pgtype.Timestamptz `json:"processed_at"`
}

func (q *Queries) InsertProcessedWebhookEvent(ctx context.Context, db DBTX, arg InsertProcessedWebhookEventParams) error {
	_, err := db.Exec(ctx, insertProcessedWebhookEvent, arg.EventID, arg.EventType, arg.ProcessedAt)
	return err
}

const deleteProcessedWebhookEventsBefore = `-- name: DeleteProcessedWebhookEventsBefore :execrows
DELETE FROM processed_webhook_events WHERE processed_at < $1
`

func (q *Queries) DeleteProcessedWebhookEventsBefore(ctx context.Context, db DBTX, processedBefore pgtype.Timestamptz) (int64, error) {
	result, err := db.Exec(ctx, deleteProcessedWebhookEventsBefore, processedBefore)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
