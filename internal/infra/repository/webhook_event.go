package repository

import (
	"context"
	"time"

	"inspection-marketplace/internal/infra"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type WebhookEventWriteQueries interface {
	InsertProcessedWebhookEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertProcessedWebhookEventParams) error
	DeleteProcessedWebhookEventsBefore(ctx context.Context, db sqlc.DBTX, processedBefore pgtype.Timestamptz) (int64, error)
}

type WebhookEventRepository struct {
	queries WebhookEventWriteQueries
	db      sqlc.DBTX
}

func NewWebhookEventRepository(queries WebhookEventWriteQueries, db sqlc.DBTX) *WebhookEventRepository {
	return &WebhookEventRepository{
		queries: queries,
		db:      db,
	}
}

func (r *WebhookEventRepository) Record(ctx context.Context, eventID, eventType string, at time.Time) error {
	err := r.queries.InsertProcessedWebhookEvent(ctx, r.db, sqlc.InsertProcessedWebhookEventParams{
		EventID:     eventID,
		EventType:   eventType,
		ProcessedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to record webhook event", err)
	}
	return nil
}

func (r *WebhookEventRepository) PurgeBefore(ctx context.Context, before time.Time) (int64, error) {
	n, err := r.queries.DeleteProcessedWebhookEventsBefore(ctx, r.db, pgconv.TimeToPgtype(before))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge webhook events", err)
	}
	return n, nil
}
