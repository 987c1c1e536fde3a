package converter

import (
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"
	"inspection-marketplace/internal/usecase/shared"
)

func IdempotencyFromRow(row sqlc.IdempotencyKeys) *shared.IdempotencyRecord {
	return &shared.IdempotencyRecord{
		Key:             row.Key,
		UserID:          row.UserID,
		Endpoint:        row.Endpoint,
		Status:          row.Status,
		RequestHash:     row.RequestHash,
		ResultBookingID: pgconv.UUIDPtrFromPgtype(row.ResultBookingID),
		ExpiresAt:       row.ExpiresAt.Time,
	}
}
