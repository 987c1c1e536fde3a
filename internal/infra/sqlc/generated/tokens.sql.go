package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertRevokedToken = `-- name: InsertRevokedToken :exec
INSERT INTO revoked_tokens (jti, user_id, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (jti) DO NOTHING
`

type InsertRevokedTokenParams struct {
	Jti       string             `json:"jti"`
	UserID    uuid.UUID          `json:"user_id"`
	ExpiresAt pgtype.Timestamptz `json:"expires_at"`
}

func (q *Queries) InsertRevokedToken(ctx context.Context, db DBTX, arg InsertRevokedTokenParams) error {
	_, err := db.Exec(ctx, insertRevokedToken, arg.Jti, arg.UserID, arg.ExpiresAt)
	return err
}

const isTokenRevoked = `-- name: IsTokenRevoked :one
SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)
`

func (q *Queries) IsTokenRevoked(ctx context.Context, db DBTX, jti string) (bool, error) {
	row := db.QueryRow(ctx, isTokenRevoked, jti)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const deleteExpiredRevokedTokens = `-- name: DeleteExpiredRevokedTokens :execrows
DELETE FROM revoked_tokens WHERE expires_at < $1
`

func (q *Queries) DeleteExpiredRevokedTokens(ctx context.Context, db DBTX, now pgtype.Timestamptz) (int64, error) {
	result, err := db.Exec(ctx, deleteExpiredRevokedTokens, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
