package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func scanDispute(row rowScanner) (DisputeCases, error) {
	var i DisputeCases
	err := row.Scan(
		&i.ID,
		&i.BookingID,
		&i.OpenedBy,
		&i.Reason,
		&i.Description,
		&i.Status,
		&i.ResolutionNote,
		&i.ResolvedBy,
		&i.ResolvedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectDisputes(rows pgx.Rows) ([]DisputeCases, error) {
	defer rows.Close()
	items := []DisputeCases{}
	for rows.Next() {
		i, err := scanDispute(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertDispute = `-- name: InsertDispute :exec
INSERT INTO dispute_cases (id, booking_id, opened_by, reason, description, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
`

type InsertDisputeParams struct {
	ID          uuid.UUID          `json:"id"`
	BookingID   uuid.UUID          `json:"booking_id"`
	OpenedBy    uuid.UUID          `json:"opened_by"`
	Reason      string             `json:"reason"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) InsertDispute(ctx context.Context, db DBTX, arg InsertDisputeParams) error {
	_, err := db.Exec(ctx, insertDispute,
		arg.ID,
		arg.BookingID,
		arg.OpenedBy,
		arg.Reason,
		arg.Description,
		arg.Status,
		arg.CreatedAt,
	)
	return err
}

const getDispute = `-- name: GetDispute :one
SELECT id, booking_id, opened_by, reason, description, status, resolution_note,
       resolved_by, resolved_at, created_at, updated_at
FROM dispute_cases
WHERE id = $1
`

func (q *Queries) GetDispute(ctx context.Context, db DBTX, id uuid.UUID) (DisputeCases, error) {
	row := db.QueryRow(ctx, getDispute, id)
	return scanDispute(row)
}

const getDisputeForUpdate = `-- name: GetDisputeForUpdate :one
SELECT id, booking_id, opened_by, reason, description, status, resolution_note,
       resolved_by, resolved_at, created_at, updated_at
FROM dispute_cases
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetDisputeForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (DisputeCases, error) {
	row := db.QueryRow(ctx, getDisputeForUpdate, id)
	return scanDispute(row)
}

const updateDispute = `-- name: UpdateDispute :execrows
UPDATE dispute_cases
SET status = $2, resolution_note = $3, resolved_by = $4, resolved_at = $5, updated_at = $6
WHERE id = $1
`

type UpdateDisputeParams struct {
	ID             uuid.UUID          `json:"id"`
	Status         string             `json:"status"`
	ResolutionNote pgtype.Text        `json:"resolution_note"`
	ResolvedBy     pgtype.UUID        `json:"resolved_by"`
	ResolvedAt     pgtype.Timestamptz `json:"resolved_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateDispute(ctx context.Context, db DBTX, arg UpdateDisputeParams) (int64, error) {
	result, err := db.Exec(ctx, updateDispute,
		arg.ID,
		arg.Status,
		arg.ResolutionNote,
		arg.ResolvedBy,
		arg.ResolvedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listOpenDisputes = `-- name: ListOpenDisputes :many
SELECT id, booking_id, opened_by, reason, description, status, resolution_note,
       resolved_by, resolved_at, created_at, updated_at
FROM dispute_cases
WHERE status = 'open'
ORDER BY created_at
LIMIT $1 OFFSET $2
`

type ListOpenDisputesParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListOpenDisputes(ctx context.Context, db DBTX, arg ListOpenDisputesParams) ([]DisputeCases, error) {
	rows, err := db.Query(ctx, listOpenDisputes, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectDisputes(rows)
}
