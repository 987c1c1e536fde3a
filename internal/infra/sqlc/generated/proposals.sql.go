package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func scanProposal(row rowScanner) (DateProposals, error) {
	var i DateProposals
	err := row.Scan(
		&i.ID,
		&i.BuyerID,
		&i.MechanicID,
		&i.ParentID,
		&i.RoundNumber,
		&i.RespondedBy,
		&i.Status,
		&i.ProposedAt,
		&i.VehicleType,
		&i.VehicleBrand,
		&i.VehicleModel,
		&i.VehicleYear,
		&i.VehiclePlate,
		&i.MeetingLat,
		&i.MeetingLng,
		&i.MeetingAddress,
		&i.ObdRequested,
		&i.BookingID,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectProposals(rows pgx.Rows) ([]DateProposals, error) {
	defer rows.Close()
	items := []DateProposals{}
	for rows.Next() {
		i, err := scanProposal(rows)
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

const insertProposal = `-- name: InsertProposal :exec
INSERT INTO date_proposals (
    id, buyer_id, mechanic_id, parent_id, round_number, responded_by, status, proposed_at,
    vehicle_type, vehicle_brand, vehicle_model, vehicle_year, vehicle_plate,
    meeting_lat, meeting_lng, meeting_address, obd_requested, booking_id, expires_at,
    created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
)
`

type InsertProposalParams struct {
	ID             uuid.UUID          `json:"id"`
	BuyerID        uuid.UUID          `json:"buyer_id"`
	MechanicID     uuid.UUID          `json:"mechanic_id"`
	ParentID       pgtype.UUID        `json:"parent_id"`
	RoundNumber    int32              `json:"round_number"`
	RespondedBy    string             `json:"responded_by"`
	Status         string             `json:"status"`
	ProposedAt     pgtype.Timestamptz `json:"proposed_at"`
	VehicleType    string             `json:"vehicle_type"`
	VehicleBrand   string             `json:"vehicle_brand"`
	VehicleModel   string             `json:"vehicle_model"`
	VehicleYear    int32              `json:"vehicle_year"`
	VehiclePlate   string             `json:"vehicle_plate"`
	MeetingLat     float64            `json:"meeting_lat"`
	MeetingLng     float64            `json:"meeting_lng"`
	MeetingAddress string             `json:"meeting_address"`
	ObdRequested   bool               `json:"obd_requested"`
	BookingID      pgtype.UUID        `json:"booking_id"`
	ExpiresAt      pgtype.Timestamptz `json:"expires_at"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) InsertProposal(ctx context.Context, db DBTX, arg InsertProposalParams) error {
	_, err := db.Exec(ctx, insertProposal,
		arg.ID,
		arg.BuyerID,
		arg.MechanicID,
		arg.ParentID,
		arg.RoundNumber,
		arg.RespondedBy,
		arg.Status,
		arg.ProposedAt,
		arg.VehicleType,
		arg.VehicleBrand,
		arg.VehicleModel,
		arg.VehicleYear,
		arg.VehiclePlate,
		arg.MeetingLat,
		arg.MeetingLng,
		arg.MeetingAddress,
		arg.ObdRequested,
		arg.BookingID,
		arg.ExpiresAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getProposal = `-- name: GetProposal :one
SELECT id, buyer_id, mechanic_id, parent_id, round_number, responded_by, status, proposed_at,
       vehicle_type, vehicle_brand, vehicle_model, vehicle_year, vehicle_plate,
       meeting_lat, meeting_lng, meeting_address, obd_requested, booking_id, expires_at,
       created_at, updated_at
FROM date_proposals
WHERE id = $1
`

func (q *Queries) GetProposal(ctx context.Context, db DBTX, id uuid.UUID) (DateProposals, error) {
	row := db.QueryRow(ctx, getProposal, id)
	return scanProposal(row)
}

const getProposalForUpdate = `-- name: GetProposalForUpdate :one
SELECT id, buyer_id, mechanic_id, parent_id, round_number, responded_by, status, proposed_at,
       vehicle_type, vehicle_brand, vehicle_model, vehicle_year, vehicle_plate,
       meeting_lat, meeting_lng, meeting_address, obd_requested, booking_id, expires_at,
       created_at, updated_at
FROM date_proposals
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetProposalForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (DateProposals, error) {
	row := db.QueryRow(ctx, getProposalForUpdate, id)
	return scanProposal(row)
}

const updateProposal = `-- name: UpdateProposal :execrows
UPDATE date_proposals
SET status = $2, booking_id = $3, updated_at = $4
WHERE id = $1
`

type UpdateProposalParams struct {
	ID        uuid.UUID          `json:"id"`
	Status    string             `json:"status"`
	BookingID pgtype.UUID        `json:"booking_id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateProposal(ctx context.Context, db DBTX, arg UpdateProposalParams) (int64, error) {
	result, err := db.Exec(ctx, updateProposal, arg.ID, arg.Status, arg.BookingID, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listExpiredPendingProposals = `-- name: ListExpiredPendingProposals :many
SELECT id FROM date_proposals
WHERE status = 'pending' AND expires_at <= $1
ORDER BY expires_at
LIMIT $2
`

type ListExpiredPendingProposalsParams struct {
	Now   pgtype.Timestamptz `json:"now"`
	Limit int32              `json:"limit"`
}

func (q *Queries) ListExpiredPendingProposals(ctx context.Context, db DBTX, arg ListExpiredPendingProposalsParams) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listExpiredPendingProposals, arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectIDs(rows)
}

const listProposalsByUser = `-- name: ListProposalsByUser :many
SELECT id, buyer_id, mechanic_id, parent_id, round_number, responded_by, status, proposed_at,
       vehicle_type, vehicle_brand, vehicle_model, vehicle_year, vehicle_plate,
       meeting_lat, meeting_lng, meeting_address, obd_requested, booking_id, expires_at,
       created_at, updated_at
FROM date_proposals
WHERE (buyer_id = $1 OR mechanic_id = $1)
  AND ($2::timestamptz IS NULL OR (created_at, id) < ($2::timestamptz, $3::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $4
`

type ListProposalsByUserParams struct {
	UserID         uuid.UUID          `json:"user_id"`
	AfterCreatedAt pgtype.Timestamptz `json:"after_created_at"`
	AfterID        pgtype.UUID        `json:"after_id"`
	Limit          int32              `json:"limit"`
}

func (q *Queries) ListProposalsByUser(ctx context.Context, db DBTX, arg ListProposalsByUserParams) ([]DateProposals, error) {
	rows, err := db.Query(ctx, listProposalsByUser, arg.UserID, arg.AfterCreatedAt, arg.AfterID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectProposals(rows)
}
