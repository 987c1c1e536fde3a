package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func scanMechanicProfile(row rowScanner) (MechanicProfiles, error) {
	var i MechanicProfiles
	err := row.Scan(
		&i.UserID,
		&i.IdentityVerified,
		&i.AcceptedVehicleTypes,
		&i.ServiceRadiusKm,
		&i.FreeZoneKm,
		&i.BaseLat,
		&i.BaseLng,
		&i.PayoutAccountID,
		&i.PayoutsEnabled,
		&i.NoShowCount,
		&i.LastNoShowAt,
		&i.SuspendedUntil,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertMechanicProfile = `-- name: UpsertMechanicProfile :exec
INSERT INTO mechanic_profiles (
    user_id, accepted_vehicle_types, service_radius_km, free_zone_km,
    base_lat, base_lng, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
ON CONFLICT (user_id) DO UPDATE
SET accepted_vehicle_types = EXCLUDED.accepted_vehicle_types,
    service_radius_km = EXCLUDED.service_radius_km,
    free_zone_km = EXCLUDED.free_zone_km,
    base_lat = EXCLUDED.base_lat,
    base_lng = EXCLUDED.base_lng,
    updated_at = EXCLUDED.updated_at
`

type UpsertMechanicProfileParams struct {
	UserID               uuid.UUID          `json:"user_id"`
	AcceptedVehicleTypes []string           `json:"accepted_vehicle_types"`
	ServiceRadiusKm      float64            `json:"service_radius_km"`
	FreeZoneKm           pgtype.Numeric     `json:"free_zone_km"`
	BaseLat              float64            `json:"base_lat"`
	BaseLng              float64            `json:"base_lng"`
	UpdatedAt            pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpsertMechanicProfile(ctx context.Context, db DBTX, arg UpsertMechanicProfileParams) error {
	_, err := db.Exec(ctx, upsertMechanicProfile,
		arg.UserID,
		arg.AcceptedVehicleTypes,
		arg.ServiceRadiusKm,
		arg.FreeZoneKm,
		arg.BaseLat,
		arg.BaseLng,
		arg.UpdatedAt,
	)
	return err
}

const getMechanicProfile = `-- name: GetMechanicProfile :one
SELECT user_id, identity_verified, accepted_vehicle_types, service_radius_km, free_zone_km,
       base_lat, base_lng, payout_account_id, payouts_enabled, no_show_count, last_no_show_at,
       suspended_until, is_active, created_at, updated_at
FROM mechanic_profiles
WHERE user_id = $1
`

func (q *Queries) GetMechanicProfile(ctx context.Context, db DBTX, userID uuid.UUID) (MechanicProfiles, error) {
	row := db.QueryRow(ctx, getMechanicProfile, userID)
	return scanMechanicProfile(row)
}

const getMechanicProfileForUpdate = `-- name: GetMechanicProfileForUpdate :one
SELECT user_id, identity_verified, accepted_vehicle_types, service_radius_km, free_zone_km,
       base_lat, base_lng, payout_account_id, payouts_enabled, no_show_count, last_no_show_at,
       suspended_until, is_active, created_at, updated_at
FROM mechanic_profiles
WHERE user_id = $1
FOR UPDATE
`

func (q *Queries) GetMechanicProfileForUpdate(ctx context.Context, db DBTX, userID uuid.UUID) (MechanicProfiles, error) {
	row := db.QueryRow(ctx, getMechanicProfileForUpdate, userID)
	return scanMechanicProfile(row)
}

const getMechanicProfileByPayoutAccountForUpdate = `-- name: GetMechanicProfileByPayoutAccountForUpdate :one
SELECT user_id, identity_verified, accepted_vehicle_types, service_radius_km, free_zone_km,
       base_lat, base_lng, payout_account_id, payouts_enabled, no_show_count, last_no_show_at,
       suspended_until, is_active, created_at, updated_at
FROM mechanic_profiles
WHERE payout_account_id = $1
FOR UPDATE
`

func (q *Queries) GetMechanicProfileByPayoutAccountForUpdate(ctx context.Context, db DBTX, payoutAccountID pgtype.Text) (MechanicProfiles, error) {
	row := db.QueryRow(ctx, getMechanicProfileByPayoutAccountForUpdate, payoutAccountID)
	return scanMechanicProfile(row)
}

const updateMechanicProfile = `-- name: UpdateMechanicProfile :execrows
UPDATE mechanic_profiles
SET identity_verified = $2,
    payout_account_id = $3,
    payouts_enabled = $4,
    no_show_count = $5,
    last_no_show_at = $6,
    suspended_until = $7,
    is_active = $8,
    updated_at = $9
WHERE user_id = $1
`

type UpdateMechanicProfileParams struct {
	UserID           uuid.UUID          `json:"user_id"`
	IdentityVerified bool               `json:"identity_verified"`
	PayoutAccountID  pgtype.Text        `json:"payout_account_id"`
	PayoutsEnabled   bool               `json:"payouts_enabled"`
	NoShowCount      int32              `json:"no_show_count"`
	LastNoShowAt     pgtype.Timestamptz `json:"last_no_show_at"`
	SuspendedUntil   pgtype.Timestamptz `json:"suspended_until"`
	IsActive         bool               `json:"is_active"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateMechanicProfile(ctx context.Context, db DBTX, arg UpdateMechanicProfileParams) (int64, error) {
	result, err := db.Exec(ctx, updateMechanicProfile,
		arg.UserID,
		arg.IdentityVerified,
		arg.PayoutAccountID,
		arg.PayoutsEnabled,
		arg.NoShowCount,
		arg.LastNoShowAt,
		arg.SuspendedUntil,
		arg.IsActive,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listMechanicsForNoShowDecay = `-- name: ListMechanicsForNoShowDecay :many
SELECT user_id FROM mechanic_profiles
WHERE no_show_count > 0 AND last_no_show_at < $1
ORDER BY last_no_show_at
LIMIT $2
`

type ListMechanicsForNoShowDecayParams struct {
	LastNoShowBefore pgtype.Timestamptz `json:"last_no_show_before"`
	Limit            int32              `json:"limit"`
}

func (q *Queries) ListMechanicsForNoShowDecay(ctx context.Context, db DBTX, arg ListMechanicsForNoShowDecayParams) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listMechanicsForNoShowDecay, arg.LastNoShowBefore, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectIDs(rows)
}

