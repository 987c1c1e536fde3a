package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (Bookings, error) {
	var i Bookings
	err := row.Scan(
		&i.ID,
		&i.BuyerID,
		&i.MechanicID,
		&i.SlotID,
		&i.Status,
		&i.ScheduledAt,
		&i.VehicleType,
		&i.VehicleBrand,
		&i.VehicleModel,
		&i.VehicleYear,
		&i.VehiclePlate,
		&i.MeetingLat,
		&i.MeetingLng,
		&i.MeetingAddress,
		&i.DistanceKm,
		&i.ObdRequested,
		&i.BasePrice,
		&i.TravelFees,
		&i.ProcessorFee,
		&i.TotalPrice,
		&i.CommissionRate,
		&i.CommissionAmount,
		&i.MechanicPayout,
		&i.PaymentIntentID,
		&i.PaymentStatus,
		&i.CheckInCodeHash,
		&i.CheckInAttempts,
		&i.CheckInCodeIssuedAt,
		&i.ConfirmedAt,
		&i.CheckedInAt,
		&i.CheckedOutAt,
		&i.ValidatedAt,
		&i.PaymentReleasedAt,
		&i.CancelledAt,
		&i.CancelledBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectBookings(rows pgx.Rows) ([]Bookings, error) {
	defer rows.Close()
	items := []Bookings{}
	for rows.Next() {
		i, err := scanBooking(rows)
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

const insertBooking = `-- name: InsertBooking :exec
INSERT INTO bookings (
    id, buyer_id, mechanic_id, slot_id, status, scheduled_at, vehicle_type,
    vehicle_brand, vehicle_model, vehicle_year, vehicle_plate, meeting_lat,
    meeting_lng, meeting_address, distance_km, obd_requested, base_price,
    travel_fees, processor_fee, total_price, commission_rate, commission_amount,
    mechanic_payout, payment_intent_id, payment_status, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
    $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
)
`

type InsertBookingParams struct {
	ID               uuid.UUID          `json:"id"`
	BuyerID          uuid.UUID          `json:"buyer_id"`
	MechanicID       uuid.UUID          `json:"mechanic_id"`
	SlotID           pgtype.UUID        `json:"slot_id"`
	Status           string             `json:"status"`
	ScheduledAt      pgtype.Timestamptz `json:"scheduled_at"`
	VehicleType      string             `json:"vehicle_type"`
	VehicleBrand     string             `json:"vehicle_brand"`
	VehicleModel     string             `json:"vehicle_model"`
	VehicleYear      int32              `json:"vehicle_year"`
	VehiclePlate     string             `json:"vehicle_plate"`
	MeetingLat       float64            `json:"meeting_lat"`
	MeetingLng       float64            `json:"meeting_lng"`
	MeetingAddress   string             `json:"meeting_address"`
	DistanceKm       pgtype.Numeric     `json:"distance_km"`
	ObdRequested     bool               `json:"obd_requested"`
	BasePrice        pgtype.Numeric     `json:"base_price"`
	TravelFees       pgtype.Numeric     `json:"travel_fees"`
	ProcessorFee     pgtype.Numeric     `json:"processor_fee"`
	TotalPrice       pgtype.Numeric     `json:"total_price"`
	CommissionRate   pgtype.Numeric     `json:"commission_rate"`
	CommissionAmount pgtype.Numeric     `json:"commission_amount"`
	MechanicPayout   pgtype.Numeric     `json:"mechanic_payout"`
	PaymentIntentID  string             `json:"payment_intent_id"`
	PaymentStatus    string             `json:"payment_status"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) InsertBooking(ctx context.Context, db DBTX, arg InsertBookingParams) error {
	_, err := db.Exec(ctx, insertBooking,
		arg.ID,
		arg.BuyerID,
		arg.MechanicID,
		arg.SlotID,
		arg.Status,
		arg.ScheduledAt,
		arg.VehicleType,
		arg.VehicleBrand,
		arg.VehicleModel,
		arg.VehicleYear,
		arg.VehiclePlate,
		arg.MeetingLat,
		arg.MeetingLng,
		arg.MeetingAddress,
		arg.DistanceKm,
		arg.ObdRequested,
		arg.BasePrice,
		arg.TravelFees,
		arg.ProcessorFee,
		arg.TotalPrice,
		arg.CommissionRate,
		arg.CommissionAmount,
		arg.MechanicPayout,
		arg.PaymentIntentID,
		arg.PaymentStatus,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getBooking = `-- name: GetBooking :one
SELECT
    id, buyer_id, mechanic_id, slot_id, status, scheduled_at, vehicle_type,
    vehicle_brand, vehicle_model, vehicle_year, vehicle_plate, meeting_lat,
    meeting_lng, meeting_address, distance_km, obd_requested, base_price,
    travel_fees, processor_fee, total_price, commission_rate, commission_amount,
    mechanic_payout, payment_intent_id, payment_status, check_in_code_hash,
    check_in_attempts, check_in_code_issued_at, confirmed_at, checked_in_at,
    checked_out_at, validated_at, payment_released_at, cancelled_at,
    cancelled_by, created_at, updated_at
FROM bookings
WHERE id = $1
`

func (q *Queries) GetBooking(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	row := db.QueryRow(ctx, getBooking, id)
	return scanBooking(row)
}

const getBookingForUpdate = `-- name: GetBookingForUpdate :one
SELECT
    id, buyer_id, mechanic_id, slot_id, status, scheduled_at, vehicle_type,
    vehicle_brand, vehicle_model, vehicle_year, vehicle_plate, meeting_lat,
    meeting_lng, meeting_address, distance_km, obd_requested, base_price,
    travel_fees, processor_fee, total_price, commission_rate, commission_amount,
    mechanic_payout, payment_intent_id, payment_status, check_in_code_hash,
    check_in_attempts, check_in_code_issued_at, confirmed_at, checked_in_at,
    checked_out_at, validated_at, payment_released_at, cancelled_at,
    cancelled_by, created_at, updated_at
FROM bookings
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetBookingForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	row := db.QueryRow(ctx, getBookingForUpdate, id)
	return scanBooking(row)
}

const getBookingForUpdateSkipLocked = `-- name: GetBookingForUpdateSkipLocked :one
SELECT
    id, buyer_id, mechanic_id, slot_id, status, scheduled_at, vehicle_type,
    vehicle_brand, vehicle_model, vehicle_year, vehicle_plate, meeting_lat,
    meeting_lng, meeting_address, distance_km, obd_requested, base_price,
    travel_fees, processor_fee, total_price, commission_rate, commission_amount,
    mechanic_payout, payment_intent_id, payment_status, check_in_code_hash,
    check_in_attempts, check_in_code_issued_at, confirmed_at, checked_in_at,
    checked_out_at, validated_at, payment_released_at, cancelled_at,
    cancelled_by, created_at, updated_at
FROM bookings
WHERE id = $1
FOR UPDATE SKIP LOCKED
`

func (q *Queries) GetBookingForUpdateSkipLocked(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	row := db.QueryRow(ctx, getBookingForUpdateSkipLocked, id)
	return scanBooking(row)
}

const updateBooking = `-- name: UpdateBooking :execrows
UPDATE bookings
SET status = $2,
    payment_status = $3,
    check_in_code_hash = $4,
    check_in_attempts = $5,
    check_in_code_issued_at = $6,
    confirmed_at = $7,
    checked_in_at = $8,
    checked_out_at = $9,
    validated_at = $10,
    payment_released_at = $11,
    cancelled_at = $12,
    cancelled_by = $13,
    updated_at = $14
WHERE id = $1
`

type UpdateBookingParams struct {
	ID                  uuid.UUID          `json:"id"`
	Status              string             `json:"status"`
	PaymentStatus       string             `json:"payment_status"`
	CheckInCodeHash     pgtype.Text        `json:"check_in_code_hash"`
	CheckInAttempts     int32              `json:"check_in_attempts"`
	CheckInCodeIssuedAt pgtype.Timestamptz `json:"check_in_code_issued_at"`
	ConfirmedAt         pgtype.Timestamptz `json:"confirmed_at"`
	CheckedInAt         pgtype.Timestamptz `json:"checked_in_at"`
	CheckedOutAt        pgtype.Timestamptz `json:"checked_out_at"`
	ValidatedAt         pgtype.Timestamptz `json:"validated_at"`
	PaymentReleasedAt   pgtype.Timestamptz `json:"payment_released_at"`
	CancelledAt         pgtype.Timestamptz `json:"cancelled_at"`
	CancelledBy         pgtype.Text        `json:"cancelled_by"`
	UpdatedAt           pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateBooking(ctx context.Context, db DBTX, arg UpdateBookingParams) (int64, error) {
	result, err := db.Exec(ctx, updateBooking,
		arg.ID,
		arg.Status,
		arg.PaymentStatus,
		arg.CheckInCodeHash,
		arg.CheckInAttempts,
		arg.CheckInCodeIssuedAt,
		arg.ConfirmedAt,
		arg.CheckedInAt,
		arg.CheckedOutAt,
		arg.ValidatedAt,
		arg.PaymentReleasedAt,
		arg.CancelledAt,
		arg.CancelledBy,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getBookingIDByPaymentIntent = `-- name: GetBookingIDByPaymentIntent :one
SELECT id FROM bookings WHERE payment_intent_id = $1
`

func (q *Queries) GetBookingIDByPaymentIntent(ctx context.Context, db DBTX, paymentIntentID string) (uuid.UUID, error) {
	row := db.QueryRow(ctx, getBookingIDByPaymentIntent, paymentIntentID)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const listStalePendingBookings = `-- name: ListStalePendingBookings :many
SELECT id FROM bookings
WHERE status = 'pending_acceptance' AND created_at < $1
ORDER BY created_at
LIMIT $2
`

type ListStalePendingBookingsParams struct {
	CreatedBefore pgtype.Timestamptz `json:"created_before"`
	Limit         int32              `json:"limit"`
}

func (q *Queries) ListStalePendingBookings(ctx context.Context, db DBTX, arg ListStalePendingBookingsParams) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listStalePendingBookings, arg.CreatedBefore, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectIDs(rows)
}

const listOverdueValidatedBookings = `-- name: ListOverdueValidatedBookings :many
SELECT id FROM bookings
WHERE status = 'validated' AND validated_at < $1
ORDER BY validated_at
LIMIT $2
`

type ListOverdueValidatedBookingsParams struct {
	ValidatedBefore pgtype.Timestamptz `json:"validated_before"`
	Limit           int32              `json:"limit"`
}

func (q *Queries) ListOverdueValidatedBookings(ctx context.Context, db DBTX, arg ListOverdueValidatedBookingsParams) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listOverdueValidatedBookings, arg.ValidatedBefore, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectIDs(rows)
}

const listConfirmedBookingsInWindow = `-- name: ListConfirmedBookingsInWindow :many
SELECT
    id, buyer_id, mechanic_id, slot_id, status, scheduled_at, vehicle_type,
    vehicle_brand, vehicle_model, vehicle_year, vehicle_plate, meeting_lat,
    meeting_lng, meeting_address, distance_km, obd_requested, base_price,
    travel_fees, processor_fee, total_price, commission_rate, commission_amount,
    mechanic_payout, payment_intent_id, payment_status, check_in_code_hash,
    check_in_attempts, check_in_code_issued_at, confirmed_at, checked_in_at,
    checked_out_at, validated_at, payment_released_at, cancelled_at,
    cancelled_by, created_at, updated_at
FROM bookings
WHERE status = 'confirmed' AND scheduled_at >= $1 AND scheduled_at < $2
ORDER BY scheduled_at
`

type ListConfirmedBookingsInWindowParams struct {
	From pgtype.Timestamptz `json:"from"`
	To   pgtype.Timestamptz `json:"to"`
}

func (q *Queries) ListConfirmedBookingsInWindow(ctx context.Context, db DBTX, arg ListConfirmedBookingsInWindowParams) ([]Bookings, error) {
	rows, err := db.Query(ctx, listConfirmedBookingsInWindow, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

const listBookingsByBuyer = `-- name: ListBookingsByBuyer :many
SELECT
    id, buyer_id, mechanic_id, slot_id, status, scheduled_at, vehicle_type,
    vehicle_brand, vehicle_model, vehicle_year, vehicle_plate, meeting_lat,
    meeting_lng, meeting_address, distance_km, obd_requested, base_price,
    travel_fees, processor_fee, total_price, commission_rate, commission_amount,
    mechanic_payout, payment_intent_id, payment_status, check_in_code_hash,
    check_in_attempts, check_in_code_issued_at, confirmed_at, checked_in_at,
    checked_out_at, validated_at, payment_released_at, cancelled_at,
    cancelled_by, created_at, updated_at
FROM bookings
WHERE buyer_id = $1
  AND ($2::timestamptz IS NULL OR (created_at, id) < ($2::timestamptz, $3::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $4
`

type ListBookingsByBuyerParams struct {
	BuyerID        uuid.UUID          `json:"buyer_id"`
	AfterCreatedAt pgtype.Timestamptz `json:"after_created_at"`
	AfterID        pgtype.UUID        `json:"after_id"`
	Limit          int32              `json:"limit"`
}

func (q *Queries) ListBookingsByBuyer(ctx context.Context, db DBTX, arg ListBookingsByBuyerParams) ([]Bookings, error) {
	rows, err := db.Query(ctx, listBookingsByBuyer, arg.BuyerID, arg.AfterCreatedAt, arg.AfterID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

const listBookingsByMechanic = `-- name: ListBookingsByMechanic :many
SELECT
    id, buyer_id, mechanic_id, slot_id, status, scheduled_at, vehicle_type,
    vehicle_brand, vehicle_model, vehicle_year, vehicle_plate, meeting_lat,
    meeting_lng, meeting_address, distance_km, obd_requested, base_price,
    travel_fees, processor_fee, total_price, commission_rate, commission_amount,
    mechanic_payout, payment_intent_id, payment_status, check_in_code_hash,
    check_in_attempts, check_in_code_issued_at, confirmed_at, checked_in_at,
    checked_out_at, validated_at, payment_released_at, cancelled_at,
    cancelled_by, created_at, updated_at
FROM bookings
WHERE mechanic_id = $1
  AND ($2::timestamptz IS NULL OR (created_at, id) < ($2::timestamptz, $3::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $4
`

type ListBookingsByMechanicParams struct {
	MechanicID     uuid.UUID          `json:"mechanic_id"`
	AfterCreatedAt pgtype.Timestamptz `json:"after_created_at"`
	AfterID        pgtype.UUID        `json:"after_id"`
	Limit          int32              `json:"limit"`
}

func (q *Queries) ListBookingsByMechanic(ctx context.Context, db DBTX, arg ListBookingsByMechanicParams) ([]Bookings, error) {
	rows, err := db.Query(ctx, listBookingsByMechanic, arg.MechanicID, arg.AfterCreatedAt, arg.AfterID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

const listBookings = `-- name: ListBookings :many
SELECT
    id, buyer_id, mechanic_id, slot_id, status, scheduled_at, vehicle_type,
    vehicle_brand, vehicle_model, vehicle_year, vehicle_plate, meeting_lat,
    meeting_lng, meeting_address, distance_km, obd_requested, base_price,
    travel_fees, processor_fee, total_price, commission_rate, commission_amount,
    mechanic_payout, payment_intent_id, payment_status, check_in_code_hash,
    check_in_attempts, check_in_code_issued_at, confirmed_at, checked_in_at,
    checked_out_at, validated_at, payment_released_at, cancelled_at,
    cancelled_by, created_at, updated_at
FROM bookings
WHERE ($1::timestamptz IS NULL OR (created_at, id) < ($1::timestamptz, $2::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $3
`

type ListBookingsParams struct {
	AfterCreatedAt pgtype.Timestamptz `json:"after_created_at"`
	AfterID        pgtype.UUID        `json:"after_id"`
	Limit          int32              `json:"limit"`
}

func (q *Queries) ListBookings(ctx context.Context, db DBTX, arg ListBookingsParams) ([]Bookings, error) {
	rows, err := db.Query(ctx, listBookings, arg.AfterCreatedAt, arg.AfterID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}
