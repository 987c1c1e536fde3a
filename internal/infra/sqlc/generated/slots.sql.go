package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func scanSlot(row rowScanner) (AvailabilitySlots, error) {
	var i AvailabilitySlots
	err := row.Scan(
		&i.ID,
		&i.MechanicID,
		&i.StartsAt,
		&i.EndsAt,
		&i.IsBooked,
		&i.BookingID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectSlots(rows pgx.Rows) ([]AvailabilitySlots, error) {
	defer rows.Close()
	items := []AvailabilitySlots{}
	for rows.Next() {
		i, err := scanSlot(rows)
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

const createSlot = `-- name: CreateSlot :exec
INSERT INTO availability_slots (id, mechanic_id, starts_at, ends_at, is_booked, booking_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
`

type CreateSlotParams struct {
	ID         uuid.UUID          `json:"id"`
	MechanicID uuid.UUID          `json:"mechanic_id"`
	StartsAt   pgtype.Timestamptz `json:"starts_at"`
	EndsAt     pgtype.Timestamptz `json:"ends_at"`
	IsBooked   bool               `json:"is_booked"`
	BookingID  pgtype.UUID        `json:"booking_id"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateSlot(ctx context.Context, db DBTX, arg CreateSlotParams) error {
	_, err := db.Exec(ctx, createSlot,
		arg.ID,
		arg.MechanicID,
		arg.StartsAt,
		arg.EndsAt,
		arg.IsBooked,
		arg.BookingID,
		arg.CreatedAt,
	)
	return err
}

const getSlot = `-- name: GetSlot :one
SELECT id, mechanic_id, starts_at, ends_at, is_booked, booking_id, created_at, updated_at
FROM availability_slots
WHERE id = $1
`

func (q *Queries) GetSlot(ctx context.Context, db DBTX, id uuid.UUID) (AvailabilitySlots, error) {
	row := db.QueryRow(ctx, getSlot, id)
	return scanSlot(row)
}

const getSlotForUpdate = `-- name: GetSlotForUpdate :one
SELECT id, mechanic_id, starts_at, ends_at, is_booked, booking_id, created_at, updated_at
FROM availability_slots
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetSlotForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (AvailabilitySlots, error) {
	row := db.QueryRow(ctx, getSlotForUpdate, id)
	return scanSlot(row)
}

const countOverlappingSlots = `-- name: CountOverlappingSlots :one
SELECT count(*) FROM availability_slots
WHERE mechanic_id = $1 AND starts_at < $3 AND ends_at > $2
`

type CountOverlappingSlotsParams struct {
	MechanicID uuid.UUID          `json:"mechanic_id"`
	StartsAt   pgtype.Timestamptz `json:"starts_at"`
	EndsAt     pgtype.Timestamptz `json:"ends_at"`
}

func (q *Queries) CountOverlappingSlots(ctx context.Context, db DBTX, arg CountOverlappingSlotsParams) (int64, error) {
	row := db.QueryRow(ctx, countOverlappingSlots, arg.MechanicID, arg.StartsAt, arg.EndsAt)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const lockFreeSlotsInWindow = `-- name: LockFreeSlotsInWindow :many
SELECT id, mechanic_id, starts_at, ends_at, is_booked, booking_id, created_at, updated_at
FROM availability_slots
WHERE mechanic_id = $1
  AND id <> $2
  AND is_booked = FALSE
  AND starts_at < $4
  AND ends_at > $3
ORDER BY starts_at
FOR UPDATE
`

type LockFreeSlotsInWindowParams struct {
	MechanicID    uuid.UUID          `json:"mechanic_id"`
	ExcludeSlotID uuid.UUID          `json:"exclude_slot_id"`
	WindowStart   pgtype.Timestamptz `json:"window_start"`
	WindowEnd     pgtype.Timestamptz `json:"window_end"`
}

func (q *Queries) LockFreeSlotsInWindow(ctx context.Context, db DBTX, arg LockFreeSlotsInWindowParams) ([]AvailabilitySlots, error) {
	rows, err := db.Query(ctx, lockFreeSlotsInWindow,
		arg.MechanicID,
		arg.ExcludeSlotID,
		arg.WindowStart,
		arg.WindowEnd,
	)
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}

const lockSlotsByBooking = `-- name: LockSlotsByBooking :many
SELECT id, mechanic_id, starts_at, ends_at, is_booked, booking_id, created_at, updated_at
FROM availability_slots
WHERE booking_id = $1
ORDER BY starts_at
FOR UPDATE
`

func (q *Queries) LockSlotsByBooking(ctx context.Context, db DBTX, bookingID pgtype.UUID) ([]AvailabilitySlots, error) {
	rows, err := db.Query(ctx, lockSlotsByBooking, bookingID)
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}

const updateSlotBooking = `-- name: UpdateSlotBooking :execrows
UPDATE availability_slots
SET is_booked = $2, booking_id = $3, updated_at = $4
WHERE id = $1
`

type UpdateSlotBookingParams struct {
	ID        uuid.UUID          `json:"id"`
	IsBooked  bool               `json:"is_booked"`
	BookingID pgtype.UUID        `json:"booking_id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateSlotBooking(ctx context.Context, db DBTX, arg UpdateSlotBookingParams) (int64, error) {
	result, err := db.Exec(ctx, updateSlotBooking, arg.ID, arg.IsBooked, arg.BookingID, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listFreeSlots = `-- name: ListFreeSlots :many
SELECT id, mechanic_id, starts_at, ends_at, is_booked, booking_id, created_at, updated_at
FROM availability_slots
WHERE mechanic_id = $1 AND is_booked = FALSE AND starts_at >= $2 AND starts_at < $3
ORDER BY starts_at
`

type ListFreeSlotsParams struct {
	MechanicID uuid.UUID          `json:"mechanic_id"`
	From       pgtype.Timestamptz `json:"from"`
	To         pgtype.Timestamptz `json:"to"`
}

func (q *Queries) ListFreeSlots(ctx context.Context, db DBTX, arg ListFreeSlotsParams) ([]AvailabilitySlots, error) {
	rows, err := db.Query(ctx, listFreeSlots, arg.MechanicID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}
