package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertProof = `-- name: InsertProof :exec
INSERT INTO validation_proofs (
    id, booking_id, photo_urls, odometer_km, plate_reading, gps_lat, gps_lng, report_url, checklist, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

type InsertProofParams struct {
	ID           uuid.UUID          `json:"id"`
	BookingID    uuid.UUID          `json:"booking_id"`
	PhotoUrls    []string           `json:"photo_urls"`
	OdometerKm   int32              `json:"odometer_km"`
	PlateReading string             `json:"plate_reading"`
	GpsLat       pgtype.Float8      `json:"gps_lat"`
	GpsLng       pgtype.Float8      `json:"gps_lng"`
	ReportUrl    pgtype.Text        `json:"report_url"`
	Checklist    []byte             `json:"checklist"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) InsertProof(ctx context.Context, db DBTX, arg InsertProofParams) error {
	_, err := db.Exec(ctx, insertProof,
		arg.ID,
		arg.BookingID,
		arg.PhotoUrls,
		arg.OdometerKm,
		arg.PlateReading,
		arg.GpsLat,
		arg.GpsLng,
		arg.ReportUrl,
		arg.Checklist,
		arg.CreatedAt,
	)
	return err
}

const getProofByBooking = `-- name: GetProofByBooking :one
SELECT id, booking_id, photo_urls, odometer_km, plate_reading, gps_lat, gps_lng, report_url, checklist, created_at
FROM validation_proofs
WHERE booking_id = $1
`

func (q *Queries) GetProofByBooking(ctx context.Context, db DBTX, bookingID uuid.UUID) (ValidationProofs, error) {
	row := db.QueryRow(ctx, getProofByBooking, bookingID)
	var i ValidationProofs
	err := row.Scan(
		&i.ID,
		&i.BookingID,
		&i.PhotoUrls,
		&i.OdometerKm,
		&i.PlateReading,
		&i.GpsLat,
		&i.GpsLng,
		&i.ReportUrl,
		&i.Checklist,
		&i.CreatedAt,
	)
	return i, err
}
