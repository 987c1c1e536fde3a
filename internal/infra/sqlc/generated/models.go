package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Users struct {
	ID            uuid.UUID          `json:"id"`
	Email         string             `json:"email"`
	PasswordHash  string             `json:"password_hash"`
	Role          string             `json:"role"`
	EmailVerified bool               `json:"email_verified"`
	IsActive      bool               `json:"is_active"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type MechanicProfiles struct {
	UserID               uuid.UUID          `json:"user_id"`
	IdentityVerified     bool               `json:"identity_verified"`
	AcceptedVehicleTypes []string           `json:"accepted_vehicle_types"`
	ServiceRadiusKm      float64            `json:"service_radius_km"`
	FreeZoneKm           pgtype.Numeric     `json:"free_zone_km"`
	BaseLat              float64            `json:"base_lat"`
	BaseLng              float64            `json:"base_lng"`
	PayoutAccountID      pgtype.Text        `json:"payout_account_id"`
	PayoutsEnabled       bool               `json:"payouts_enabled"`
	NoShowCount          int32              `json:"no_show_count"`
	LastNoShowAt         pgtype.Timestamptz `json:"last_no_show_at"`
	SuspendedUntil       pgtype.Timestamptz `json:"suspended_until"`
	IsActive             bool               `json:"is_active"`
	CreatedAt            pgtype.Timestamptz `json:"created_at"`
	UpdatedAt            pgtype.Timestamptz `json:"updated_at"`
}

type Bookings struct {
	ID                  uuid.UUID          `json:"id"`
	BuyerID             uuid.UUID          `json:"buyer_id"`
	MechanicID          uuid.UUID          `json:"mechanic_id"`
	SlotID              pgtype.UUID        `json:"slot_id"`
	Status              string             `json:"status"`
	ScheduledAt         pgtype.Timestamptz `json:"scheduled_at"`
	VehicleType         string             `json:"vehicle_type"`
	VehicleBrand        string             `json:"vehicle_brand"`
	VehicleModel        string             `json:"vehicle_model"`
	VehicleYear         int32              `json:"vehicle_year"`
	VehiclePlate        string             `json:"vehicle_plate"`
	MeetingLat          float64            `json:"meeting_lat"`
	MeetingLng          float64            `json:"meeting_lng"`
	MeetingAddress      string             `json:"meeting_address"`
	DistanceKm          pgtype.Numeric     `json:"distance_km"`
	ObdRequested        bool               `json:"obd_requested"`
	BasePrice           pgtype.Numeric     `json:"base_price"`
	TravelFees          pgtype.Numeric     `json:"travel_fees"`
	ProcessorFee        pgtype.Numeric     `json:"processor_fee"`
	TotalPrice          pgtype.Numeric     `json:"total_price"`
	CommissionRate      pgtype.Numeric     `json:"commission_rate"`
	CommissionAmount    pgtype.Numeric     `json:"commission_amount"`
	MechanicPayout      pgtype.Numeric     `json:"mechanic_payout"`
	PaymentIntentID     string             `json:"payment_intent_id"`
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
	CreatedAt           pgtype.Timestamptz `json:"created_at"`
	UpdatedAt           pgtype.Timestamptz `json:"updated_at"`
}

type AvailabilitySlots struct {
	ID         uuid.UUID          `json:"id"`
	MechanicID uuid.UUID          `json:"mechanic_id"`
	StartsAt   pgtype.Timestamptz `json:"starts_at"`
	EndsAt     pgtype.Timestamptz `json:"ends_at"`
	IsBooked   bool               `json:"is_booked"`
	BookingID  pgtype.UUID        `json:"booking_id"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	UpdatedAt  pgtype.Timestamptz `json:"updated_at"`
}

type DateProposals struct {
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

type DisputeCases struct {
	ID             uuid.UUID          `json:"id"`
	BookingID      uuid.UUID          `json:"booking_id"`
	OpenedBy       uuid.UUID          `json:"opened_by"`
	Reason         string             `json:"reason"`
	Description    string             `json:"description"`
	Status         string             `json:"status"`
	ResolutionNote pgtype.Text        `json:"resolution_note"`
	ResolvedBy     pgtype.UUID        `json:"resolved_by"`
	ResolvedAt     pgtype.Timestamptz `json:"resolved_at"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type ValidationProofs struct {
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

type ProcessedWebhookEvents struct {
	EventID     string             `json:"event_id"`
	EventType   string             `json:"event_type"`
	ProcessedAt pgtype.Timestamptz `json:"processed_at"`
}

type NotificationJobs struct {
	ID        uuid.UUID          `json:"id"`
	Kind      string             `json:"kind"`
	Topic     string             `json:"topic"`
	DedupeKey string             `json:"dedupe_key"`
	Payload   []byte             `json:"payload"`
	RunAt     pgtype.Timestamptz `json:"run_at"`
	Status    string             `json:"status"`
	Attempts  int32              `json:"attempts"`
	LastError pgtype.Text        `json:"last_error"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type IdempotencyKeys struct {
	Key             uuid.UUID          `json:"key"`
	UserID          uuid.UUID          `json:"user_id"`
	Endpoint        string             `json:"endpoint"`
	RequestHash     string             `json:"request_hash"`
	Status          string             `json:"status"`
	ResultBookingID pgtype.UUID        `json:"result_booking_id"`
	ExpiresAt       pgtype.Timestamptz `json:"expires_at"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

type RevokedTokens struct {
	Jti       string             `json:"jti"`
	UserID    uuid.UUID          `json:"user_id"`
	ExpiresAt pgtype.Timestamptz `json:"expires_at"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
