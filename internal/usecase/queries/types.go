package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoleBuyer    = "buyer"
	RoleMechanic = "mechanic"
	RoleAdmin    = "admin"
)

// BookingRecord is the full read model. It never leaves this package unprojected.
type BookingRecord struct {
	ID                  uuid.UUID
	BuyerID             uuid.UUID
	MechanicID          uuid.UUID
	SlotID              *uuid.UUID
	Status              string
	ScheduledAt         time.Time
	VehicleType         string
	VehicleBrand        string
	VehicleModel        string
	VehicleYear         int
	VehiclePlate        string
	MeetingLat          float64
	MeetingLng          float64
	MeetingAddress      string
	DistanceKm          decimal.Decimal
	OBDRequested        bool
	BasePrice           decimal.Decimal
	TravelFees          decimal.Decimal
	ProcessorFee        decimal.Decimal
	TotalPrice          decimal.Decimal
	CommissionRate      string
	CommissionAmount    decimal.Decimal
	MechanicPayout      decimal.Decimal
	PaymentIntentID     string
	PaymentStatus       string
	CheckInAttempts     int
	CheckInCodeIssuedAt *time.Time
	ConfirmedAt         *time.Time
	CheckedInAt         *time.Time
	CheckedOutAt        *time.Time
	ValidatedAt         *time.Time
	PaymentReleasedAt   *time.Time
	CancelledAt         *time.Time
	CancelledBy         *string
	ReportURL           *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// BookingView is one of the role projections below.
type BookingView interface {
	bookingView()
}

type BuyerBookingView struct {
	ID                  uuid.UUID  `json:"id"`
	MechanicID          uuid.UUID  `json:"mechanic_id"`
	Status              string     `json:"status"`
	ScheduledAt         time.Time  `json:"scheduled_at"`
	VehicleType         string     `json:"vehicle_type"`
	VehicleBrand        string     `json:"vehicle_brand"`
	VehicleModel        string     `json:"vehicle_model"`
	VehicleYear         int        `json:"vehicle_year"`
	VehiclePlate        string     `json:"vehicle_plate"`
	MeetingLat          float64    `json:"meeting_lat"`
	MeetingLng          float64    `json:"meeting_lng"`
	MeetingAddress      string     `json:"meeting_address"`
	DistanceKm          string     `json:"distance_km"`
	OBDRequested        bool       `json:"obd_requested"`
	BasePrice           string     `json:"base_price"`
	TravelFees          string     `json:"travel_fees"`
	ProcessorFee        string     `json:"processor_fee"`
	TotalPrice          string     `json:"total_price"`
	PaymentStatus       string     `json:"payment_status"`
	CheckInCodeIssuedAt *time.Time `json:"check_in_code_issued_at,omitempty"`
	CheckedInAt         *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt        *time.Time `json:"checked_out_at,omitempty"`
	ValidatedAt         *time.Time `json:"validated_at,omitempty"`
	CancelledAt         *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy         *string    `json:"cancelled_by,omitempty"`
	ReportURL           *string    `json:"report_url,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// MechanicBookingView hides what the buyer pays on top of the payout.
type MechanicBookingView struct {
	ID             uuid.UUID  `json:"id"`
	BuyerID        uuid.UUID  `json:"buyer_id"`
	Status         string     `json:"status"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	VehicleType    string     `json:"vehicle_type"`
	VehicleBrand   string     `json:"vehicle_brand"`
	VehicleModel   string     `json:"vehicle_model"`
	VehicleYear    int        `json:"vehicle_year"`
	VehiclePlate   string     `json:"vehicle_plate"`
	MeetingLat     float64    `json:"meeting_lat"`
	MeetingLng     float64    `json:"meeting_lng"`
	MeetingAddress string     `json:"meeting_address"`
	DistanceKm     string     `json:"distance_km"`
	OBDRequested   bool       `json:"obd_requested"`
	BasePrice      string     `json:"base_price"`
	TravelFees     string     `json:"travel_fees"`
	MechanicPayout string     `json:"mechanic_payout"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	CheckedInAt    *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt   *time.Time `json:"checked_out_at,omitempty"`
	PaymentStatus  string     `json:"payment_status"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy    *string    `json:"cancelled_by,omitempty"`
	ReportURL      *string    `json:"report_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type AdminBookingView struct {
	ID                  uuid.UUID  `json:"id"`
	BuyerID             uuid.UUID  `json:"buyer_id"`
	MechanicID          uuid.UUID  `json:"mechanic_id"`
	SlotID              *uuid.UUID `json:"slot_id,omitempty"`
	Status              string     `json:"status"`
	ScheduledAt         time.Time  `json:"scheduled_at"`
	VehicleType         string     `json:"vehicle_type"`
	VehicleBrand        string     `json:"vehicle_brand"`
	VehicleModel        string     `json:"vehicle_model"`
	VehicleYear         int        `json:"vehicle_year"`
	VehiclePlate        string     `json:"vehicle_plate"`
	MeetingLat          float64    `json:"meeting_lat"`
	MeetingLng          float64    `json:"meeting_lng"`
	MeetingAddress      string     `json:"meeting_address"`
	DistanceKm          string     `json:"distance_km"`
	OBDRequested        bool       `json:"obd_requested"`
	BasePrice           string     `json:"base_price"`
	TravelFees          string     `json:"travel_fees"`
	ProcessorFee        string     `json:"processor_fee"`
	TotalPrice          string     `json:"total_price"`
	CommissionRate      string     `json:"commission_rate"`
	CommissionAmount    string     `json:"commission_amount"`
	MechanicPayout      string     `json:"mechanic_payout"`
	PaymentIntentID     string     `json:"payment_intent_id"`
	PaymentStatus       string     `json:"payment_status"`
	CheckInAttempts     int        `json:"check_in_attempts"`
	CheckInCodeIssuedAt *time.Time `json:"check_in_code_issued_at,omitempty"`
	ConfirmedAt         *time.Time `json:"confirmed_at,omitempty"`
	CheckedInAt         *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt        *time.Time `json:"checked_out_at,omitempty"`
	ValidatedAt         *time.Time `json:"validated_at,omitempty"`
	PaymentReleasedAt   *time.Time `json:"payment_released_at,omitempty"`
	CancelledAt         *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy         *string    `json:"cancelled_by,omitempty"`
	ReportURL           *string    `json:"report_url,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (BuyerBookingView) bookingView()    {}
func (MechanicBookingView) bookingView() {}
func (AdminBookingView) bookingView()    {}

type SlotView struct {
	ID         uuid.UUID `json:"id"`
	MechanicID uuid.UUID `json:"mechanic_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

type ProposalView struct {
	ID           uuid.UUID  `json:"id"`
	BuyerID      uuid.UUID  `json:"buyer_id"`
	MechanicID   uuid.UUID  `json:"mechanic_id"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty"`
	RoundNumber  int        `json:"round_number"`
	RespondedBy  string     `json:"responded_by"`
	Status       string     `json:"status"`
	ProposedAt   time.Time  `json:"proposed_at"`
	VehicleType  string     `json:"vehicle_type"`
	VehicleBrand string     `json:"vehicle_brand"`
	VehicleModel string     `json:"vehicle_model"`
	VehicleYear  int        `json:"vehicle_year"`
	Address      string     `json:"address"`
	OBDRequested bool       `json:"obd_requested"`
	BookingID    *uuid.UUID `json:"booking_id,omitempty"`
	ExpiresAt    time.Time  `json:"expires_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

type DisputeView struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"booking_id"`
	OpenedBy    uuid.UUID `json:"opened_by"`
	Reason      string    `json:"reason"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuthorizedUserView struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
}
