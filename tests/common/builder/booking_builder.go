//go:build unit || e2e

package builder

import (
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/pricing"
	reqdto "inspection-marketplace/internal/handler/dto/request"
	"inspection-marketplace/internal/infra/repository/converter"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const TestCodeSecret = "test-code-secret"

type BookingBuilder struct {
	ID              uuid.UUID
	BuyerID         uuid.UUID
	MechanicID      uuid.UUID
	SlotID          *uuid.UUID
	Status          booking.Status
	ScheduledAt     time.Time
	Vehicle         booking.Vehicle
	Location        booking.Location
	DistanceKm      decimal.Decimal
	OBDRequested    bool
	Price           pricing.Breakdown
	PaymentIntentID string
	PaymentStatus   booking.PaymentStatus
	CheckInCode     string
	CodeIssuedAt    *time.Time
	CheckInAttempts int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ValidatedAt     *time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	slotID := uuid.New()
	return &BookingBuilder{
		ID:         uuid.New(),
		BuyerID:    uuid.New(),
		MechanicID: uuid.New(),
		SlotID:     &slotID,
		Status:     booking.StatusPendingAcceptance,
		// 24h ahead of CreatedAt
		ScheduledAt: now.Add(24 * time.Hour),
		Vehicle: booking.Vehicle{
			Type:  booking.VehicleCar,
			Brand: "Peugeot",
			Model: "308",
			Year:  2019,
			Plate: "AB-123-CD",
		},
		Location: booking.Location{
			Lat:     48.8566,
			Lng:     2.3522,
			Address: "1 rue de Rivoli, Paris",
		},
		DistanceKm:      decimal.RequireFromString("30.00"),
		Price:           DefaultBreakdown(),
		PaymentIntentID: "pi_test_" + uuid.NewString()[:8],
		PaymentStatus:   booking.PaymentAuthorized,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// DefaultBreakdown is the price for 30km with a 10km free zone under default pricing.
func DefaultBreakdown() pricing.Breakdown {
	d := decimal.RequireFromString
	return pricing.Breakdown{
		BasePrice:        d("40.00"),
		TravelFees:       d("6.00"),
		MechanicPayout:   d("46.00"),
		CommissionRate:   d("0.2000"),
		CommissionAmount: d("9.20"),
		Subtotal:         d("55.20"),
		ProcessorFee:     d("1.09"),
		TotalPrice:       d("56.29"),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithParties(buyerID, mechanicID uuid.UUID) *BookingBuilder {
	b.BuyerID = buyerID
	b.MechanicID = mechanicID
	return b
}

func (b *BookingBuilder) WithScheduledAt(t time.Time) *BookingBuilder {
	b.ScheduledAt = t
	return b
}

func (b *BookingBuilder) WithSlot(id *uuid.UUID) *BookingBuilder {
	b.SlotID = id
	return b
}

// WithCheckInCode puts the booking in awaiting_code with the given plaintext code issued at issuedAt.
func (b *BookingBuilder) WithCheckInCode(code string, issuedAt time.Time) *BookingBuilder {
	b.Status = booking.StatusAwaitingCode
	b.CheckInCode = code
	b.CodeIssuedAt = &issuedAt
	return b
}

func (b *BookingBuilder) WithAttempts(n int) *BookingBuilder {
	b.CheckInAttempts = n
	return b
}

func (b *BookingBuilder) WithPaymentStatus(ps booking.PaymentStatus) *BookingBuilder {
	b.PaymentStatus = ps
	return b
}

func (b *BookingBuilder) Snapshot() booking.Snapshot {
	s := booking.Snapshot{
		ID:                  b.ID,
		BuyerID:             b.BuyerID,
		MechanicID:          b.MechanicID,
		SlotID:              b.SlotID,
		Status:              b.Status,
		ScheduledAt:         b.ScheduledAt,
		Vehicle:             b.Vehicle,
		Location:            b.Location,
		DistanceKm:          b.DistanceKm,
		OBDRequested:        b.OBDRequested,
		Price:               b.Price,
		PaymentIntentID:     b.PaymentIntentID,
		PaymentStatus:       b.PaymentStatus,
		CheckInAttempts:     b.CheckInAttempts,
		CheckInCodeIssuedAt: b.CodeIssuedAt,
		ValidatedAt:         b.ValidatedAt,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
	if b.CheckInCode != "" {
		h := booking.HashCheckInCode(TestCodeSecret, b.CheckInCode)
		s.CheckInCodeHash = &h
	}
	return s
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.Reconstruct(b.Snapshot())
}

func (b *BookingBuilder) NewParams() booking.NewParams {
	return booking.NewParams{
		BuyerID:         b.BuyerID,
		MechanicID:      b.MechanicID,
		SlotID:          b.SlotID,
		ScheduledAt:     b.ScheduledAt,
		Vehicle:         b.Vehicle,
		Location:        b.Location,
		DistanceKm:      b.DistanceKm,
		OBDRequested:    b.OBDRequested,
		Price:           b.Price,
		PaymentIntentID: b.PaymentIntentID,
	}
}

// BuildInfra renders the row as it would come back from the bookings table right after insert.
func (b *BookingBuilder) BuildInfra() sqlc.Bookings {
	p := converter.BookingToInsert(b.BuildDomain())
	return sqlc.Bookings{
		ID:               p.ID,
		BuyerID:          p.BuyerID,
		MechanicID:       p.MechanicID,
		SlotID:           p.SlotID,
		Status:           p.Status,
		ScheduledAt:      p.ScheduledAt,
		VehicleType:      p.VehicleType,
		VehicleBrand:     p.VehicleBrand,
		VehicleModel:     p.VehicleModel,
		VehicleYear:      p.VehicleYear,
		VehiclePlate:     p.VehiclePlate,
		MeetingLat:       p.MeetingLat,
		MeetingLng:       p.MeetingLng,
		MeetingAddress:   p.MeetingAddress,
		DistanceKm:       p.DistanceKm,
		ObdRequested:     p.ObdRequested,
		BasePrice:        p.BasePrice,
		TravelFees:       p.TravelFees,
		ProcessorFee:     p.ProcessorFee,
		TotalPrice:       p.TotalPrice,
		CommissionRate:   p.CommissionRate,
		CommissionAmount: p.CommissionAmount,
		MechanicPayout:   p.MechanicPayout,
		PaymentIntentID:  p.PaymentIntentID,
		PaymentStatus:    p.PaymentStatus,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		SlotID:         *b.SlotID,
		VehicleType:    string(b.Vehicle.Type),
		VehicleBrand:   b.Vehicle.Brand,
		VehicleModel:   b.Vehicle.Model,
		VehicleYear:    b.Vehicle.Year,
		VehiclePlate:   b.Vehicle.Plate,
		MeetingLat:     b.Location.Lat,
		MeetingLng:     b.Location.Lng,
		MeetingAddress: b.Location.Address,
		OBDRequested:   b.OBDRequested,
	}
}
