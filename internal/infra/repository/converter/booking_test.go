//go:build unit

package converter_test

import (
	"testing"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/infra/repository/converter"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"
	"inspection-marketplace/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowFromInsert(p sqlc.InsertBookingParams) sqlc.Bookings {
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

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestBookingRowRoundTrip(t *testing.T) {
	original := builder.NewBookingBuilder().BuildDomain()

	row := rowFromInsert(converter.BookingToInsert(original))
	restored, err := converter.BookingFromRow(row)
	require.NoError(t, err)

	if diff := cmp.Diff(original.Snapshot(), restored.Snapshot(), decimalEqual); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestBookingFromRow_DerivesSubtotal(t *testing.T) {
	row := rowFromInsert(converter.BookingToInsert(builder.NewBookingBuilder().BuildDomain()))

	b, err := converter.BookingFromRow(row)
	require.NoError(t, err)

	assert.True(t, b.Price().Subtotal.Equal(decimal.RequireFromString("55.20")), "got %s", b.Price().Subtotal)
}

func TestBookingFromRow_RejectsBadData(t *testing.T) {
	base := rowFromInsert(converter.BookingToInsert(builder.NewBookingBuilder().BuildDomain()))

	t.Run("unknown status", func(t *testing.T) {
		row := base
		row.Status = "teleported"
		_, err := converter.BookingFromRow(row)
		assert.Error(t, err)
	})

	t.Run("null money column", func(t *testing.T) {
		row := base
		row.TotalPrice = pgtype.Numeric{}
		_, err := converter.BookingFromRow(row)
		assert.ErrorIs(t, err, pgconv.ErrInvalidNumeric)
	})
}

func TestBookingToUpdate_CarriesLifecycleColumns(t *testing.T) {
	issued := time.Date(2026, 3, 11, 8, 45, 0, 0, time.UTC)
	b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
		bb.Status = booking.StatusAwaitingCode
		bb.CheckInCode = "123456"
		bb.CodeIssuedAt = &issued
		bb.CheckInAttempts = 2
	}).BuildDomain()

	params := converter.BookingToUpdate(b)

	assert.Equal(t, "awaiting_code", params.Status)
	assert.True(t, params.CheckInCodeHash.Valid)
	assert.NotEqual(t, "123456", params.CheckInCodeHash.String)
	assert.Equal(t, int32(2), params.CheckInAttempts)
	assert.Equal(t, issued, params.CheckInCodeIssuedAt.Time)
	assert.False(t, params.CancelledBy.Valid)
}
