package converter

import (
	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/pricing"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/pkg/pgconv"
	"inspection-marketplace/internal/pkg/ptr"

	"github.com/shopspring/decimal"
)

func BookingToInsert(b *booking.Booking) sqlc.InsertBookingParams {
	v := b.Vehicle()
	loc := b.Location()
	p := b.Price()
	return sqlc.InsertBookingParams{
		ID:               b.ID(),
		BuyerID:          b.BuyerID(),
		MechanicID:       b.MechanicID(),
		SlotID:           pgconv.UUIDPtrToPgtype(b.SlotID()),
		Status:           b.Status().String(),
		ScheduledAt:      pgconv.TimeToPgtype(b.ScheduledAt()),
		VehicleType:      string(v.Type),
		VehicleBrand:     v.Brand,
		VehicleModel:     v.Model,
		VehicleYear:      int32(v.Year), // #nosec G115 -- bounded by NewVehicle
		VehiclePlate:     v.Plate,
		MeetingLat:       loc.Lat,
		MeetingLng:       loc.Lng,
		MeetingAddress:   loc.Address,
		DistanceKm:       pgconv.DecimalToNumeric(b.DistanceKm()),
		ObdRequested:     b.OBDRequested(),
		BasePrice:        pgconv.DecimalToNumeric(p.BasePrice),
		TravelFees:       pgconv.DecimalToNumeric(p.TravelFees),
		ProcessorFee:     pgconv.DecimalToNumeric(p.ProcessorFee),
		TotalPrice:       pgconv.DecimalToNumeric(p.TotalPrice),
		CommissionRate:   pgconv.DecimalToNumeric(p.CommissionRate),
		CommissionAmount: pgconv.DecimalToNumeric(p.CommissionAmount),
		MechanicPayout:   pgconv.DecimalToNumeric(p.MechanicPayout),
		PaymentIntentID:  b.PaymentIntentID(),
		PaymentStatus:    string(b.PaymentStatus()),
		CreatedAt:        pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:        pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingToUpdate(b *booking.Booking) sqlc.UpdateBookingParams {
	s := b.Snapshot()
	params := sqlc.UpdateBookingParams{
		ID:                  s.ID,
		Status:              s.Status.String(),
		PaymentStatus:       string(s.PaymentStatus),
		CheckInCodeHash:     pgconv.StringPtrToPgtype(s.CheckInCodeHash),
		CheckInAttempts:     int32(s.CheckInAttempts), // #nosec G115 -- capped by the code policy
		CheckInCodeIssuedAt: pgconv.TimePtrToPgtype(s.CheckInCodeIssuedAt),
		ConfirmedAt:         pgconv.TimePtrToPgtype(s.ConfirmedAt),
		CheckedInAt:         pgconv.TimePtrToPgtype(s.CheckedInAt),
		CheckedOutAt:        pgconv.TimePtrToPgtype(s.CheckedOutAt),
		ValidatedAt:         pgconv.TimePtrToPgtype(s.ValidatedAt),
		PaymentReleasedAt:   pgconv.TimePtrToPgtype(s.PaymentReleasedAt),
		CancelledAt:         pgconv.TimePtrToPgtype(s.CancelledAt),
		UpdatedAt:           pgconv.TimeToPgtype(s.UpdatedAt),
	}
	if s.CancelledBy != nil {
		params.CancelledBy = pgconv.StringToPgtype(string(*s.CancelledBy))
	}
	return params
}

func BookingFromRow(row sqlc.Bookings) (*booking.Booking, error) {
	status, err := booking.NewStatus(row.Status)
	if err != nil {
		return nil, err
	}

	distance, err := pgconv.DecimalFromNumeric(row.DistanceKm)
	if err != nil {
		return nil, errs.Wrap(err, "distance_km")
	}
	price, err := breakdownFromRow(row)
	if err != nil {
		return nil, err
	}

	s := booking.Snapshot{
		ID:          row.ID,
		BuyerID:     row.BuyerID,
		MechanicID:  row.MechanicID,
		SlotID:      pgconv.UUIDPtrFromPgtype(row.SlotID),
		Status:      status,
		ScheduledAt: row.ScheduledAt.Time,
		Vehicle: booking.Vehicle{
			Type:  booking.VehicleType(row.VehicleType),
			Brand: row.VehicleBrand,
			Model: row.VehicleModel,
			Year:  int(row.VehicleYear),
			Plate: row.VehiclePlate,
		},
		Location: booking.Location{
			Lat:     row.MeetingLat,
			Lng:     row.MeetingLng,
			Address: row.MeetingAddress,
		},
		DistanceKm:          distance,
		OBDRequested:        row.ObdRequested,
		Price:               price,
		PaymentIntentID:     row.PaymentIntentID,
		PaymentStatus:       booking.PaymentStatus(row.PaymentStatus),
		CheckInCodeHash:     pgconv.StringPtrFromPgtype(row.CheckInCodeHash),
		CheckInAttempts:     int(row.CheckInAttempts),
		CheckInCodeIssuedAt: pgconv.TimePtrFromPgtype(row.CheckInCodeIssuedAt),
		ConfirmedAt:         pgconv.TimePtrFromPgtype(row.ConfirmedAt),
		CheckedInAt:         pgconv.TimePtrFromPgtype(row.CheckedInAt),
		CheckedOutAt:        pgconv.TimePtrFromPgtype(row.CheckedOutAt),
		ValidatedAt:         pgconv.TimePtrFromPgtype(row.ValidatedAt),
		PaymentReleasedAt:   pgconv.TimePtrFromPgtype(row.PaymentReleasedAt),
		CancelledAt:         pgconv.TimePtrFromPgtype(row.CancelledAt),
		CreatedAt:           row.CreatedAt.Time,
		UpdatedAt:           row.UpdatedAt.Time,
	}
	if row.CancelledBy.Valid {
		s.CancelledBy = ptr.Of(booking.CancelledBy(row.CancelledBy.String))
	}
	return booking.Reconstruct(s), nil
}

func breakdownFromRow(row sqlc.Bookings) (pricing.Breakdown, error) {
	var (
		b   pricing.Breakdown
		err error
	)
	fields := []struct {
		name string
		src  *decimal.Decimal
		val  func() (decimal.Decimal, error)
	}{
		{"base_price", &b.BasePrice, func() (decimal.Decimal, error) { return pgconv.DecimalFromNumeric(row.BasePrice) }},
		{"travel_fees", &b.TravelFees, func() (decimal.Decimal, error) { return pgconv.DecimalFromNumeric(row.TravelFees) }},
		{"processor_fee", &b.ProcessorFee, func() (decimal.Decimal, error) { return pgconv.DecimalFromNumeric(row.ProcessorFee) }},
		{"total_price", &b.TotalPrice, func() (decimal.Decimal, error) { return pgconv.DecimalFromNumeric(row.TotalPrice) }},
		{"commission_rate", &b.CommissionRate, func() (decimal.Decimal, error) { return pgconv.DecimalFromNumeric(row.CommissionRate) }},
		{"commission_amount", &b.CommissionAmount, func() (decimal.Decimal, error) { return pgconv.DecimalFromNumeric(row.CommissionAmount) }},
		{"mechanic_payout", &b.MechanicPayout, func() (decimal.Decimal, error) { return pgconv.DecimalFromNumeric(row.MechanicPayout) }},
	}
	for _, f := range fields {
		if *f.src, err = f.val(); err != nil {
			return pricing.Breakdown{}, errs.Wrap(err, f.name)
		}
	}
	b.Subtotal = b.MechanicPayout.Add(b.CommissionAmount)
	return b, nil
}
