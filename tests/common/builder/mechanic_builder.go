//go:build unit || e2e

package builder

import (
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/pkg/geo"
	"inspection-marketplace/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Paris is the default mechanic base; BookingBuilder's meeting point sits on it.
var Paris = geo.Point{Lat: 48.8566, Lng: 2.3522}

type MechanicBuilder struct {
	Snapshot mechanic.Snapshot
}

func NewMechanicBuilder() *MechanicBuilder {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &MechanicBuilder{Snapshot: mechanic.Snapshot{
		UserID:               uuid.New(),
		IdentityVerified:     true,
		AcceptedVehicleTypes: []booking.VehicleType{booking.VehicleCar, booking.VehicleVan},
		ServiceRadiusKm:      50,
		FreeZoneKm:           decimal.NewFromInt(10),
		Base:                 Paris,
		PayoutAccountID:      ptr.Of("acct_test_mechanic"),
		PayoutsEnabled:       true,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}}
}

func (m *MechanicBuilder) With(mutate func(*mechanic.Snapshot)) *MechanicBuilder {
	mutate(&m.Snapshot)
	return m
}

func (m *MechanicBuilder) WithID(id uuid.UUID) *MechanicBuilder {
	m.Snapshot.UserID = id
	return m
}

func (m *MechanicBuilder) WithoutPayoutAccount() *MechanicBuilder {
	m.Snapshot.PayoutAccountID = nil
	m.Snapshot.PayoutsEnabled = false
	return m
}

func (m *MechanicBuilder) BuildDomain() *mechanic.Profile {
	return mechanic.Reconstruct(m.Snapshot)
}
