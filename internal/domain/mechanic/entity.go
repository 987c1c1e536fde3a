package mechanic

import (
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/pkg/geo"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SuspendAtNoShows    = 2
	DeactivateAtNoShows = 3
	SuspensionPeriod    = 30 * 24 * time.Hour
)

var (
	ErrInactive               = errs.New("mechanic account is inactive")
	ErrSuspended              = errs.New("mechanic is suspended")
	ErrIdentityNotVerified    = errs.New("mechanic identity is not verified")
	ErrNoPayoutAccount        = errs.New("mechanic has no payout account")
	ErrVehicleTypeNotAccepted = errs.New("mechanic does not inspect this vehicle type")
	ErrOutOfServiceArea       = errs.New("meeting point is outside the mechanic's service radius")
	ErrInvalidServiceArea     = errs.New("invalid service area")
)

type Profile struct {
	userID               uuid.UUID
	identityVerified     bool
	acceptedVehicleTypes []booking.VehicleType
	serviceRadiusKm      float64
	freeZoneKm           decimal.Decimal
	base                 geo.Point
	payoutAccountID      *string
	payoutsEnabled       bool
	noShowCount          int
	lastNoShowAt         *time.Time
	suspendedUntil       *time.Time
	isActive             bool
	createdAt            time.Time
	updatedAt            time.Time
}

type Snapshot struct {
	UserID               uuid.UUID
	IdentityVerified     bool
	AcceptedVehicleTypes []booking.VehicleType
	ServiceRadiusKm      float64
	FreeZoneKm           decimal.Decimal
	Base                 geo.Point
	PayoutAccountID      *string
	PayoutsEnabled       bool
	NoShowCount          int
	LastNoShowAt         *time.Time
	SuspendedUntil       *time.Time
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func NewProfile(userID uuid.UUID, base geo.Point, serviceRadiusKm float64, freeZoneKm decimal.Decimal, vehicleTypes []booking.VehicleType, now time.Time) (*Profile, error) {
	if err := validateServiceArea(base, serviceRadiusKm, freeZoneKm, vehicleTypes); err != nil {
		return nil, err
	}
	return &Profile{
		userID:               userID,
		acceptedVehicleTypes: vehicleTypes,
		serviceRadiusKm:      serviceRadiusKm,
		freeZoneKm:           freeZoneKm,
		base:                 base,
		isActive:             true,
		createdAt:            now,
		updatedAt:            now,
	}, nil
}

func validateServiceArea(base geo.Point, radiusKm float64, freeZoneKm decimal.Decimal, vehicleTypes []booking.VehicleType) error {
	if !base.Valid() || radiusKm <= 0 || freeZoneKm.IsNegative() || len(vehicleTypes) == 0 {
		return ErrInvalidServiceArea
	}
	for _, v := range vehicleTypes {
		if !v.IsValid() {
			return booking.ErrInvalidVehicle
		}
	}
	return nil
}

func Reconstruct(s Snapshot) *Profile {
	return &Profile{
		userID:               s.UserID,
		identityVerified:     s.IdentityVerified,
		acceptedVehicleTypes: s.AcceptedVehicleTypes,
		serviceRadiusKm:      s.ServiceRadiusKm,
		freeZoneKm:           s.FreeZoneKm,
		base:                 s.Base,
		payoutAccountID:      s.PayoutAccountID,
		payoutsEnabled:       s.PayoutsEnabled,
		noShowCount:          s.NoShowCount,
		lastNoShowAt:         s.LastNoShowAt,
		suspendedUntil:       s.SuspendedUntil,
		isActive:             s.IsActive,
		createdAt:            s.CreatedAt,
		updatedAt:            s.UpdatedAt,
	}
}

func (p *Profile) Snapshot() Snapshot {
	return Snapshot{
		UserID:               p.userID,
		IdentityVerified:     p.identityVerified,
		AcceptedVehicleTypes: p.acceptedVehicleTypes,
		ServiceRadiusKm:      p.serviceRadiusKm,
		FreeZoneKm:           p.freeZoneKm,
		Base:                 p.base,
		PayoutAccountID:      p.payoutAccountID,
		PayoutsEnabled:       p.payoutsEnabled,
		NoShowCount:          p.noShowCount,
		LastNoShowAt:         p.lastNoShowAt,
		SuspendedUntil:       p.suspendedUntil,
		IsActive:             p.isActive,
		CreatedAt:            p.createdAt,
		UpdatedAt:            p.updatedAt,
	}
}

func (p *Profile) IsSuspended(now time.Time) bool {
	return p.suspendedUntil != nil && now.Before(*p.suspendedUntil)
}

func (p *Profile) Accepts(v booking.VehicleType) bool {
	for _, t := range p.acceptedVehicleTypes {
		if t == v {
			return true
		}
	}
	return false
}

// CheckBookable runs the guards a booking against this mechanic must pass.
func (p *Profile) CheckBookable(v booking.VehicleType, now time.Time) error {
	switch {
	case !p.isActive:
		return ErrInactive
	case p.IsSuspended(now):
		return ErrSuspended
	case !p.identityVerified:
		return ErrIdentityNotVerified
	case p.payoutAccountID == nil || *p.payoutAccountID == "":
		return ErrNoPayoutAccount
	case !p.Accepts(v):
		return ErrVehicleTypeNotAccepted
	}
	return nil
}

// DistanceTo returns the great-circle distance to the meeting point, failing past the service radius.
func (p *Profile) DistanceTo(meeting geo.Point) (float64, error) {
	km := geo.HaversineKm(p.base, meeting)
	if km > p.serviceRadiusKm {
		return km, ErrOutOfServiceArea
	}
	return km, nil
}

// RecordNoShow escalates: suspension at the second no-show, deactivation from the third.
func (p *Profile) RecordNoShow(now time.Time) {
	p.noShowCount++
	p.lastNoShowAt = &now
	switch {
	case p.noShowCount >= DeactivateAtNoShows:
		p.isActive = false
	case p.noShowCount == SuspendAtNoShows:
		until := now.Add(SuspensionPeriod)
		p.suspendedUntil = &until
	}
	p.updatedAt = now
}

// DecayNoShows forgets the counter once the last no-show is older than after. Reports whether anything changed.
func (p *Profile) DecayNoShows(now time.Time, after time.Duration) bool {
	if p.noShowCount == 0 || p.lastNoShowAt == nil || now.Sub(*p.lastNoShowAt) <= after {
		return false
	}
	p.noShowCount = 0
	p.updatedAt = now
	return true
}

// UpdateServiceArea leaves penalties, verification and payout state untouched.
func (p *Profile) UpdateServiceArea(base geo.Point, radiusKm float64, freeZoneKm decimal.Decimal, vehicleTypes []booking.VehicleType, now time.Time) error {
	if err := validateServiceArea(base, radiusKm, freeZoneKm, vehicleTypes); err != nil {
		return err
	}
	p.base = base
	p.serviceRadiusKm = radiusKm
	p.freeZoneKm = freeZoneKm
	p.acceptedVehicleTypes = vehicleTypes
	p.updatedAt = now
	return nil
}

func (p *Profile) VerifyIdentity(now time.Time) {
	p.identityVerified = true
	p.updatedAt = now
}

func (p *Profile) AttachPayoutAccount(accountID string, now time.Time) {
	p.payoutAccountID = &accountID
	p.updatedAt = now
}

func (p *Profile) SetPayoutsEnabled(enabled bool, now time.Time) bool {
	if p.payoutsEnabled == enabled {
		return false
	}
	p.payoutsEnabled = enabled
	p.updatedAt = now
	return true
}

func (p *Profile) UserID() uuid.UUID                           { return p.userID }
func (p *Profile) IdentityVerified() bool                      { return p.identityVerified }
func (p *Profile) AcceptedVehicleTypes() []booking.VehicleType { return p.acceptedVehicleTypes }
func (p *Profile) ServiceRadiusKm() float64                    { return p.serviceRadiusKm }
func (p *Profile) FreeZoneKm() decimal.Decimal                 { return p.freeZoneKm }
func (p *Profile) Base() geo.Point                             { return p.base }
func (p *Profile) PayoutAccountID() *string                    { return p.payoutAccountID }
func (p *Profile) PayoutsEnabled() bool                        { return p.payoutsEnabled }
func (p *Profile) NoShowCount() int                            { return p.noShowCount }
func (p *Profile) LastNoShowAt() *time.Time                    { return p.lastNoShowAt }
func (p *Profile) SuspendedUntil() *time.Time                  { return p.suspendedUntil }
func (p *Profile) IsActive() bool                              { return p.isActive }
func (p *Profile) CreatedAt() time.Time                        { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time                        { return p.updatedAt }
