package booking

import (
	"time"

	"inspection-marketplace/internal/domain/pricing"
	"inspection-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus      = errs.New("invalid booking status")
	ErrInvalidTransition  = errs.New("booking status transition not allowed")
	ErrInvalidVehicle     = errs.New("invalid vehicle")
	ErrInvalidLocation    = errs.New("invalid meeting location")
	ErrMissingPayment     = errs.New("booking requires a payment authorization")
	ErrOutsideCheckIn     = errs.New("check-in is only possible around the scheduled start")
	ErrNoShowTooEarly     = errs.New("no-show can only be reported after the scheduled start")
	ErrCodeNotIssued      = errs.New("no check-in code has been issued")
	ErrCodeExpired        = errs.New("check-in code expired")
	ErrTooManyAttempts    = errs.New("too many wrong check-in codes, ask for a new one")
	ErrInvalidCode        = errs.New("wrong check-in code")
	ErrInvalidCancelledBy = errs.New("invalid cancelling party")
)

// CodePolicy bounds the check-in code: lifetime, wrong attempts allowed, hashing secret.
type CodePolicy struct {
	Secret      string
	TTL         time.Duration
	MaxAttempts int
}

type NewParams struct {
	BuyerID         uuid.UUID
	MechanicID      uuid.UUID
	SlotID          *uuid.UUID
	ScheduledAt     time.Time
	Vehicle         Vehicle
	Location        Location
	DistanceKm      decimal.Decimal
	OBDRequested    bool
	Price           pricing.Breakdown
	PaymentIntentID string
}

type Booking struct {
	id                  uuid.UUID
	buyerID             uuid.UUID
	mechanicID          uuid.UUID
	slotID              *uuid.UUID
	status              Status
	scheduledAt         time.Time
	vehicle             Vehicle
	location            Location
	distanceKm          decimal.Decimal
	obdRequested        bool
	price               pricing.Breakdown
	paymentIntentID     string
	paymentStatus       PaymentStatus
	checkInCodeHash     *string
	checkInAttempts     int
	checkInCodeIssuedAt *time.Time
	confirmedAt         *time.Time
	checkedInAt         *time.Time
	checkedOutAt        *time.Time
	validatedAt         *time.Time
	paymentReleasedAt   *time.Time
	cancelledAt         *time.Time
	cancelledBy         *CancelledBy
	createdAt           time.Time
	updatedAt           time.Time
}

// NewBooking is only reachable after a successful authorization, hence the required intent id.
func NewBooking(p NewParams, now time.Time) (*Booking, error) {
	if p.PaymentIntentID == "" {
		return nil, ErrMissingPayment
	}
	if !p.Vehicle.Type.IsValid() {
		return nil, ErrInvalidVehicle
	}
	if !p.Location.Point().Valid() {
		return nil, ErrInvalidLocation
	}
	return &Booking{
		id:              uuid.New(),
		buyerID:         p.BuyerID,
		mechanicID:      p.MechanicID,
		slotID:          p.SlotID,
		status:          StatusPendingAcceptance,
		scheduledAt:     p.ScheduledAt,
		vehicle:         p.Vehicle,
		location:        p.Location,
		distanceKm:      p.DistanceKm,
		obdRequested:    p.OBDRequested,
		price:           p.Price,
		paymentIntentID: p.PaymentIntentID,
		paymentStatus:   PaymentAuthorized,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

type Snapshot struct {
	ID                  uuid.UUID
	BuyerID             uuid.UUID
	MechanicID          uuid.UUID
	SlotID              *uuid.UUID
	Status              Status
	ScheduledAt         time.Time
	Vehicle             Vehicle
	Location            Location
	DistanceKm          decimal.Decimal
	OBDRequested        bool
	Price               pricing.Breakdown
	PaymentIntentID     string
	PaymentStatus       PaymentStatus
	CheckInCodeHash     *string
	CheckInAttempts     int
	CheckInCodeIssuedAt *time.Time
	ConfirmedAt         *time.Time
	CheckedInAt         *time.Time
	CheckedOutAt        *time.Time
	ValidatedAt         *time.Time
	PaymentReleasedAt   *time.Time
	CancelledAt         *time.Time
	CancelledBy         *CancelledBy
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func Reconstruct(s Snapshot) *Booking {
	return &Booking{
		id:                  s.ID,
		buyerID:             s.BuyerID,
		mechanicID:          s.MechanicID,
		slotID:              s.SlotID,
		status:              s.Status,
		scheduledAt:         s.ScheduledAt,
		vehicle:             s.Vehicle,
		location:            s.Location,
		distanceKm:          s.DistanceKm,
		obdRequested:        s.OBDRequested,
		price:               s.Price,
		paymentIntentID:     s.PaymentIntentID,
		paymentStatus:       s.PaymentStatus,
		checkInCodeHash:     s.CheckInCodeHash,
		checkInAttempts:     s.CheckInAttempts,
		checkInCodeIssuedAt: s.CheckInCodeIssuedAt,
		confirmedAt:         s.ConfirmedAt,
		checkedInAt:         s.CheckedInAt,
		checkedOutAt:        s.CheckedOutAt,
		validatedAt:         s.ValidatedAt,
		paymentReleasedAt:   s.PaymentReleasedAt,
		cancelledAt:         s.CancelledAt,
		cancelledBy:         s.CancelledBy,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
	}
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                  b.id,
		BuyerID:             b.buyerID,
		MechanicID:          b.mechanicID,
		SlotID:              b.slotID,
		Status:              b.status,
		ScheduledAt:         b.scheduledAt,
		Vehicle:             b.vehicle,
		Location:            b.location,
		DistanceKm:          b.distanceKm,
		OBDRequested:        b.obdRequested,
		Price:               b.price,
		PaymentIntentID:     b.paymentIntentID,
		PaymentStatus:       b.paymentStatus,
		CheckInCodeHash:     b.checkInCodeHash,
		CheckInAttempts:     b.checkInAttempts,
		CheckInCodeIssuedAt: b.checkInCodeIssuedAt,
		ConfirmedAt:         b.confirmedAt,
		CheckedInAt:         b.checkedInAt,
		CheckedOutAt:        b.checkedOutAt,
		ValidatedAt:         b.validatedAt,
		PaymentReleasedAt:   b.paymentReleasedAt,
		CancelledAt:         b.cancelledAt,
		CancelledBy:         b.cancelledBy,
		CreatedAt:           b.createdAt,
		UpdatedAt:           b.updatedAt,
	}
}

func (b *Booking) transition(to Status, now time.Time) error {
	if !CanTransition(b.status, to) {
		return errs.Wrapf(ErrInvalidTransition, "%s -> %s", b.status, to)
	}
	b.status = to
	b.updatedAt = now
	return nil
}

// TransitionTo is the raw state machine step; the named operations below add their own guards.
func (b *Booking) TransitionTo(to Status, now time.Time) error {
	return b.transition(to, now)
}

func (b *Booking) Accept(now time.Time) error {
	if err := b.transition(StatusConfirmed, now); err != nil {
		return err
	}
	b.confirmedAt = &now
	return nil
}

func (b *Booking) Cancel(by CancelledBy, now time.Time) error {
	if !by.IsValid() {
		return ErrInvalidCancelledBy
	}
	if err := b.transition(StatusCancelled, now); err != nil {
		return err
	}
	b.cancelledAt = &now
	b.cancelledBy = &by
	b.checkInCodeHash = nil
	return nil
}

func (b *Booking) InCheckInWindow(now time.Time, tolerance time.Duration) bool {
	return !now.Before(b.scheduledAt.Add(-tolerance)) && !now.After(b.scheduledAt.Add(tolerance))
}

// IssueCheckInCode moves confirmed -> awaiting_code, or replaces the code of a booking
// already awaiting one. Attempts reset either way.
func (b *Booking) IssueCheckInCode(codeHash string, now time.Time, tolerance time.Duration) error {
	if b.status != StatusAwaitingCode {
		if !CanTransition(b.status, StatusAwaitingCode) {
			return errs.Wrapf(ErrInvalidTransition, "%s -> %s", b.status, StatusAwaitingCode)
		}
	}
	if !b.InCheckInWindow(now, tolerance) {
		return ErrOutsideCheckIn
	}
	if b.status != StatusAwaitingCode {
		if err := b.transition(StatusAwaitingCode, now); err != nil {
			return err
		}
	}
	b.checkInCodeHash = &codeHash
	b.checkInAttempts = 0
	b.checkInCodeIssuedAt = &now
	b.updatedAt = now
	return nil
}

func (b *Booking) ReportNoShow(now time.Time) error {
	if b.status != StatusConfirmed {
		return errs.Wrapf(ErrInvalidTransition, "%s -> %s", b.status, StatusDisputed)
	}
	if now.Before(b.scheduledAt) {
		return ErrNoShowTooEarly
	}
	return b.transition(StatusDisputed, now)
}

// EnterCode mutates the attempt counter even when it returns ErrInvalidCode;
// callers must persist the booking on that error.
func (b *Booking) EnterCode(code string, policy CodePolicy, now time.Time) error {
	if b.status != StatusAwaitingCode {
		return errs.Wrapf(ErrInvalidTransition, "%s -> %s", b.status, StatusCheckedIn)
	}
	if b.checkInCodeHash == nil || b.checkInCodeIssuedAt == nil {
		return ErrCodeNotIssued
	}
	if b.checkInAttempts >= policy.MaxAttempts {
		return ErrTooManyAttempts
	}
	if now.After(b.checkInCodeIssuedAt.Add(policy.TTL)) {
		return ErrCodeExpired
	}
	if !checkInCodeMatches(policy.Secret, code, *b.checkInCodeHash) {
		b.checkInAttempts++
		b.updatedAt = now
		return ErrInvalidCode
	}
	if err := b.transition(StatusCheckedIn, now); err != nil {
		return err
	}
	b.checkedInAt = &now
	b.checkInCodeHash = nil
	return nil
}

func (b *Booking) CheckOut(now time.Time) error {
	if err := b.transition(StatusCheckedOut, now); err != nil {
		return err
	}
	b.checkedOutAt = &now
	return nil
}

func (b *Booking) Validate(now time.Time) error {
	if err := b.transition(StatusValidated, now); err != nil {
		return err
	}
	b.validatedAt = &now
	return nil
}

func (b *Booking) Dispute(now time.Time) error {
	return b.transition(StatusDisputed, now)
}

// Complete records the capture that released the mechanic's payout.
func (b *Booking) Complete(now time.Time) error {
	if err := b.transition(StatusCompleted, now); err != nil {
		return err
	}
	b.paymentReleasedAt = &now
	b.paymentStatus = PaymentCaptured
	return nil
}

// ApplyPaymentStatus reports whether the status changed. Regressions are ignored.
func (b *Booking) ApplyPaymentStatus(ps PaymentStatus, now time.Time) bool {
	if !ps.IsValid() || ps == b.paymentStatus || ps.rank() < b.paymentStatus.rank() {
		return false
	}
	b.paymentStatus = ps
	b.updatedAt = now
	return true
}

func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return b.buyerID == userID || b.mechanicID == userID
}

func (b *Booking) ID() uuid.UUID                   { return b.id }
func (b *Booking) BuyerID() uuid.UUID              { return b.buyerID }
func (b *Booking) MechanicID() uuid.UUID           { return b.mechanicID }
func (b *Booking) SlotID() *uuid.UUID              { return b.slotID }
func (b *Booking) Status() Status                  { return b.status }
func (b *Booking) ScheduledAt() time.Time          { return b.scheduledAt }
func (b *Booking) Vehicle() Vehicle                { return b.vehicle }
func (b *Booking) Location() Location              { return b.location }
func (b *Booking) DistanceKm() decimal.Decimal     { return b.distanceKm }
func (b *Booking) OBDRequested() bool              { return b.obdRequested }
func (b *Booking) Price() pricing.Breakdown        { return b.price }
func (b *Booking) PaymentIntentID() string         { return b.paymentIntentID }
func (b *Booking) PaymentStatus() PaymentStatus    { return b.paymentStatus }
func (b *Booking) CheckInAttempts() int            { return b.checkInAttempts }
func (b *Booking) CheckInCodeIssuedAt() *time.Time { return b.checkInCodeIssuedAt }
func (b *Booking) ConfirmedAt() *time.Time         { return b.confirmedAt }
func (b *Booking) CheckedInAt() *time.Time         { return b.checkedInAt }
func (b *Booking) CheckedOutAt() *time.Time        { return b.checkedOutAt }
func (b *Booking) ValidatedAt() *time.Time         { return b.validatedAt }
func (b *Booking) PaymentReleasedAt() *time.Time   { return b.paymentReleasedAt }
func (b *Booking) CancelledAt() *time.Time         { return b.cancelledAt }
func (b *Booking) CancelledBy() *CancelledBy       { return b.cancelledBy }
func (b *Booking) CreatedAt() time.Time            { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time            { return b.updatedAt }
