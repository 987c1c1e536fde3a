package proposal

import (
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotPending    = errs.New("proposal is no longer pending")
	ErrExpired       = errs.New("proposal expired")
	ErrNotYourTurn   = errs.New("waiting for the other party to answer")
	ErrNotAuthor     = errs.New("only the author can withdraw a proposal")
	ErrMaxRounds     = errs.New("maximum negotiation rounds reached")
	ErrInvalidDate   = errs.New("proposed date must be in the future")
	ErrPendingExists = errs.New("a pending proposal already exists for this mechanic")
	ErrInvalidParty  = errs.New("invalid negotiating party")
)

// Payload is what a booking materializes from once the proposal is accepted.
type Payload struct {
	Vehicle      booking.Vehicle
	Location     booking.Location
	OBDRequested bool
}

type Proposal struct {
	id          uuid.UUID
	buyerID     uuid.UUID
	mechanicID  uuid.UUID
	parentID    *uuid.UUID
	roundNumber int
	respondedBy Party
	status      Status
	proposedAt  time.Time
	payload     Payload
	bookingID   *uuid.UUID
	expiresAt   time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

type Snapshot struct {
	ID          uuid.UUID
	BuyerID     uuid.UUID
	MechanicID  uuid.UUID
	ParentID    *uuid.UUID
	RoundNumber int
	RespondedBy Party
	Status      Status
	ProposedAt  time.Time
	Payload     Payload
	BookingID   *uuid.UUID
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProposal opens a chain at round 1. Buyers open negotiations; the mechanic answers.
func NewProposal(buyerID, mechanicID uuid.UUID, proposedAt time.Time, payload Payload, now time.Time, ttl time.Duration) (*Proposal, error) {
	if !proposedAt.After(now) {
		return nil, ErrInvalidDate
	}
	return &Proposal{
		id:          uuid.New(),
		buyerID:     buyerID,
		mechanicID:  mechanicID,
		roundNumber: 1,
		respondedBy: PartyBuyer,
		status:      StatusPending,
		proposedAt:  proposedAt.UTC(),
		payload:     payload,
		expiresAt:   now.Add(ttl),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func Reconstruct(s Snapshot) *Proposal {
	return &Proposal{
		id:          s.ID,
		buyerID:     s.BuyerID,
		mechanicID:  s.MechanicID,
		parentID:    s.ParentID,
		roundNumber: s.RoundNumber,
		respondedBy: s.RespondedBy,
		status:      s.Status,
		proposedAt:  s.ProposedAt,
		payload:     s.Payload,
		bookingID:   s.BookingID,
		expiresAt:   s.ExpiresAt,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}
}

func (p *Proposal) Snapshot() Snapshot {
	return Snapshot{
		ID:          p.id,
		BuyerID:     p.buyerID,
		MechanicID:  p.mechanicID,
		ParentID:    p.parentID,
		RoundNumber: p.roundNumber,
		RespondedBy: p.respondedBy,
		Status:      p.status,
		ProposedAt:  p.proposedAt,
		Payload:     p.payload,
		BookingID:   p.bookingID,
		ExpiresAt:   p.expiresAt,
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
	}
}

func (p *Proposal) PartyOf(userID uuid.UUID) (Party, bool) {
	switch userID {
	case p.buyerID:
		return PartyBuyer, true
	case p.mechanicID:
		return PartyMechanic, true
	}
	return "", false
}

func (p *Proposal) IsExpired(now time.Time) bool {
	return p.status == StatusPending && !now.Before(p.expiresAt)
}

// Expire reports whether the proposal lapsed now. Callers persist it before surfacing ErrExpired.
func (p *Proposal) Expire(now time.Time) bool {
	if !p.IsExpired(now) {
		return false
	}
	p.status = StatusExpired
	p.updatedAt = now
	return true
}

// CheckTurn is the guard shared by accept, refuse and counter. An expired proposal is
// marked expired as a side effect.
func (p *Proposal) CheckTurn(actor Party, now time.Time) error {
	if !actor.IsValid() {
		return ErrInvalidParty
	}
	if p.status != StatusPending {
		return ErrNotPending
	}
	if p.Expire(now) {
		return ErrExpired
	}
	if actor == p.respondedBy {
		return ErrNotYourTurn
	}
	return nil
}

// Counter supersedes this proposal with the next round authored by actor.
func (p *Proposal) Counter(actor Party, proposedAt time.Time, maxRounds int, now time.Time, ttl time.Duration) (*Proposal, error) {
	if err := p.CheckTurn(actor, now); err != nil {
		return nil, err
	}
	if p.roundNumber >= maxRounds {
		return nil, ErrMaxRounds
	}
	if !proposedAt.After(now) {
		return nil, ErrInvalidDate
	}

	p.status = StatusCounterProposed
	p.updatedAt = now

	parent := p.id
	return &Proposal{
		id:          uuid.New(),
		buyerID:     p.buyerID,
		mechanicID:  p.mechanicID,
		parentID:    &parent,
		roundNumber: p.roundNumber + 1,
		respondedBy: actor,
		status:      StatusPending,
		proposedAt:  proposedAt.UTC(),
		payload:     p.payload,
		expiresAt:   now.Add(ttl),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func (p *Proposal) Accept(actor Party, bookingID uuid.UUID, now time.Time) error {
	if err := p.CheckTurn(actor, now); err != nil {
		return err
	}
	p.status = StatusAccepted
	p.bookingID = &bookingID
	p.updatedAt = now
	return nil
}

func (p *Proposal) Refuse(actor Party, now time.Time) error {
	if err := p.CheckTurn(actor, now); err != nil {
		return err
	}
	p.status = StatusRefused
	p.updatedAt = now
	return nil
}

func (p *Proposal) Cancel(actor Party, now time.Time) error {
	if p.status != StatusPending {
		return ErrNotPending
	}
	if actor != p.respondedBy {
		return ErrNotAuthor
	}
	p.status = StatusCancelled
	p.updatedAt = now
	return nil
}

func (p *Proposal) ID() uuid.UUID         { return p.id }
func (p *Proposal) BuyerID() uuid.UUID    { return p.buyerID }
func (p *Proposal) MechanicID() uuid.UUID { return p.mechanicID }
func (p *Proposal) ParentID() *uuid.UUID  { return p.parentID }
func (p *Proposal) RoundNumber() int      { return p.roundNumber }
func (p *Proposal) RespondedBy() Party    { return p.respondedBy }
func (p *Proposal) Status() Status        { return p.status }
func (p *Proposal) ProposedAt() time.Time { return p.proposedAt }
func (p *Proposal) Payload() Payload      { return p.payload }
func (p *Proposal) BookingID() *uuid.UUID { return p.bookingID }
func (p *Proposal) ExpiresAt() time.Time  { return p.expiresAt }
func (p *Proposal) CreatedAt() time.Time  { return p.createdAt }
func (p *Proposal) UpdatedAt() time.Time  { return p.updatedAt }
