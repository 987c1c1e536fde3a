package commands

import (
	"context"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/pricing"
	"inspection-marketplace/internal/domain/proposal"
	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/pkg/clock"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProposalSettings struct {
	MaxRounds    int
	TTL          time.Duration
	SlotDuration time.Duration
}

type ProposeInput struct {
	MechanicID     uuid.UUID
	ProposedAt     time.Time
	VehicleType    string
	VehicleBrand   string
	VehicleModel   string
	VehicleYear    int
	VehiclePlate   string
	MeetingLat     float64
	MeetingLng     float64
	MeetingAddress string
	OBDRequested   bool
}

type AcceptProposalResult struct {
	BookingID    uuid.UUID
	ClientSecret string
}

type ProposalCommands interface {
	Propose(ctx context.Context, buyerID uuid.UUID, in ProposeInput) (uuid.UUID, error)
	Counter(ctx context.Context, actorID, proposalID uuid.UUID, proposedAt time.Time) (uuid.UUID, error)
	Accept(ctx context.Context, actorID, proposalID uuid.UUID) (*AcceptProposalResult, error)
	Refuse(ctx context.Context, actorID, proposalID uuid.UUID) error
	Cancel(ctx context.Context, actorID, proposalID uuid.UUID) error
	// ExpireIfDue is the sweep's per-item step; it reports whether the proposal lapsed.
	ExpireIfDue(ctx context.Context, proposalID uuid.UUID) (bool, error)
}

type proposalCommandsImpl struct {
	*booker
	proposals ProposalSettings
}

func NewProposalCommands(
	uow shared.UnitOfWork,
	payment shared.PaymentGateway,
	engine *pricing.Engine,
	clk clock.Clock,
	bookingSettings BookingSettings,
	proposalSettings ProposalSettings,
) ProposalCommands {
	return &proposalCommandsImpl{
		booker: &booker{
			uow:      uow,
			payment:  payment,
			engine:   engine,
			clock:    clk,
			settings: bookingSettings,
		},
		proposals: proposalSettings,
	}
}

func (c *proposalCommandsImpl) Propose(ctx context.Context, buyerID uuid.UUID, in ProposeInput) (uuid.UUID, error) {
	now := c.clock.Now()

	u, err := c.uow.CommandReads().UserByID(ctx, buyerID)
	if err != nil {
		return uuid.Nil, notFound(err, ErrUserNotFound)
	}
	if !u.EmailVerified() {
		return uuid.Nil, ErrEmailNotVerified
	}

	vehicle, err := booking.NewVehicle(in.VehicleType, in.VehicleBrand, in.VehicleModel, in.VehicleYear, in.VehiclePlate, now.Year())
	if err != nil {
		return uuid.Nil, err
	}
	location, err := booking.NewLocation(in.MeetingLat, in.MeetingLng, in.MeetingAddress)
	if err != nil {
		return uuid.Nil, err
	}
	// fail early on a mechanic that could never take the booking
	if _, err := c.quote(ctx, in.MechanicID, vehicle, location, in.OBDRequested, now); err != nil {
		return uuid.Nil, err
	}

	p, err := proposal.NewProposal(buyerID, in.MechanicID, in.ProposedAt, proposal.Payload{
		Vehicle:      vehicle,
		Location:     location,
		OBDRequested: in.OBDRequested,
	}, now, c.proposals.TTL)
	if err != nil {
		return uuid.Nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Proposals().Create(ctx, p); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, proposal.ErrPendingExists)
			}
			return err
		}
		return Enqueue(ctx, tx, Notification{Topic: shared.TopicProposalReceived, Recipient: p.MechanicID(), Subject: p.ID()}, now)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID(), nil
}

// withProposal locks the proposal and resolves the actor's party. A lazily expired proposal
// is persisted before ErrExpired reaches the caller.
func (c *proposalCommandsImpl) withProposal(ctx context.Context, actorID, proposalID uuid.UUID, fn func(ctx context.Context, tx shared.Tx, p *proposal.Proposal, party proposal.Party, now time.Time) error) error {
	var expired error
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired = nil
		p, err := tx.Proposals().GetForUpdate(ctx, proposalID)
		if err != nil {
			return notFound(err, ErrProposalNotFound)
		}
		party, ok := p.PartyOf(actorID)
		if !ok {
			return ErrForbidden
		}

		now := c.clock.Now()
		err = fn(ctx, tx, p, party, now)
		if errs.Is(err, proposal.ErrExpired) {
			expired = err
			return c.saveExpired(ctx, tx, p, now)
		}
		return err
	})
	if err != nil {
		return err
	}
	return expired
}

func (c *proposalCommandsImpl) saveExpired(ctx context.Context, tx shared.Tx, p *proposal.Proposal, now time.Time) error {
	if err := tx.Proposals().Save(ctx, p); err != nil {
		return err
	}
	return enqueueAll(ctx, tx, now,
		Notification{Topic: shared.TopicProposalExpired, Recipient: p.BuyerID(), Subject: p.ID()},
		Notification{Topic: shared.TopicProposalExpired, Recipient: p.MechanicID(), Subject: p.ID()},
	)
}

func notifyOther(p *proposal.Proposal, actor proposal.Party, topic shared.NotificationTopic) Notification {
	recipient := p.MechanicID()
	if actor == proposal.PartyMechanic {
		recipient = p.BuyerID()
	}
	return Notification{Topic: topic, Recipient: recipient, Subject: p.ID()}
}

func (c *proposalCommandsImpl) Counter(ctx context.Context, actorID, proposalID uuid.UUID, proposedAt time.Time) (uuid.UUID, error) {
	var nextID uuid.UUID
	err := c.withProposal(ctx, actorID, proposalID, func(ctx context.Context, tx shared.Tx, p *proposal.Proposal, party proposal.Party, now time.Time) error {
		next, err := p.Counter(party, proposedAt, c.proposals.MaxRounds, now, c.proposals.TTL)
		if err != nil {
			return err
		}
		// the superseded row must leave pending before the partial unique index sees the new one
		if err := tx.Proposals().Save(ctx, p); err != nil {
			return err
		}
		if err := tx.Proposals().Create(ctx, next); err != nil {
			return err
		}
		nextID = next.ID()
		return Enqueue(ctx, tx, notifyOther(next, party, shared.TopicProposalReceived), now)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return nextID, nil
}

// Accept turns the proposal into a slot plus a booking through the same saga as a
// direct booking. A mechanic accepting has already agreed, so the booking starts confirmed.
func (c *proposalCommandsImpl) Accept(ctx context.Context, actorID, proposalID uuid.UUID) (*AcceptProposalResult, error) {
	var (
		snap  proposal.Snapshot
		party proposal.Party
	)
	err := c.withProposal(ctx, actorID, proposalID, func(_ context.Context, _ shared.Tx, p *proposal.Proposal, pt proposal.Party, now time.Time) error {
		if err := p.CheckTurn(pt, now); err != nil {
			return err
		}
		snap, party = p.Snapshot(), pt
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	payload := snap.Payload
	q, err := c.quote(ctx, snap.MechanicID, payload.Vehicle, payload.Location, payload.OBDRequested, now)
	if err != nil {
		return nil, err
	}
	s, err := slot.NewSlot(snap.MechanicID, snap.ProposedAt, snap.ProposedAt.Add(c.proposals.SlotDuration), now)
	if err != nil {
		return nil, err
	}

	b, auth, err := c.book(ctx, reservation{
		buyerID:      snap.BuyerID,
		quote:        q,
		scheduledAt:  snap.ProposedAt,
		vehicle:      payload.Vehicle,
		location:     payload.Location,
		obd:          payload.OBDRequested,
		newSlot:      s,
		processorRef: "proposal:" + proposalID.String(),
		autoConfirm:  party == proposal.PartyMechanic,
		within: func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
			p, err := tx.Proposals().GetForUpdate(ctx, proposalID)
			if err != nil {
				return notFound(err, ErrProposalNotFound)
			}
			now := c.clock.Now()
			if err := p.Accept(party, b.ID(), now); err != nil {
				return err
			}
			if err := tx.Proposals().Save(ctx, p); err != nil {
				return err
			}
			return Enqueue(ctx, tx, notifyOther(p, party, shared.TopicProposalAccepted), now)
		},
	})
	if err != nil {
		return nil, err
	}
	return &AcceptProposalResult{BookingID: b.ID(), ClientSecret: auth.ClientSecret}, nil
}

func (c *proposalCommandsImpl) Refuse(ctx context.Context, actorID, proposalID uuid.UUID) error {
	return c.withProposal(ctx, actorID, proposalID, func(ctx context.Context, tx shared.Tx, p *proposal.Proposal, party proposal.Party, now time.Time) error {
		if err := p.Refuse(party, now); err != nil {
			return err
		}
		if err := tx.Proposals().Save(ctx, p); err != nil {
			return err
		}
		return Enqueue(ctx, tx, notifyOther(p, party, shared.TopicProposalRefused), now)
	})
}

func (c *proposalCommandsImpl) Cancel(ctx context.Context, actorID, proposalID uuid.UUID) error {
	return c.withProposal(ctx, actorID, proposalID, func(ctx context.Context, tx shared.Tx, p *proposal.Proposal, party proposal.Party, now time.Time) error {
		if err := p.Cancel(party, now); err != nil {
			return err
		}
		return tx.Proposals().Save(ctx, p)
	})
}

func (c *proposalCommandsImpl) ExpireIfDue(ctx context.Context, proposalID uuid.UUID) (bool, error) {
	expired := false
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired = false
		p, err := tx.Proposals().GetForUpdate(ctx, proposalID)
		if err != nil {
			return notFound(err, ErrProposalNotFound)
		}
		now := c.clock.Now()
		if !p.Expire(now) {
			return nil
		}
		expired = true
		return c.saveExpired(ctx, tx, p, now)
	})
	return expired, err
}
