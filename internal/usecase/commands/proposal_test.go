//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/proposal"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/shared"
	"inspection-marketplace/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (h *harness) proposeInput() commands.ProposeInput {
	return commands.ProposeInput{
		MechanicID:     h.mechanic.UserID(),
		ProposedAt:     testNow.Add(72 * time.Hour),
		VehicleType:    "car",
		VehicleBrand:   "Renault",
		VehicleModel:   "Clio",
		VehicleYear:    2018,
		VehiclePlate:   "CD-456-EF",
		MeetingLat:     builder.Paris.Lat,
		MeetingLng:     builder.Paris.Lng,
		MeetingAddress: "Place de la Concorde, Paris",
	}
}

// putProposal stores a pending round one authored by the buyer unless mutate says otherwise.
func (h *harness) putProposal(mutate func(*proposal.Snapshot)) *proposal.Proposal {
	pb := builder.NewProposalBuilder().WithParties(h.buyer.ID(), h.mechanic.UserID())
	if mutate != nil {
		pb.With(mutate)
	}
	p := pb.BuildDomain()
	h.store.PutProposal(p)
	return p
}

func TestPropose(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a pending proposal and notifies the mechanic", func(t *testing.T) {
		h := newHarness(t)

		id, err := h.proposals.Propose(ctx, h.buyer.ID(), h.proposeInput())

		require.NoError(t, err)
		p := h.store.Proposal(id)
		require.NotNil(t, p)
		assert.Equal(t, proposal.StatusPending, p.Status())
		assert.Equal(t, 1, p.RoundNumber())
		assert.Equal(t, proposal.PartyBuyer, p.RespondedBy())
		assert.Equal(t, testNow.Add(48*time.Hour), p.ExpiresAt())
		assert.Equal(t, []shared.NotificationTopic{shared.TopicProposalReceived}, h.store.Topics())
		assert.Empty(t, h.payment.Authorizations)
	})

	t.Run("one pending proposal per buyer and mechanic", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.proposals.Propose(ctx, h.buyer.ID(), h.proposeInput())
		require.NoError(t, err)

		_, err = h.proposals.Propose(ctx, h.buyer.ID(), h.proposeInput())

		requireIs(t, err, proposal.ErrPendingExists)
		assert.Len(t, h.store.Proposals(), 1)
	})

	t.Run("rejects a date in the past", func(t *testing.T) {
		h := newHarness(t)
		in := h.proposeInput()
		in.ProposedAt = testNow.Add(-time.Hour)

		_, err := h.proposals.Propose(ctx, h.buyer.ID(), in)

		requireIs(t, err, proposal.ErrInvalidDate)
	})

	t.Run("rejects an unverified buyer", func(t *testing.T) {
		h := newHarness(t)
		u, err := builder.NewUserBuilder().WithEmail("new@example.com").AsUnverified().BuildDomain()
		require.NoError(t, err)
		h.store.PutUser(u)

		_, err = h.proposals.Propose(ctx, u.ID(), h.proposeInput())

		requireIs(t, err, commands.ErrEmailNotVerified)
	})
}

func TestCounterProposal(t *testing.T) {
	ctx := context.Background()

	t.Run("mechanic counter supersedes the round", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(nil)
		at := testNow.Add(96 * time.Hour)

		nextID, err := h.proposals.Counter(ctx, h.mechanic.UserID(), p.ID(), at)

		require.NoError(t, err)
		assert.Equal(t, proposal.StatusCounterProposed, h.store.Proposal(p.ID()).Status())
		next := h.store.Proposal(nextID)
		require.NotNil(t, next)
		assert.Equal(t, 2, next.RoundNumber())
		assert.Equal(t, proposal.PartyMechanic, next.RespondedBy())
		assert.Equal(t, at, next.ProposedAt())
		require.NotNil(t, next.ParentID())
		assert.Equal(t, p.ID(), *next.ParentID())

		out := h.store.Outbox()
		require.Len(t, out, 1)
		assert.Contains(t, out[0].DedupeKey, h.buyer.ID().String())
	})

	t.Run("the author cannot answer their own round", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(nil)

		_, err := h.proposals.Counter(ctx, h.buyer.ID(), p.ID(), testNow.Add(96*time.Hour))

		requireIs(t, err, proposal.ErrNotYourTurn)
	})

	t.Run("stops at the round limit", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(func(s *proposal.Snapshot) { s.RoundNumber = 3 })

		_, err := h.proposals.Counter(ctx, h.mechanic.UserID(), p.ID(), testNow.Add(96*time.Hour))

		requireIs(t, err, proposal.ErrMaxRounds)
		assert.Equal(t, proposal.StatusPending, h.store.Proposal(p.ID()).Status())
	})

	t.Run("outsiders are forbidden", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(nil)

		_, err := h.proposals.Counter(ctx, uuid.New(), p.ID(), testNow.Add(96*time.Hour))

		requireIs(t, err, commands.ErrForbidden)
	})

	t.Run("unknown proposal", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.proposals.Counter(ctx, h.buyer.ID(), uuid.New(), testNow.Add(96*time.Hour))

		requireIs(t, err, commands.ErrProposalNotFound)
	})
}

func TestAcceptProposal(t *testing.T) {
	ctx := context.Background()

	t.Run("mechanic acceptance books a confirmed inspection", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(nil)

		res, err := h.proposals.Accept(ctx, h.mechanic.UserID(), p.ID())

		require.NoError(t, err)
		assert.Equal(t, "pi_fake_1_secret", res.ClientSecret)

		b := h.store.Booking(res.BookingID)
		require.NotNil(t, b)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, p.ProposedAt(), b.ScheduledAt())
		assert.Equal(t, "Clio", b.Vehicle().Model)

		require.NotNil(t, b.SlotID())
		s := h.store.Slot(*b.SlotID())
		require.NotNil(t, s)
		assert.True(t, s.IsBooked())
		assert.Equal(t, p.ProposedAt(), s.StartsAt())
		assert.Equal(t, p.ProposedAt().Add(time.Hour), s.EndsAt())

		stored := h.store.Proposal(p.ID())
		assert.Equal(t, proposal.StatusAccepted, stored.Status())
		require.NotNil(t, stored.BookingID())
		assert.Equal(t, b.ID(), *stored.BookingID())

		require.Len(t, h.payment.Authorizations, 1)
		assert.True(t, strings.HasPrefix(h.payment.Authorizations[0].IdempotencyKey, "proposal:"+p.ID().String()+"/"))
		assert.ElementsMatch(t, []shared.NotificationTopic{
			shared.TopicProposalAccepted,
			shared.TopicBookingConfirmed,
			shared.TopicBookingConfirmed,
		}, h.store.Topics())
	})

	t.Run("buyer acceptance of a counter awaits the mechanic", func(t *testing.T) {
		h := newHarness(t)
		p := builder.NewProposalBuilder().WithParties(h.buyer.ID(), h.mechanic.UserID()).AwaitingBuyer().BuildDomain()
		h.store.PutProposal(p)

		res, err := h.proposals.Accept(ctx, h.buyer.ID(), p.ID())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusPendingAcceptance, h.store.Booking(res.BookingID).Status())
	})

	t.Run("an overlapping booked slot voids the authorization", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(nil)
		taken := builder.NewSlotBuilder().
			WithMechanic(h.mechanic.UserID()).
			StartingAt(p.ProposedAt().Add(-30*time.Minute), time.Hour).
			BookedBy(uuid.New()).
			BuildDomain()
		h.store.PutSlot(taken)

		_, err := h.proposals.Accept(ctx, h.mechanic.UserID(), p.ID())

		requireIs(t, err, commands.ErrSlotAlreadyBooked)
		assert.Equal(t, []string{"pi_fake_1"}, h.payment.Cancels)
		assert.Equal(t, proposal.StatusPending, h.store.Proposal(p.ID()).Status())
		assert.Empty(t, h.store.Bookings())
	})

	t.Run("a retry after a failed write authorizes afresh", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(nil)
		h.store.Fail["Bookings.Create"] = errs.New("db down")

		_, err := h.proposals.Accept(ctx, h.mechanic.UserID(), p.ID())
		require.Error(t, err)
		assert.Equal(t, []string{"pi_fake_1"}, h.payment.Cancels)

		delete(h.store.Fail, "Bookings.Create")
		res, err := h.proposals.Accept(ctx, h.mechanic.UserID(), p.ID())
		require.NoError(t, err)

		b := h.store.Booking(res.BookingID)
		assert.Equal(t, "pi_fake_2", b.PaymentIntentID())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		require.Len(t, h.payment.Authorizations, 2)
		assert.Equal(t, []string{"pi_fake_1"}, h.payment.Cancels)
	})

	t.Run("an expired proposal is persisted as expired", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(nil)
		h.clock.Add(49 * time.Hour)

		_, err := h.proposals.Accept(ctx, h.mechanic.UserID(), p.ID())

		requireIs(t, err, proposal.ErrExpired)
		assert.Equal(t, proposal.StatusExpired, h.store.Proposal(p.ID()).Status())
		assert.Equal(t, []shared.NotificationTopic{
			shared.TopicProposalExpired,
			shared.TopicProposalExpired,
		}, h.store.Topics())
		assert.Empty(t, h.payment.Authorizations)
	})

	t.Run("the author cannot accept", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(nil)

		_, err := h.proposals.Accept(ctx, h.buyer.ID(), p.ID())

		requireIs(t, err, proposal.ErrNotYourTurn)
		assert.Empty(t, h.payment.Authorizations)
	})
}

func TestRefuseAndCancelProposal(t *testing.T) {
	ctx := context.Background()

	t.Run("refuse notifies the author", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(nil)

		require.NoError(t, h.proposals.Refuse(ctx, h.mechanic.UserID(), p.ID()))

		assert.Equal(t, proposal.StatusRefused, h.store.Proposal(p.ID()).Status())
		out := h.store.Outbox()
		require.Len(t, out, 1)
		assert.Equal(t, shared.TopicProposalRefused, out[0].Topic)
		assert.Contains(t, out[0].DedupeKey, h.buyer.ID().String())
	})

	t.Run("refuse twice", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(nil)
		require.NoError(t, h.proposals.Refuse(ctx, h.mechanic.UserID(), p.ID()))

		err := h.proposals.Refuse(ctx, h.mechanic.UserID(), p.ID())

		requireIs(t, err, proposal.ErrNotPending)
	})

	t.Run("the author withdraws", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(nil)

		require.NoError(t, h.proposals.Cancel(ctx, h.buyer.ID(), p.ID()))

		assert.Equal(t, proposal.StatusCancelled, h.store.Proposal(p.ID()).Status())
	})

	t.Run("only the author withdraws", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(nil)

		err := h.proposals.Cancel(ctx, h.mechanic.UserID(), p.ID())

		requireIs(t, err, proposal.ErrNotAuthor)
	})
}

func TestExpireProposalIfDue(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		advance time.Duration
		status  proposal.Status
		expired bool
	}{
		{name: "still open", advance: 47 * time.Hour, status: proposal.StatusPending},
		{name: "at the deadline", advance: 48 * time.Hour, status: proposal.StatusExpired, expired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			p := h.putProposal(nil)
			h.clock.Add(tt.advance)

			expired, err := h.proposals.ExpireIfDue(ctx, p.ID())

			require.NoError(t, err)
			assert.Equal(t, tt.expired, expired)
			assert.Equal(t, tt.status, h.store.Proposal(p.ID()).Status())
		})
	}

	t.Run("settled proposals are left alone", func(t *testing.T) {
		h := newHarness(t)
		p := h.putProposal(func(s *proposal.Snapshot) { s.Status = proposal.StatusRefused })
		h.clock.Add(72 * time.Hour)

		expired, err := h.proposals.ExpireIfDue(ctx, p.ID())

		require.NoError(t, err)
		assert.False(t, expired)
		assert.Empty(t, h.store.Outbox())
	})
}
