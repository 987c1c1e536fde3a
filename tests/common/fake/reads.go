//go:build unit || e2e

package fake

import (
	"context"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/dispute"
	"inspection-marketplace/internal/domain/inspection"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/domain/proposal"
	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

type reads struct{ st *state }

var _ shared.CommandReads = (*reads)(nil)

func (r *reads) UserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, notFound("user")
	}
	return copyUser(u), nil
}

func (r *reads) UserByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.st.users {
		if u.Email().Value() == email {
			return copyUser(u), nil
		}
	}
	return nil, notFound("user")
}

func (r *reads) MechanicByID(_ context.Context, userID uuid.UUID) (*mechanic.Profile, error) {
	snap, ok := r.st.mechanics[userID]
	if !ok {
		return nil, notFound("mechanic")
	}
	return mechanic.Reconstruct(snap), nil
}

func (r *reads) SlotByID(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	row, ok := r.st.slots[id]
	if !ok {
		return nil, notFound("slot")
	}
	return row.domain(), nil
}

func (r *reads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	snap, ok := r.st.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return booking.Reconstruct(snap), nil
}

func (r *reads) BookingIDByPaymentIntent(_ context.Context, paymentIntentID string) (uuid.UUID, error) {
	for id, snap := range r.st.bookings {
		if snap.PaymentIntentID == paymentIntentID {
			return id, nil
		}
	}
	return uuid.Nil, notFound("booking")
}

func (r *reads) ProposalByID(_ context.Context, id uuid.UUID) (*proposal.Proposal, error) {
	snap, ok := r.st.proposals[id]
	if !ok {
		return nil, notFound("proposal")
	}
	return proposal.Reconstruct(snap), nil
}

func (r *reads) DisputeByID(_ context.Context, id uuid.UUID) (*dispute.Case, error) {
	c, ok := r.st.disputes[id]
	if !ok {
		return nil, notFound("dispute")
	}
	return copyDispute(c), nil
}

func (r *reads) ProofByBooking(_ context.Context, bookingID uuid.UUID) (*inspection.Proof, error) {
	for _, p := range r.st.proofs {
		if p.BookingID() == bookingID {
			return p, nil
		}
	}
	return nil, notFound("proof")
}

func (r *reads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.st.idempotency[idemKey{key, userID}]
	if !ok {
		return nil, notFound("idempotency key")
	}
	return &rec, nil
}

func (r *reads) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := r.st.revoked[jti]
	return ok, nil
}
