//go:build unit || e2e

// Package fake holds in-memory stand-ins for the persistence and processor ports. The
// store applies a transaction's writes only when its callback returns nil, which is the
// property the command tests lean on. It is not safe for concurrent use.
package fake

import (
	"context"
	"maps"
	"sort"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/dispute"
	"inspection-marketplace/internal/domain/inspection"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/domain/proposal"
	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/infra"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

type slotRow struct {
	id, mechanicID     uuid.UUID
	startsAt, endsAt   time.Time
	isBooked           bool
	bookingID          *uuid.UUID
	createdAt, updated time.Time
}

func rowOf(s *slot.Slot) slotRow {
	return slotRow{s.ID(), s.MechanicID(), s.StartsAt(), s.EndsAt(), s.IsBooked(), s.BookingID(), s.CreatedAt(), s.UpdatedAt()}
}

func (r slotRow) domain() *slot.Slot {
	return slot.Reconstruct(r.id, r.mechanicID, r.startsAt, r.endsAt, r.isBooked, r.bookingID, r.createdAt, r.updated)
}

type idemKey struct{ key, userID uuid.UUID }

// OutboxJob is a queued notification plus its delivery state.
type OutboxJob struct {
	shared.NotificationJob
	Seq       int
	Sent      bool
	Dead      bool
	LastError string
}

type state struct {
	users         map[uuid.UUID]*user.User
	mechanics     map[uuid.UUID]mechanic.Snapshot
	slots         map[uuid.UUID]slotRow
	bookings      map[uuid.UUID]booking.Snapshot
	proposals     map[uuid.UUID]proposal.Snapshot
	disputes      map[uuid.UUID]*dispute.Case
	proofs        map[uuid.UUID]*inspection.Proof
	webhookEvents map[string]time.Time
	outbox        map[uuid.UUID]OutboxJob
	idempotency   map[idemKey]shared.IdempotencyRecord
	revoked       map[string]time.Time
}

func newState() *state {
	return &state{
		users:         map[uuid.UUID]*user.User{},
		mechanics:     map[uuid.UUID]mechanic.Snapshot{},
		slots:         map[uuid.UUID]slotRow{},
		bookings:      map[uuid.UUID]booking.Snapshot{},
		proposals:     map[uuid.UUID]proposal.Snapshot{},
		disputes:      map[uuid.UUID]*dispute.Case{},
		proofs:        map[uuid.UUID]*inspection.Proof{},
		webhookEvents: map[string]time.Time{},
		outbox:        map[uuid.UUID]OutboxJob{},
		idempotency:   map[idemKey]shared.IdempotencyRecord{},
		revoked:       map[string]time.Time{},
	}
}

// clone copies every table. Users and dispute cases are copied on write, so sharing the
// pointers here is safe.
func (s *state) clone() *state {
	return &state{
		users:         maps.Clone(s.users),
		mechanics:     maps.Clone(s.mechanics),
		slots:         maps.Clone(s.slots),
		bookings:      maps.Clone(s.bookings),
		proposals:     maps.Clone(s.proposals),
		disputes:      maps.Clone(s.disputes),
		proofs:        maps.Clone(s.proofs),
		webhookEvents: maps.Clone(s.webhookEvents),
		outbox:        maps.Clone(s.outbox),
		idempotency:   maps.Clone(s.idempotency),
		revoked:       maps.Clone(s.revoked),
	}
}

// Store implements shared.UnitOfWork.
type Store struct {
	committed *state
	// Locked rows are held by "another worker": skip-locked loads report NOT_FOUND.
	Locked map[uuid.UUID]bool
	// Fail injects an error into the named repository call, e.g. "Bookings.Create".
	Fail    map[string]error
	seq     int
	Commits int
	Aborts  int
}

var _ shared.UnitOfWork = (*Store)(nil)

func NewStore() *Store {
	return &Store{committed: newState(), Locked: map[uuid.UUID]bool{}, Fail: map[string]error{}}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	work := s.committed.clone()
	if err := fn(ctx, &tx{store: s, st: work}); err != nil {
		s.Aborts++
		return err
	}
	s.committed = work
	s.Commits++
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{st: s.committed}
}

func (s *Store) fail(op string) error {
	return s.Fail[op]
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func duplicate(what string) error {
	return infra.WrapRepoErr("duplicate "+what, nil, infra.KindDuplicateKey)
}

// Seeding and inspection helpers. They act on committed state directly.

func (s *Store) PutUser(u *user.User)                          { s.committed.users[u.ID()] = u }
func (s *Store) PutMechanic(p *mechanic.Profile)               { s.committed.mechanics[p.UserID()] = p.Snapshot() }
func (s *Store) PutSlot(sl *slot.Slot)                         { s.committed.slots[sl.ID()] = rowOf(sl) }
func (s *Store) PutBooking(b *booking.Booking)                 { s.committed.bookings[b.ID()] = b.Snapshot() }
func (s *Store) PutProposal(p *proposal.Proposal)              { s.committed.proposals[p.ID()] = p.Snapshot() }
func (s *Store) PutDispute(c *dispute.Case)                    { s.committed.disputes[c.ID()] = c }
func (s *Store) PutIdempotency(r shared.IdempotencyRecord)     { s.committed.idempotency[idemKey{r.Key, r.UserID}] = r }
func (s *Store) PutWebhookEvent(id string, at time.Time)       { s.committed.webhookEvents[id] = at }
func (s *Store) PutRevokedToken(jti string, expires time.Time) { s.committed.revoked[jti] = expires }

func (s *Store) User(id uuid.UUID) *user.User { return s.committed.users[id] }

func (s *Store) Mechanic(id uuid.UUID) *mechanic.Profile {
	snap, ok := s.committed.mechanics[id]
	if !ok {
		return nil
	}
	return mechanic.Reconstruct(snap)
}

func (s *Store) Slot(id uuid.UUID) *slot.Slot {
	r, ok := s.committed.slots[id]
	if !ok {
		return nil
	}
	return r.domain()
}

func (s *Store) Booking(id uuid.UUID) *booking.Booking {
	snap, ok := s.committed.bookings[id]
	if !ok {
		return nil
	}
	return booking.Reconstruct(snap)
}

func (s *Store) Bookings() []*booking.Booking {
	out := make([]*booking.Booking, 0, len(s.committed.bookings))
	for _, snap := range s.committed.bookings {
		out = append(out, booking.Reconstruct(snap))
	}
	return out
}

func (s *Store) Proposal(id uuid.UUID) *proposal.Proposal {
	snap, ok := s.committed.proposals[id]
	if !ok {
		return nil
	}
	return proposal.Reconstruct(snap)
}

func (s *Store) Proposals() []*proposal.Proposal {
	out := make([]*proposal.Proposal, 0, len(s.committed.proposals))
	for _, snap := range s.committed.proposals {
		out = append(out, proposal.Reconstruct(snap))
	}
	return out
}

func (s *Store) Dispute(id uuid.UUID) *dispute.Case { return s.committed.disputes[id] }

func (s *Store) Disputes() []*dispute.Case {
	out := make([]*dispute.Case, 0, len(s.committed.disputes))
	for _, c := range s.committed.disputes {
		out = append(out, c)
	}
	return out
}

func (s *Store) Proofs() []*inspection.Proof {
	out := make([]*inspection.Proof, 0, len(s.committed.proofs))
	for _, p := range s.committed.proofs {
		out = append(out, p)
	}
	return out
}

func (s *Store) Idempotency(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	r, ok := s.committed.idempotency[idemKey{key, userID}]
	return r, ok
}

func (s *Store) WebhookEventRecorded(id string) bool {
	_, ok := s.committed.webhookEvents[id]
	return ok
}

func (s *Store) TokenRevoked(jti string) bool {
	_, ok := s.committed.revoked[jti]
	return ok
}

// Outbox lists queued jobs in creation order.
func (s *Store) Outbox() []OutboxJob {
	out := make([]OutboxJob, 0, len(s.committed.outbox))
	for _, j := range s.committed.outbox {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// Topics lists the topics of queued jobs, useful for order-insensitive assertions.
func (s *Store) Topics() []shared.NotificationTopic {
	var out []shared.NotificationTopic
	for _, j := range s.Outbox() {
		out = append(out, j.Topic)
	}
	return out
}
