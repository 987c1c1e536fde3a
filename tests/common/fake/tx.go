//go:build unit || e2e

package fake

import (
	"context"
	"sort"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/dispute"
	"inspection-marketplace/internal/domain/inspection"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/domain/proposal"
	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/domain/user"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

type tx struct {
	store *Store
	st    *state
}

func (t *tx) Users() shared.UserRepository                 { return userRepo{t} }
func (t *tx) Mechanics() shared.MechanicRepository         { return mechanicRepo{t} }
func (t *tx) Slots() shared.SlotRepository                 { return slotRepo{t} }
func (t *tx) Bookings() shared.BookingRepository           { return bookingRepo{t} }
func (t *tx) Proposals() shared.ProposalRepository         { return proposalRepo{t} }
func (t *tx) Disputes() shared.DisputeRepository           { return disputeRepo{t} }
func (t *tx) Proofs() shared.ProofRepository               { return proofRepo{t} }
func (t *tx) WebhookEvents() shared.WebhookEventRepository { return webhookRepo{t} }
func (t *tx) Notifications() shared.NotificationRepository { return notificationRepo{t} }
func (t *tx) Idempotency() shared.IdempotencyRepository    { return idempotencyRepo{t} }
func (t *tx) RevokedTokens() shared.RevokedTokenRepository { return revokedRepo{t} }
func (t *tx) Reads() shared.CommandReads                   { return &reads{st: t.st} }
func (t *tx) DB() sqlc.DBTX                                { return nil }

func copyUser(u *user.User) *user.User {
	return user.ReconstructUser(u.ID(), u.Email(), u.PasswordHash(), u.Role(), u.EmailVerified(), u.IsActive(), u.CreatedAt(), u.UpdatedAt())
}

func copyDispute(c *dispute.Case) *dispute.Case {
	return dispute.Reconstruct(c.ID(), c.BookingID(), c.OpenedBy(), c.Reason(), c.Description(), c.Status(),
		c.ResolutionNote(), c.ResolvedBy(), c.ResolvedAt(), c.CreatedAt(), c.UpdatedAt())
}

type userRepo struct{ t *tx }

func (r userRepo) Create(_ context.Context, u *user.User) error {
	if err := r.t.store.fail("Users.Create"); err != nil {
		return err
	}
	for _, existing := range r.t.st.users {
		if existing.Email().Value() == u.Email().Value() {
			return duplicate("email")
		}
	}
	r.t.st.users[u.ID()] = copyUser(u)
	return nil
}

func (r userRepo) MarkEmailVerified(_ context.Context, id uuid.UUID, at time.Time) error {
	u, ok := r.t.st.users[id]
	if !ok {
		return notFound("user")
	}
	c := copyUser(u)
	c.VerifyEmail(at)
	r.t.st.users[id] = c
	return nil
}

type mechanicRepo struct{ t *tx }

func (r mechanicRepo) Upsert(_ context.Context, p *mechanic.Profile) error {
	snap := p.Snapshot()
	if existing, ok := r.t.st.mechanics[p.UserID()]; ok {
		existing.Base = snap.Base
		existing.ServiceRadiusKm = snap.ServiceRadiusKm
		existing.FreeZoneKm = snap.FreeZoneKm
		existing.AcceptedVehicleTypes = snap.AcceptedVehicleTypes
		existing.UpdatedAt = snap.UpdatedAt
		snap = existing
	}
	r.t.st.mechanics[p.UserID()] = snap
	return nil
}

func (r mechanicRepo) GetForUpdate(_ context.Context, userID uuid.UUID) (*mechanic.Profile, error) {
	snap, ok := r.t.st.mechanics[userID]
	if !ok {
		return nil, notFound("mechanic")
	}
	return mechanic.Reconstruct(snap), nil
}

func (r mechanicRepo) GetByPayoutAccountForUpdate(_ context.Context, accountID string) (*mechanic.Profile, error) {
	for _, snap := range r.t.st.mechanics {
		if snap.PayoutAccountID != nil && *snap.PayoutAccountID == accountID {
			return mechanic.Reconstruct(snap), nil
		}
	}
	return nil, notFound("mechanic")
}

func (r mechanicRepo) Save(_ context.Context, p *mechanic.Profile) error {
	if err := r.t.store.fail("Mechanics.Save"); err != nil {
		return err
	}
	r.t.st.mechanics[p.UserID()] = p.Snapshot()
	return nil
}

func (r mechanicRepo) ListNoShowDecayCandidates(_ context.Context, lastNoShowBefore time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, snap := range r.t.st.mechanics {
		if snap.NoShowCount > 0 && snap.LastNoShowAt != nil && snap.LastNoShowAt.Before(lastNoShowBefore) {
			ids = append(ids, id)
		}
	}
	return capIDs(ids, limit), nil
}

type slotRepo struct{ t *tx }

func (r slotRepo) Create(_ context.Context, s *slot.Slot) error {
	if err := r.t.store.fail("Slots.Create"); err != nil {
		return err
	}
	r.t.st.slots[s.ID()] = rowOf(s)
	return nil
}

func (r slotRepo) GetForUpdate(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	row, ok := r.t.st.slots[id]
	if !ok {
		return nil, notFound("slot")
	}
	return row.domain(), nil
}

func (r slotRepo) CountOverlapping(_ context.Context, mechanicID uuid.UUID, start, end time.Time) (int64, error) {
	var n int64
	for _, row := range r.t.st.slots {
		if row.mechanicID == mechanicID && row.startsAt.Before(end) && start.Before(row.endsAt) {
			n++
		}
	}
	return n, nil
}

func (r slotRepo) LockFreeInWindow(_ context.Context, mechanicID, excludeID uuid.UUID, start, end time.Time) ([]*slot.Slot, error) {
	var rows []slotRow
	for _, row := range r.t.st.slots {
		if row.mechanicID == mechanicID && row.id != excludeID && !row.isBooked &&
			row.startsAt.Before(end) && start.Before(row.endsAt) {
			rows = append(rows, row)
		}
	}
	return sortedSlots(rows), nil
}

func (r slotRepo) LockByBooking(_ context.Context, bookingID uuid.UUID) ([]*slot.Slot, error) {
	var rows []slotRow
	for _, row := range r.t.st.slots {
		if row.bookingID != nil && *row.bookingID == bookingID {
			rows = append(rows, row)
		}
	}
	return sortedSlots(rows), nil
}

func (r slotRepo) Save(_ context.Context, s *slot.Slot) error {
	if err := r.t.store.fail("Slots.Save"); err != nil {
		return err
	}
	r.t.st.slots[s.ID()] = rowOf(s)
	return nil
}

func sortedSlots(rows []slotRow) []*slot.Slot {
	sort.Slice(rows, func(i, j int) bool { return rows[i].startsAt.Before(rows[j].startsAt) })
	out := make([]*slot.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.domain())
	}
	return out
}

type bookingRepo struct{ t *tx }

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if err := r.t.store.fail("Bookings.Create"); err != nil {
		return err
	}
	if _, ok := r.t.st.bookings[b.ID()]; ok {
		return duplicate("booking")
	}
	r.t.st.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r bookingRepo) GetForUpdate(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	snap, ok := r.t.st.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return booking.Reconstruct(snap), nil
}

func (r bookingRepo) GetForUpdateSkipLocked(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	if r.t.store.Locked[id] {
		return nil, notFound("booking")
	}
	return r.GetForUpdate(ctx, id)
}

func (r bookingRepo) Save(_ context.Context, b *booking.Booking) error {
	if err := r.t.store.fail("Bookings.Save"); err != nil {
		return err
	}
	r.t.st.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r bookingRepo) ListStalePending(_ context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, snap := range r.t.st.bookings {
		if snap.Status == booking.StatusPendingAcceptance && snap.CreatedAt.Before(createdBefore) {
			ids = append(ids, id)
		}
	}
	return capIDs(ids, limit), nil
}

func (r bookingRepo) ListOverdueValidated(_ context.Context, validatedBefore time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, snap := range r.t.st.bookings {
		if snap.Status == booking.StatusValidated && snap.ValidatedAt != nil && snap.ValidatedAt.Before(validatedBefore) {
			ids = append(ids, id)
		}
	}
	return capIDs(ids, limit), nil
}

func (r bookingRepo) ListConfirmedInWindow(_ context.Context, from, to time.Time) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, snap := range r.t.st.bookings {
		if snap.Status == booking.StatusConfirmed && !snap.ScheduledAt.Before(from) && snap.ScheduledAt.Before(to) {
			out = append(out, booking.Reconstruct(snap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt().Before(out[j].ScheduledAt()) })
	return out, nil
}

type proposalRepo struct{ t *tx }

func (r proposalRepo) Create(_ context.Context, p *proposal.Proposal) error {
	if err := r.t.store.fail("Proposals.Create"); err != nil {
		return err
	}
	// one pending negotiation per buyer and mechanic
	if p.Status() == proposal.StatusPending {
		for _, snap := range r.t.st.proposals {
			if snap.Status == proposal.StatusPending && snap.BuyerID == p.BuyerID() && snap.MechanicID == p.MechanicID() {
				return duplicate("pending proposal")
			}
		}
	}
	r.t.st.proposals[p.ID()] = p.Snapshot()
	return nil
}

func (r proposalRepo) GetForUpdate(_ context.Context, id uuid.UUID) (*proposal.Proposal, error) {
	snap, ok := r.t.st.proposals[id]
	if !ok {
		return nil, notFound("proposal")
	}
	return proposal.Reconstruct(snap), nil
}

func (r proposalRepo) Save(_ context.Context, p *proposal.Proposal) error {
	r.t.st.proposals[p.ID()] = p.Snapshot()
	return nil
}

func (r proposalRepo) ListExpiredPending(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, snap := range r.t.st.proposals {
		if snap.Status == proposal.StatusPending && !snap.ExpiresAt.After(now) {
			ids = append(ids, id)
		}
	}
	return capIDs(ids, limit), nil
}

type disputeRepo struct{ t *tx }

func (r disputeRepo) Create(_ context.Context, c *dispute.Case) error {
	for _, existing := range r.t.st.disputes {
		if existing.BookingID() == c.BookingID() && existing.Status() == dispute.StatusOpen {
			return duplicate("open dispute")
		}
	}
	r.t.st.disputes[c.ID()] = copyDispute(c)
	return nil
}

func (r disputeRepo) GetForUpdate(_ context.Context, id uuid.UUID) (*dispute.Case, error) {
	c, ok := r.t.st.disputes[id]
	if !ok {
		return nil, notFound("dispute")
	}
	return copyDispute(c), nil
}

func (r disputeRepo) Save(_ context.Context, c *dispute.Case) error {
	r.t.st.disputes[c.ID()] = copyDispute(c)
	return nil
}

type proofRepo struct{ t *tx }

func (r proofRepo) Create(_ context.Context, p *inspection.Proof) error {
	for _, existing := range r.t.st.proofs {
		if existing.BookingID() == p.BookingID() {
			return duplicate("proof")
		}
	}
	r.t.st.proofs[p.ID()] = p
	return nil
}

type webhookRepo struct{ t *tx }

func (r webhookRepo) Record(_ context.Context, eventID, _ string, at time.Time) error {
	if _, ok := r.t.st.webhookEvents[eventID]; ok {
		return duplicate("webhook event")
	}
	r.t.st.webhookEvents[eventID] = at
	return nil
}

func (r webhookRepo) PurgeBefore(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for id, at := range r.t.st.webhookEvents {
		if at.Before(before) {
			delete(r.t.st.webhookEvents, id)
			n++
		}
	}
	return n, nil
}

type notificationRepo struct{ t *tx }

func (r notificationRepo) Enqueue(_ context.Context, job shared.NotificationJob) (bool, error) {
	if err := r.t.store.fail("Notifications.Enqueue"); err != nil {
		return false, err
	}
	for _, existing := range r.t.st.outbox {
		if existing.DedupeKey == job.DedupeKey {
			return false, nil
		}
	}
	r.t.store.seq++
	r.t.st.outbox[job.ID] = OutboxJob{NotificationJob: job, Seq: r.t.store.seq}
	return true, nil
}

func (r notificationRepo) ClaimDue(_ context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	var due []OutboxJob
	for _, j := range r.t.st.outbox {
		if !j.Sent && !j.Dead && !j.RunAt.After(now) {
			due = append(due, j)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].Seq < due[j].Seq })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	out := make([]shared.NotificationJob, 0, len(due))
	for _, j := range due {
		out = append(out, j.NotificationJob)
	}
	return out, nil
}

func (r notificationRepo) MarkSent(_ context.Context, id uuid.UUID, _ time.Time) error {
	j, ok := r.t.st.outbox[id]
	if !ok {
		return notFound("notification")
	}
	j.Sent = true
	r.t.st.outbox[id] = j
	return nil
}

func (r notificationRepo) MarkFailed(_ context.Context, id uuid.UUID, reason string, retryAt time.Time, maxAttempts int, _ time.Time) error {
	j, ok := r.t.st.outbox[id]
	if !ok {
		return notFound("notification")
	}
	j.Attempts++
	j.LastError = reason
	j.RunAt = retryAt
	if j.Attempts >= maxAttempts {
		j.Dead = true
	}
	r.t.st.outbox[id] = j
	return nil
}

type idempotencyRepo struct{ t *tx }

func (r idempotencyRepo) TryInsert(_ context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt, _ time.Time) (bool, error) {
	k := idemKey{key, userID}
	if _, ok := r.t.st.idempotency[k]; ok {
		return false, nil
	}
	r.t.st.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) Complete(_ context.Context, key, userID, bookingID uuid.UUID, _ time.Time) error {
	k := idemKey{key, userID}
	rec, ok := r.t.st.idempotency[k]
	if !ok {
		return notFound("idempotency key")
	}
	rec.Status = shared.IdempotencyCompleted
	rec.ResultBookingID = &bookingID
	r.t.st.idempotency[k] = rec
	return nil
}

func (r idempotencyRepo) Release(_ context.Context, key, userID uuid.UUID) error {
	k := idemKey{key, userID}
	if rec, ok := r.t.st.idempotency[k]; ok && rec.Status == shared.IdempotencyProcessing {
		delete(r.t.st.idempotency, k)
	}
	return nil
}

func (r idempotencyRepo) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for k, rec := range r.t.st.idempotency {
		if rec.ExpiresAt.Before(now) {
			delete(r.t.st.idempotency, k)
			n++
		}
	}
	return n, nil
}

type revokedRepo struct{ t *tx }

func (r revokedRepo) Revoke(_ context.Context, jti string, _ uuid.UUID, expiresAt time.Time) error {
	if _, ok := r.t.st.revoked[jti]; ok {
		return duplicate("revoked token")
	}
	r.t.st.revoked[jti] = expiresAt
	return nil
}

func (r revokedRepo) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for jti, exp := range r.t.st.revoked {
		if exp.Before(now) {
			delete(r.t.st.revoked, jti)
			n++
		}
	}
	return n, nil
}

func capIDs(ids []uuid.UUID, limit int) []uuid.UUID {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	if limit > 0 && len(ids) > limit {
		return ids[:limit]
	}
	return ids
}
