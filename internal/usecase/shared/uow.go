package shared

import (
	"context"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/dispute"
	"inspection-marketplace/internal/domain/inspection"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/domain/proposal"
	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/domain/user"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Tx repositories are bound to the open transaction; every call runs inside it.
type Tx interface {
	Users() UserRepository
	Mechanics() MechanicRepository
	Slots() SlotRepository
	Bookings() BookingRepository
	Proposals() ProposalRepository
	Disputes() DisputeRepository
	Proofs() ProofRepository
	WebhookEvents() WebhookEventRepository
	Notifications() NotificationRepository
	Idempotency() IdempotencyRepository
	RevokedTokens() RevokedTokenRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

// CommandReads are plain (non-locking) loads used for guards before or inside a write.
type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UserByEmail(ctx context.Context, email string) (*user.User, error)
	MechanicByID(ctx context.Context, userID uuid.UUID) (*mechanic.Profile, error)
	SlotByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	BookingIDByPaymentIntent(ctx context.Context, paymentIntentID string) (uuid.UUID, error)
	ProposalByID(ctx context.Context, id uuid.UUID) (*proposal.Proposal, error)
	DisputeByID(ctx context.Context, id uuid.UUID) (*dispute.Case, error)
	ProofByBooking(ctx context.Context, bookingID uuid.UUID) (*inspection.Proof, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error
}

type MechanicRepository interface {
	Upsert(ctx context.Context, p *mechanic.Profile) error
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*mechanic.Profile, error)
	GetByPayoutAccountForUpdate(ctx context.Context, accountID string) (*mechanic.Profile, error)
	Save(ctx context.Context, p *mechanic.Profile) error
	ListNoShowDecayCandidates(ctx context.Context, lastNoShowBefore time.Time, limit int) ([]uuid.UUID, error)
}

type SlotRepository interface {
	Create(ctx context.Context, s *slot.Slot) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	CountOverlapping(ctx context.Context, mechanicID uuid.UUID, start, end time.Time) (int64, error)
	// LockFreeInWindow locks free slots of the mechanic overlapping [start, end), ordered by start.
	LockFreeInWindow(ctx context.Context, mechanicID, excludeID uuid.UUID, start, end time.Time) ([]*slot.Slot, error)
	LockByBooking(ctx context.Context, bookingID uuid.UUID) ([]*slot.Slot, error)
	Save(ctx context.Context, s *slot.Slot) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// GetForUpdateSkipLocked reports NOT_FOUND when another worker already holds the row.
	GetForUpdateSkipLocked(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Save(ctx context.Context, b *booking.Booking) error
	ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error)
	ListOverdueValidated(ctx context.Context, validatedBefore time.Time, limit int) ([]uuid.UUID, error)
	ListConfirmedInWindow(ctx context.Context, from, to time.Time) ([]*booking.Booking, error)
}

type ProposalRepository interface {
	Create(ctx context.Context, p *proposal.Proposal) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*proposal.Proposal, error)
	Save(ctx context.Context, p *proposal.Proposal) error
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

type DisputeRepository interface {
	Create(ctx context.Context, c *dispute.Case) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*dispute.Case, error)
	Save(ctx context.Context, c *dispute.Case) error
}

type ProofRepository interface {
	Create(ctx context.Context, p *inspection.Proof) error
}

type WebhookEventRepository interface {
	// Record fails with DUPLICATE_KEY when the event id was already ingested.
	Record(ctx context.Context, eventID, eventType string, at time.Time) error
	PurgeBefore(ctx context.Context, before time.Time) (int64, error)
}

type NotificationRepository interface {
	// Enqueue reports false when a job with the same dedupe key already exists.
	Enqueue(ctx context.Context, job NotificationJob) (bool, error)
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]NotificationJob, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string, retryAt time.Time, maxAttempts int, at time.Time) error
}

type IdempotencyRepository interface {
	// TryInsert reports false when the key already exists for this user.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt, now time.Time) (bool, error)
	Complete(ctx context.Context, key, userID, bookingID uuid.UUID, at time.Time) error
	Release(ctx context.Context, key, userID uuid.UUID) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type RevokedTokenRepository interface {
	Revoke(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
