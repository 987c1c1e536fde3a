package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/dispute"
	"inspection-marketplace/internal/domain/inspection"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/domain/proposal"
	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/infra/repository"
	"inspection-marketplace/internal/infra/repository/converter"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/pkg/pgconv"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
	q    *sqlc.Queries
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return &PostgresUoW{
		pool: pool,
		q:    q,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	userRepo         shared.UserRepository
	mechanicRepo     shared.MechanicRepository
	slotRepo         shared.SlotRepository
	bookingRepo      shared.BookingRepository
	proposalRepo     shared.ProposalRepository
	disputeRepo      shared.DisputeRepository
	proofRepo        shared.ProofRepository
	webhookRepo      shared.WebhookEventRepository
	notificationRepo shared.NotificationRepository
	idempotencyRepo  shared.IdempotencyRepository
	revokedRepo      shared.RevokedTokenRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() sqlc.DBTX {
	return t.dbtx
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.uow.q, t.dbtx)
	}
	return t.userRepo
}

func (t *pgTx) Mechanics() shared.MechanicRepository {
	if t.mechanicRepo == nil {
		t.mechanicRepo = repository.NewMechanicRepository(t.uow.q, t.dbtx)
	}
	return t.mechanicRepo
}

func (t *pgTx) Slots() shared.SlotRepository {
	if t.slotRepo == nil {
		t.slotRepo = repository.NewSlotRepository(t.uow.q, t.dbtx)
	}
	return t.slotRepo
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.uow.q, t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Proposals() shared.ProposalRepository {
	if t.proposalRepo == nil {
		t.proposalRepo = repository.NewProposalRepository(t.uow.q, t.dbtx)
	}
	return t.proposalRepo
}

func (t *pgTx) Disputes() shared.DisputeRepository {
	if t.disputeRepo == nil {
		t.disputeRepo = repository.NewDisputeRepository(t.uow.q, t.dbtx)
	}
	return t.disputeRepo
}

func (t *pgTx) Proofs() shared.ProofRepository {
	if t.proofRepo == nil {
		t.proofRepo = repository.NewProofRepository(t.uow.q, t.dbtx)
	}
	return t.proofRepo
}

func (t *pgTx) WebhookEvents() shared.WebhookEventRepository {
	if t.webhookRepo == nil {
		t.webhookRepo = repository.NewWebhookEventRepository(t.uow.q, t.dbtx)
	}
	return t.webhookRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.uow.q, t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.uow.q, t.dbtx)
	}
	return t.idempotencyRepo
}

func (t *pgTx) RevokedTokens() shared.RevokedTokenRepository {
	if t.revokedRepo == nil {
		t.revokedRepo = repository.NewRevokedTokenRepository(t.uow.q, t.dbtx)
	}
	return t.revokedRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			uow:  t.uow,
			dbtx: t.dbtx,
		}
	}
	return t.commandReads
}

// commandReads loads aggregates without locking. Inside a transaction they see its writes.
type commandReads struct {
	uow  *PostgresUoW
	dbtx sqlc.DBTX
}

func lookupErr(entity string, err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(entity+" not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr("failed to load "+entity, err)
}

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row, err := r.uow.q.FindUserByID(ctx, r.dbtx, id)
	if err != nil {
		return nil, lookupErr("user", err)
	}
	return converter.UserFromRow(row)
}

func (r *commandReads) UserByEmail(ctx context.Context, email string) (*user.User, error) {
	row, err := r.uow.q.FindUserByEmail(ctx, r.dbtx, email)
	if err != nil {
		return nil, lookupErr("user", err)
	}
	return converter.UserFromRow(row)
}

func (r *commandReads) MechanicByID(ctx context.Context, userID uuid.UUID) (*mechanic.Profile, error) {
	row, err := r.uow.q.GetMechanicProfile(ctx, r.dbtx, userID)
	if err != nil {
		return nil, lookupErr("mechanic profile", err)
	}
	return converter.MechanicFromRow(row)
}

func (r *commandReads) SlotByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	row, err := r.uow.q.GetSlot(ctx, r.dbtx, id)
	if err != nil {
		return nil, lookupErr("slot", err)
	}
	return converter.SlotFromRow(row), nil
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.uow.q.GetBooking(ctx, r.dbtx, id)
	if err != nil {
		return nil, lookupErr("booking", err)
	}
	return converter.BookingFromRow(row)
}

func (r *commandReads) BookingIDByPaymentIntent(ctx context.Context, paymentIntentID string) (uuid.UUID, error) {
	id, err := r.uow.q.GetBookingIDByPaymentIntent(ctx, r.dbtx, paymentIntentID)
	if err != nil {
		return uuid.Nil, lookupErr("booking", err)
	}
	return id, nil
}

func (r *commandReads) ProposalByID(ctx context.Context, id uuid.UUID) (*proposal.Proposal, error) {
	row, err := r.uow.q.GetProposal(ctx, r.dbtx, id)
	if err != nil {
		return nil, lookupErr("proposal", err)
	}
	return converter.ProposalFromRow(row), nil
}

func (r *commandReads) DisputeByID(ctx context.Context, id uuid.UUID) (*dispute.Case, error) {
	row, err := r.uow.q.GetDispute(ctx, r.dbtx, id)
	if err != nil {
		return nil, lookupErr("dispute", err)
	}
	return converter.DisputeFromRow(row), nil
}

func (r *commandReads) ProofByBooking(ctx context.Context, bookingID uuid.UUID) (*inspection.Proof, error) {
	row, err := r.uow.q.GetProofByBooking(ctx, r.dbtx, bookingID)
	if err != nil {
		return nil, lookupErr("inspection proof", err)
	}
	return converter.ProofFromRow(row)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, err := r.uow.q.GetIdempotencyKey(ctx, r.dbtx, sqlc.GetIdempotencyKeyParams{Key: key, UserID: userID})
	if err != nil {
		return nil, lookupErr("idempotency key", err)
	}
	return converter.IdempotencyFromRow(row), nil
}

func (r *commandReads) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	revoked, err := r.uow.q.IsTokenRevoked(ctx, r.dbtx, jti)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check token revocation", err)
	}
	return revoked, nil
}
