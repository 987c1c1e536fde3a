package jobs

import (
	"context"
	"log/slog"

	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

// ExpireProposals persists the expiry of pending proposals nobody touched again.
func (r *Runner) ExpireProposals(ctx context.Context) error {
	now := r.clock.Now()
	ids, err := r.listIDs(ctx, func(ctx context.Context, tx shared.Tx) ([]uuid.UUID, error) {
		return tx.Proposals().ListExpiredPending(ctx, now, r.settings.SweepBatchSize)
	})
	if err != nil {
		return err
	}
	r.sweep(ctx, "proposal-expiry", ids, r.proposals.ExpireIfDue)
	return nil
}

// DecayNoShows forgives mechanics whose last no-show is older than the decay period.
func (r *Runner) DecayNoShows(ctx context.Context) error {
	after := r.settings.NoShowDecayAfter
	cutoff := r.clock.Now().Add(-after)
	ids, err := r.listIDs(ctx, func(ctx context.Context, tx shared.Tx) ([]uuid.UUID, error) {
		return tx.Mechanics().ListNoShowDecayCandidates(ctx, cutoff, r.settings.SweepBatchSize)
	})
	if err != nil {
		return err
	}

	r.sweep(ctx, "no-show-decay", ids, func(ctx context.Context, id uuid.UUID) (bool, error) {
		decayed := false
		err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			decayed = false
			p, err := tx.Mechanics().GetForUpdate(ctx, id)
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if !p.DecayNoShows(r.clock.Now(), after) {
				return nil
			}
			decayed = true
			return tx.Mechanics().Save(ctx, p)
		})
		return decayed, err
	})
	return nil
}

func (r *Runner) PurgeWebhookEvents(ctx context.Context) error {
	before := r.clock.Now().Add(-r.settings.WebhookRetention)
	var n int64
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		n, err = tx.WebhookEvents().PurgeBefore(ctx, before)
		return err
	})
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("webhook ledger purged", slog.Int64("deleted", n))
	}
	return nil
}

// Housekeeping drops expired request idempotency keys and revoked tokens past their expiry.
func (r *Runner) Housekeeping(ctx context.Context) error {
	now := r.clock.Now()
	var keys, tokens int64
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if keys, err = tx.Idempotency().PurgeExpired(ctx, now); err != nil {
			return err
		}
		tokens, err = tx.RevokedTokens().PurgeExpired(ctx, now)
		return err
	})
	if err != nil {
		return err
	}
	if keys > 0 || tokens > 0 {
		slog.Info("housekeeping done",
			slog.Int64("idempotency_keys", keys),
			slog.Int64("revoked_tokens", tokens))
	}
	return nil
}
