package commands

import (
	"context"
	"log/slog"

	"inspection-marketplace/internal/pkg/clock"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

type AdminCommands interface {
	VerifyEmail(ctx context.Context, userID uuid.UUID) error
	VerifyIdentity(ctx context.Context, mechanicID uuid.UUID) error
}

type adminCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAdminCommands(uow shared.UnitOfWork, clk clock.Clock) AdminCommands {
	return &adminCommandsImpl{uow: uow, clock: clk}
}

func (a *adminCommandsImpl) VerifyEmail(ctx context.Context, userID uuid.UUID) error {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return notFound(tx.Users().MarkEmailVerified(ctx, userID, a.clock.Now()), ErrUserNotFound)
	})
	if err != nil {
		return err
	}
	slog.Info("email verified by admin", slog.String("user_id", userID.String()))
	return nil
}

func (a *adminCommandsImpl) VerifyIdentity(ctx context.Context, mechanicID uuid.UUID) error {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Mechanics().GetForUpdate(ctx, mechanicID)
		if err != nil {
			return notFound(err, ErrMechanicNotFound)
		}
		p.VerifyIdentity(a.clock.Now())
		return tx.Mechanics().Save(ctx, p)
	})
	if err != nil {
		return err
	}
	slog.Info("mechanic identity verified", slog.String("mechanic_id", mechanicID.String()))
	return nil
}
