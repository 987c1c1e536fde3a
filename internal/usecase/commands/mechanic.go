package commands

import (
	"context"
	"log/slog"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/pkg/clock"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/pkg/geo"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProfileInput struct {
	BaseLat         float64
	BaseLng         float64
	ServiceRadiusKm float64
	FreeZoneKm      decimal.Decimal
	VehicleTypes    []string
}

type PayoutOnboarding struct {
	AccountID     string
	OnboardingURL string
}

type MechanicCommands interface {
	UpsertProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) error
	StartPayoutOnboarding(ctx context.Context, userID uuid.UUID) (*PayoutOnboarding, error)
	PayoutDashboardLink(ctx context.Context, userID uuid.UUID) (string, error)
}

type mechanicCommandsImpl struct {
	uow     shared.UnitOfWork
	payment shared.PaymentGateway
	clock   clock.Clock
}

func NewMechanicCommands(uow shared.UnitOfWork, payment shared.PaymentGateway, clk clock.Clock) MechanicCommands {
	return &mechanicCommandsImpl{uow: uow, payment: payment, clock: clk}
}

// UpsertProfile only touches the service area; verification, penalties and payout
// state are owned by other flows.
func (m *mechanicCommandsImpl) UpsertProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) error {
	types := make([]booking.VehicleType, 0, len(in.VehicleTypes))
	for _, t := range in.VehicleTypes {
		types = append(types, booking.VehicleType(t))
	}

	p, err := mechanic.NewProfile(userID, geo.Point{Lat: in.BaseLat, Lng: in.BaseLng}, in.ServiceRadiusKm, in.FreeZoneKm.Round(2), types, m.clock.Now())
	if err != nil {
		return err
	}

	return m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Mechanics().Upsert(ctx, p)
	})
}

// StartPayoutOnboarding holds the profile lock across the processor call so two
// concurrent requests cannot both create an account.
func (m *mechanicCommandsImpl) StartPayoutOnboarding(ctx context.Context, userID uuid.UUID) (*PayoutOnboarding, error) {
	u, err := m.uow.CommandReads().UserByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	var result *PayoutOnboarding
	err = m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Mechanics().GetForUpdate(ctx, userID)
		if err != nil {
			return notFound(err, ErrMechanicNotFound)
		}
		if id := p.PayoutAccountID(); id != nil && *id != "" {
			return ErrPayoutAccountExists
		}

		acct, err := m.payment.CreateConnectedAccount(ctx, u.Email().Value())
		if err != nil {
			return paymentErr(err)
		}

		p.AttachPayoutAccount(acct.AccountID, m.clock.Now())
		if err := tx.Mechanics().Save(ctx, p); err != nil {
			// the processor account is left unattached and simply never onboarded
			slog.Error("connected account created but not stored",
				slog.String("user_id", userID.String()),
				slog.String("account_id", acct.AccountID))
			return err
		}
		result = &PayoutOnboarding{AccountID: acct.AccountID, OnboardingURL: acct.OnboardingURL}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (m *mechanicCommandsImpl) PayoutDashboardLink(ctx context.Context, userID uuid.UUID) (string, error) {
	p, err := m.uow.CommandReads().MechanicByID(ctx, userID)
	if err != nil {
		return "", notFound(err, ErrMechanicNotFound)
	}
	if p.PayoutAccountID() == nil || *p.PayoutAccountID() == "" {
		return "", mechanic.ErrNoPayoutAccount
	}

	url, err := m.payment.CreateLoginLink(ctx, *p.PayoutAccountID())
	if err != nil {
		return "", paymentErr(err)
	}
	return url, nil
}

// paymentErr turns a processor failure into the user-facing "try again" error, keeping the cause for logs.
func paymentErr(err error) error {
	if err == nil {
		return nil
	}
	if errs.Is(err, shared.ErrNotCapturable) {
		return err
	}
	return errs.Mark(err, ErrPaymentUnavailable)
}
