package commands

import (
	"context"
	"log/slog"
	"time"

	"inspection-marketplace/internal/domain/auth"
	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/pkg/clock"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/pkg/jwt"
	"inspection-marketplace/internal/pkg/password"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
	ExpiresIn   time.Duration
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (uuid.UUID, error)
	Login(ctx context.Context, email, pass string) (*LoginResult, error)
	// Logout deny-lists the token id until the token would have expired anyway.
	Logout(ctx context.Context, userID uuid.UUID, jti string, expiresAt time.Time) error
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clock      clock.Clock
	hashCost   int
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		clock:      clk,
		hashCost:   password.DefaultCost,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (uuid.UUID, error) {
	credentials, err := auth.NewCredentials(in.Email, in.Password)
	if err != nil {
		return uuid.Nil, err
	}
	role, err := user.NewRole(in.Role)
	if err != nil {
		return uuid.Nil, err
	}
	if !role.IsSelfRegistrable() {
		return uuid.Nil, errs.Mark(user.ErrInvalidRole, ErrForbidden)
	}

	hash, err := password.HashPasswordWithCost(credentials.Password().Value(), a.hashCost)
	if err != nil {
		return uuid.Nil, err
	}

	u := user.NewUser(credentials.Email(), hash, role, a.clock.Now())
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return uuid.Nil, errs.Mark(err, ErrEmailTaken)
	}
	if err != nil {
		return uuid.Nil, err
	}

	slog.Info("user registered", slog.String("user_id", u.ID().String()), slog.String("role", role.String()))
	return u.ID(), nil
}

func (a *authCommandsImpl) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	credentials, err := auth.NewCredentials(email, pass)
	if err != nil {
		// shape errors get the same answer as a wrong password
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	u, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      u.ID(),
		Role:        u.Role(),
		AccessToken: token,
		ExpiresIn:   a.jwtService.TokenDuration(),
	}, nil
}

func (a *authCommandsImpl) Logout(ctx context.Context, userID uuid.UUID, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.RevokedTokens().Revoke(ctx, jti, userID, expiresAt)
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil
		}
		return err
	})
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials auth.Credentials) (*user.User, error) {
	u, err := a.uow.CommandReads().UserByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Return same error as password mismatch to prevent user enumeration attacks
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := password.ComparePassword(u.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	return u, nil
}
