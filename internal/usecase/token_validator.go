package usecase

import (
	"context"
	"time"

	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/pkg/jwt"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrTokenRevoked = errs.New("token revoked")

// Principal is the authenticated caller behind a request.
type Principal struct {
	UserID    uuid.UUID
	Role      user.Role
	TokenID   string
	ExpiresAt time.Time
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	uow        shared.UnitOfWork
}

func NewTokenValidator(jwtService *jwt.Service, uow shared.UnitOfWork) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		uow:        uow,
	}
}

func (t *tokenValidatorImpl) ValidateToken(ctx context.Context, tokenString string) (*Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, err
	}

	revoked, err := t.uow.CommandReads().IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	p := &Principal{UserID: claims.UserID, Role: role, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}
