package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id            uuid.UUID
	email         Email
	passwordHash  string
	role          Role
	emailVerified bool
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewUser(email Email, passwordHash string, role Role, now time.Time) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}
}

func ReconstructUser(
	id uuid.UUID,
	email Email,
	passwordHash string,
	role Role,
	emailVerified, isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:            id,
		email:         email,
		passwordHash:  passwordHash,
		role:          role,
		emailVerified: emailVerified,
		isActive:      isActive,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (u *User) VerifyEmail(now time.Time) {
	u.emailVerified = true
	u.updatedAt = now
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) EmailVerified() bool  { return u.emailVerified }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
