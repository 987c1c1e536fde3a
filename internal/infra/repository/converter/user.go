package converter

import (
	"inspection-marketplace/internal/domain/user"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"
)

func UserToCreate(u *user.User) sqlc.CreateUserParams {
	return sqlc.CreateUserParams{
		ID:            u.ID(),
		Email:         u.Email().Value(),
		PasswordHash:  u.PasswordHash(),
		Role:          u.Role().String(),
		EmailVerified: u.EmailVerified(),
		IsActive:      u.IsActive(),
		CreatedAt:     pgconv.TimeToPgtype(u.CreatedAt()),
	}
}

func UserFromRow(row sqlc.Users) (*user.User, error) {
	email, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(row.Role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(
		row.ID,
		email,
		row.PasswordHash,
		role,
		row.EmailVerified,
		row.IsActive,
		row.CreatedAt.Time,
		row.UpdatedAt.Time,
	), nil
}
