package response

import (
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
)

type RegisterResponse struct {
	ID uuid.UUID `json:"id"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		AccessToken: r.AccessToken,
		ExpiresIn:   int64(r.ExpiresIn.Seconds()),
		UserID:      r.UserID,
		Role:        string(r.Role),
	}
}

type UserResponse = queries.AuthorizedUserView
