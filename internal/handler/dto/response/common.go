package response

import (
	"inspection-marketplace/internal/usecase/commands"

	"github.com/google/uuid"
)

type IDResponse struct {
	ID uuid.UUID `json:"id"`
}

type URLResponse struct {
	URL string `json:"url"`
}

type PayoutOnboardingResponse struct {
	AccountID     string `json:"account_id"`
	OnboardingURL string `json:"onboarding_url"`
}

func FromPayoutOnboarding(p *commands.PayoutOnboarding) *PayoutOnboardingResponse {
	return &PayoutOnboardingResponse{AccountID: p.AccountID, OnboardingURL: p.OnboardingURL}
}
