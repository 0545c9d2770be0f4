package dto

import (
	"sparkle/internal/domains/payout/model"
	gDto "sparkle/shared/dto"
)

type PayoutAccountResponse struct {
	BusinessID       string `json:"business_id"`
	AccountID        string `json:"account_id"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
	DetailsSubmitted bool   `json:"details_submitted"`
	Status           string `json:"status"`
	gDto.Metadata
}

func (r *PayoutAccountResponse) FromModel(model model.BusinessPayoutAccount) {
	r.BusinessID = model.BusinessID
	r.AccountID = model.AccountID
	r.ChargesEnabled = model.ChargesEnabled
	r.PayoutsEnabled = model.PayoutsEnabled
	r.DetailsSubmitted = model.DetailsSubmitted
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type OnboardResponse struct {
	AccountID     string `json:"account_id"`
	OnboardingURL string `json:"onboarding_url"`
}
