package model

import (
	"sparkle/shared/model"
)

const (
	TableName  = "business_payout_accounts"
	EntityName = "payout account"

	FieldBusinessID       = "business_id"
	FieldAccountID        = "account_id"
	FieldChargesEnabled   = "charges_enabled"
	FieldPayoutsEnabled   = "payouts_enabled"
	FieldDetailsSubmitted = "details_submitted"
	FieldStatus           = "status"
)

const (
	StatusPending    = "pending"
	StatusActive     = "active"
	StatusRestricted = "restricted"
	StatusDisabled   = "disabled"
)

type BusinessPayoutAccount struct {
	BusinessID       string `db:"business_id"`
	AccountID        string `db:"account_id"`
	ChargesEnabled   bool   `db:"charges_enabled"`
	PayoutsEnabled   bool   `db:"payouts_enabled"`
	DetailsSubmitted bool   `db:"details_submitted"`
	Status           string `db:"status"`
	model.Metadata
}

// CanReceiveSplit reports whether charges may be routed to this account.
func (a BusinessPayoutAccount) CanReceiveSplit() bool {
	return a.AccountID != "" && a.ChargesEnabled
}
