package dto

import (
	"sparkle/infras/stripe"
	"sparkle/internal/domains/payment/model"
	gModel "sparkle/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateIntentRequest struct {
	Amount              decimal.Decimal `json:"amount"                          swaggertype:"string" example:"75.00"`
	Currency            string          `json:"currency"                        validate:"required,currency" example:"gbp"`
	BookingID           string          `json:"booking_id,omitempty"            validate:"omitempty,max=64"`
	BusinessID          string          `json:"business_id"                     validate:"required,max=64"`
	PlatformFeeOverride *int64          `json:"platform_fee_override,omitempty" validate:"omitempty,gte=0"`
}

// NormalizedCurrency is the lower-cased code the processor expects.
func (c *CreateIntentRequest) NormalizedCurrency() string {
	return strings.ToLower(strings.TrimSpace(c.Currency))
}

// ToModel records a freshly created intent as a pending payment.
func (c *CreateIntentRequest) ToModel(intent stripe.Intent, actor string, now time.Time) model.Payment {
	payment := model.Payment{
		ID:                   uuid.NewString(),
		BusinessID:           c.BusinessID,
		PaymentIntentID:      intent.ID,
		Amount:               c.Amount,
		Currency:             c.NormalizedCurrency(),
		Status:               model.StatusPending,
		DestinationAccountID: intent.Destination,
		ApplicationFee:       intent.ApplicationFee,
		RefundedAmount:       decimal.Zero,
		Metadata:             gModel.NewMetadata(now, actor),
	}

	if c.BookingID != "" {
		bookingID := c.BookingID
		payment.BookingID = &bookingID
	}

	return payment
}

type IntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
	Split           bool   `json:"split"`
	PlatformFee     int64  `json:"platform_fee"`
	Demo            bool   `json:"demo"`
}

func (r *IntentResponse) FromIntent(intent stripe.Intent, fee int64) {
	r.ClientSecret = intent.ClientSecret
	r.PaymentIntentID = intent.ID
	r.Split = intent.Split()
	r.PlatformFee = fee
	r.Demo = intent.Demo
}

type RefundRequest struct {
	PaymentIntentID string `json:"payment_intent_id"           validate:"required,max=255"`
	PayoutAccountID string `json:"payout_account_id,omitempty" validate:"omitempty,max=255"`
}

type RefundResult struct {
	RefundID      string `json:"refund_id,omitempty"`
	Status        string `json:"status"`
	SplitReversal bool   `json:"split_reversal"`
	Skipped       bool   `json:"skipped"`
}

// RefundStatusSkipped marks a refund that was never sent because no processor is configured.
const RefundStatusSkipped = "skipped"

// Failed reports a processor refund that did not go through.
func (r RefundResult) Failed() bool {
	return r.Status == "failed" || r.Status == "canceled"
}
