package dto_test

import (
	"sparkle/infras/stripe"
	"sparkle/internal/domains/payment/model"
	"sparkle/internal/domains/payment/model/dto"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIntentRequest_ToModel(t *testing.T) {
	now := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	req := dto.CreateIntentRequest{
		Amount:     decimal.RequireFromString("75.00"),
		Currency:   " GBP ",
		BookingID:  "bk-1",
		BusinessID: "biz-1",
	}

	payment := req.ToModel(stripe.Intent{ID: "pi_1", Destination: "acct_1", ApplicationFee: 1125}, "cus-1", now)

	assert.NotEmpty(t, payment.ID)
	assert.Equal(t, "gbp", payment.Currency)
	assert.Equal(t, model.StatusPending, payment.Status)
	assert.Equal(t, "acct_1", payment.DestinationAccountID)
	assert.Equal(t, int64(1125), payment.ApplicationFee)
	require.NotNil(t, payment.BookingID)
	assert.Equal(t, "bk-1", *payment.BookingID)
	assert.Nil(t, payment.PaidAt)
}

func TestCreateIntentRequest_ToModel_NoBooking(t *testing.T) {
	req := dto.CreateIntentRequest{Amount: decimal.NewFromInt(10), Currency: "gbp", BusinessID: "biz-1"}

	assert.Nil(t, req.ToModel(stripe.Intent{ID: "pi_2"}, "cus-1", time.Now()).BookingID)
}

func TestIntentResponse_FromIntent(t *testing.T) {
	var res dto.IntentResponse

	res.FromIntent(stripe.Intent{ID: "pi_1", ClientSecret: "secret", Destination: "acct_1"}, 1125)

	assert.Equal(t, "secret", res.ClientSecret)
	assert.True(t, res.Split)
	assert.Equal(t, int64(1125), res.PlatformFee)
	assert.False(t, res.Demo)
}

func TestRefundResult_Failed(t *testing.T) {
	assert.True(t, dto.RefundResult{Status: "failed"}.Failed())
	assert.True(t, dto.RefundResult{Status: "canceled"}.Failed())
	assert.False(t, dto.RefundResult{Status: "pending"}.Failed())
	assert.False(t, dto.RefundResult{Status: "succeeded"}.Failed())
}
