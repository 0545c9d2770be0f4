package money_test

import (
	"sparkle/shared/money"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToMinor(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		expected int64
	}{
		{amount: "75.00", currency: "gbp", expected: 7500},
		{amount: "19.999", currency: "usd", expected: 2000},
		{amount: "0.005", currency: "eur", expected: 1},
		{amount: "0.004", currency: "eur", expected: 0},
		{amount: "1500", currency: "JPY", expected: 1500},
		{amount: "12.345", currency: "gbp", expected: 1235},
	}

	for _, tt := range tests {
		t.Run(tt.amount+tt.currency, func(t *testing.T) {
			assert.Equal(t, tt.expected, money.ToMinor(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestFromMinor(t *testing.T) {
	assert.True(t, decimal.RequireFromString("75").Equal(money.FromMinor(7500, "gbp")))
	assert.True(t, decimal.RequireFromString("1500").Equal(money.FromMinor(1500, "jpy")))
}

func TestPlatformFee(t *testing.T) {
	assert.Equal(t, int64(1125), money.PlatformFee(7500))
	assert.Equal(t, int64(0), money.PlatformFee(3))
	assert.Equal(t, int64(1), money.PlatformFee(4))
	assert.Equal(t, int64(15), money.PlatformFee(99))
}

func TestPlatformFee_NoDrift(t *testing.T) {
	for minor := int64(1); minor <= 20000; minor += 7 {
		fee := money.PlatformFee(minor)
		share := minor - fee

		assert.Equal(t, minor, fee+share)
		assert.LessOrEqual(t, fee, minor)

		exact := decimal.NewFromInt(minor).Mul(decimal.RequireFromString("0.15"))
		assert.True(t, exact.Sub(decimal.NewFromInt(fee)).Abs().LessThanOrEqual(decimal.RequireFromString("0.5")))
	}
}

func TestBookingFee(t *testing.T) {
	assert.Equal(t, "11.25", money.BookingFee(decimal.RequireFromString("75.00")).StringFixed(2))
	assert.Equal(t, "1.50", money.BookingFee(decimal.RequireFromString("9.99")).StringFixed(2))
}
