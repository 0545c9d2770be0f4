// Package money converts between decimal currency amounts and processor minor units.
package money

import (
	"sparkle/shared/constant"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred         = decimal.NewFromInt(100)
	platformFeeRate = decimal.RequireFromString(constant.PlatformFeeRate)
)

// zeroDecimal lists currencies the processor already counts in whole units.
var zeroDecimal = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

func factor(currency string) decimal.Decimal {
	if zeroDecimal[strings.ToLower(currency)] {
		return decimal.NewFromInt(1)
	}

	return hundred
}

// ToMinor rounds amount half away from zero into minor units.
func ToMinor(amount decimal.Decimal, currency string) int64 {
	return amount.Mul(factor(currency)).Round(0).IntPart()
}

func FromMinor(minor int64, currency string) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(factor(currency))
}

// PlatformFee is the marketplace share of a minor-unit amount. The business
// receives minor minus the fee, so the two always add back up exactly.
func PlatformFee(minor int64) int64 {
	return decimal.NewFromInt(minor).Mul(platformFeeRate).Round(0).IntPart()
}

// BookingFee is the platform share recorded on a booking, to the cent.
func BookingFee(total decimal.Decimal) decimal.Decimal {
	return total.Mul(platformFeeRate).Round(2)
}
