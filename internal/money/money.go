// Package money rounds monetary amounts on exact decimal values.
package money

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits kept for every amount.
const Places = 2

// FromFloat converts f to a decimal through its shortest textual form, so
// 2.675 becomes exactly 2.675 rather than its binary approximation.
func FromFloat(f float64) decimal.Decimal {
	d, err := decimal.NewFromString(strconv.FormatFloat(f, 'f', -1, 64))
	if err != nil {
		// NaN and Inf have no decimal form; callers reject them upstream.
		return decimal.Zero
	}
	return d
}

// RoundDecimal rounds d to two places, half away from zero.
func RoundDecimal(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Round2 rounds x to two fractional digits using round-half-up.
func Round2(x float64) float64 {
	return ToFloat(RoundDecimal(FromFloat(x)))
}

// ToFloat converts a rounded amount back to float64 for JSON responses.
func ToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
