// Package pricing computes booking totals. All money math is done with
// decimals and rounded to cents so repeated calculations never drift.
package pricing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const centPlaces = 2

var oneHundred = decimal.NewFromInt(100)

// Breakdown holds the priced components of a stay.
type Breakdown struct {
	Nights         int             `json:"nights"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Taxes          decimal.Decimal `json:"taxes"`
	ExtraCharges   decimal.Decimal `json:"extra_charges"`
	Total          decimal.Decimal `json:"total"`
}

// Nights returns the number of nights between check-in and check-out.
// Partial days count as a full night.
func Nights(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	if hours <= 0 {
		return 0
	}

	return int(math.Ceil(hours / 24))
}

// Calculate prices a stay: nightly rate times nights, less the percentage
// discount, plus tax on the discounted subtotal, plus extra charges. Every
// component is rounded to cents.
func Calculate(roomRate decimal.Decimal, checkIn, checkOut time.Time, discountPercent, extraCharges, taxRate decimal.Decimal) Breakdown {
	nights := Nights(checkIn, checkOut)

	subtotal := roomRate.Mul(decimal.NewFromInt(int64(nights))).Round(centPlaces)
	discountAmount := subtotal.Mul(discountPercent).Div(oneHundred).Round(centPlaces)
	taxes := subtotal.Sub(discountAmount).Mul(taxRate).Round(centPlaces)
	total := subtotal.Sub(discountAmount).Add(taxes).Add(extraCharges).Round(centPlaces)

	return Breakdown{
		Nights:         nights,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Taxes:          taxes,
		ExtraCharges:   extraCharges.Round(centPlaces),
		Total:          total,
	}
}
