package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lodgehub/internal/domains/booking/pricing"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		expected int
	}{
		{
			name:     "three full nights",
			checkIn:  date(2025, 6, 15),
			checkOut: date(2025, 6, 18),
			expected: 3,
		},
		{
			name:     "single night",
			checkIn:  date(2025, 6, 15),
			checkOut: date(2025, 6, 16),
			expected: 1,
		},
		{
			name:     "partial day rounds up",
			checkIn:  time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC),
			checkOut: time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "just over a day rounds up to two",
			checkIn:  time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			checkOut: time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC),
			expected: 2,
		},
		{
			name:     "same instant",
			checkIn:  date(2025, 6, 15),
			checkOut: date(2025, 6, 15),
			expected: 0,
		},
		{
			name:     "check-out before check-in",
			checkIn:  date(2025, 6, 18),
			checkOut: date(2025, 6, 15),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pricing.Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestCalculate(t *testing.T) {
	taxRate := decimal.NewFromFloat(0.15)

	tests := []struct {
		name             string
		roomRate         decimal.Decimal
		checkIn          time.Time
		checkOut         time.Time
		discountPercent  decimal.Decimal
		extraCharges     decimal.Decimal
		expectedNights   int
		expectedSubtotal string
		expectedDiscount string
		expectedTaxes    string
		expectedTotal    string
	}{
		{
			name:             "discounted stay with extras",
			roomRate:         decimal.NewFromInt(100),
			checkIn:          date(2025, 6, 15),
			checkOut:         date(2025, 6, 18),
			discountPercent:  decimal.NewFromInt(10),
			extraCharges:     decimal.NewFromInt(20),
			expectedNights:   3,
			expectedSubtotal: "300",
			expectedDiscount: "30",
			expectedTaxes:    "40.5",
			expectedTotal:    "330.5",
		},
		{
			name:             "no discount no extras",
			roomRate:         decimal.NewFromInt(80),
			checkIn:          date(2025, 6, 15),
			checkOut:         date(2025, 6, 17),
			discountPercent:  decimal.Zero,
			extraCharges:     decimal.Zero,
			expectedNights:   2,
			expectedSubtotal: "160",
			expectedDiscount: "0",
			expectedTaxes:    "24",
			expectedTotal:    "184",
		},
		{
			name:             "fractional rate rounds to cents",
			roomRate:         decimal.NewFromFloat(99.99),
			checkIn:          date(2025, 6, 15),
			checkOut:         date(2025, 6, 16),
			discountPercent:  decimal.NewFromFloat(12.5),
			extraCharges:     decimal.Zero,
			expectedNights:   1,
			expectedSubtotal: "99.99",
			expectedDiscount: "12.5",
			expectedTaxes:    "13.12",
			expectedTotal:    "100.61",
		},
		{
			name:             "zero nights prices to zero",
			roomRate:         decimal.NewFromInt(100),
			checkIn:          date(2025, 6, 15),
			checkOut:         date(2025, 6, 15),
			discountPercent:  decimal.NewFromInt(10),
			extraCharges:     decimal.Zero,
			expectedNights:   0,
			expectedSubtotal: "0",
			expectedDiscount: "0",
			expectedTaxes:    "0",
			expectedTotal:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Calculate(tt.roomRate, tt.checkIn, tt.checkOut, tt.discountPercent, tt.extraCharges, taxRate)

			assert.Equal(t, tt.expectedNights, got.Nights)
			assert.True(t, got.Subtotal.Equal(decimal.RequireFromString(tt.expectedSubtotal)), "subtotal: got %s", got.Subtotal)
			assert.True(t, got.DiscountAmount.Equal(decimal.RequireFromString(tt.expectedDiscount)), "discount: got %s", got.DiscountAmount)
			assert.True(t, got.Taxes.Equal(decimal.RequireFromString(tt.expectedTaxes)), "taxes: got %s", got.Taxes)
			assert.True(t, got.Total.Equal(decimal.RequireFromString(tt.expectedTotal)), "total: got %s", got.Total)
		})
	}
}
