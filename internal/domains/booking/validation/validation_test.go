package validation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lodgehub/internal/domains/booking/model"
	"lodgehub/internal/domains/booking/validation"
	"lodgehub/shared/constant"
)

var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func validBooking() model.Booking {
	return model.Booking{
		GuestName:  "John Doe",
		GuestEmail: "john@example.com",
		GuestPhone: "+263 771 234 567",
		LodgeID:    "lodge-1",
		RoomID:     "room-1",
		CheckIn:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		Guests:     3,
		Adults:     2,
		Children:   1,
		Amount:     decimal.NewFromInt(330),
		Deposit:    decimal.NewFromInt(100),
	}
}

func TestFieldsValid(t *testing.T) {
	errs := validation.Fields(validBooking(), now)
	assert.Empty(t, errs)
}

func TestFieldsGuestInfo(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.Booking)
		key      string
		expected string
	}{
		{
			name:     "missing guest name",
			mutate:   func(b *model.Booking) { b.GuestName = "  " },
			key:      validation.KeyGuestName,
			expected: "Guest name is required",
		},
		{
			name:     "short guest name",
			mutate:   func(b *model.Booking) { b.GuestName = "J" },
			key:      validation.KeyGuestName,
			expected: "Guest name must be at least 2 characters",
		},
		{
			name:     "missing email",
			mutate:   func(b *model.Booking) { b.GuestEmail = "" },
			key:      validation.KeyGuestEmail,
			expected: "Guest email is required",
		},
		{
			name:     "invalid email",
			mutate:   func(b *model.Booking) { b.GuestEmail = "not-an-email" },
			key:      validation.KeyGuestEmail,
			expected: "Please enter a valid email address",
		},
		{
			name:     "missing phone",
			mutate:   func(b *model.Booking) { b.GuestPhone = "" },
			key:      validation.KeyGuestPhone,
			expected: "Guest phone number is required",
		},
		{
			name:     "invalid phone",
			mutate:   func(b *model.Booking) { b.GuestPhone = "0123" },
			key:      validation.KeyGuestPhone,
			expected: "Please enter a valid phone number",
		},
		{
			name:     "missing lodge",
			mutate:   func(b *model.Booking) { b.LodgeID = "" },
			key:      validation.KeyLodgeID,
			expected: "Please select a lodge",
		},
		{
			name:     "missing room",
			mutate:   func(b *model.Booking) { b.RoomID = "" },
			key:      validation.KeyRoomID,
			expected: "Please select a room",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			tt.mutate(&booking)

			errs := validation.Fields(booking, now)
			assert.Equal(t, tt.expected, errs[tt.key])
		})
	}
}

func TestFieldsPhoneWithSpacesIsValid(t *testing.T) {
	booking := validBooking()
	booking.GuestPhone = "771 234 567"

	errs := validation.Fields(booking, now)
	assert.NotContains(t, errs, validation.KeyGuestPhone)
}

func TestFieldsDates(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.Booking)
		key      string
		expected string
	}{
		{
			name:     "missing check-in",
			mutate:   func(b *model.Booking) { b.CheckIn = time.Time{} },
			key:      validation.KeyCheckIn,
			expected: "Check-in date is required",
		},
		{
			name:     "missing check-out",
			mutate:   func(b *model.Booking) { b.CheckOut = time.Time{} },
			key:      validation.KeyCheckOut,
			expected: "Check-out date is required",
		},
		{
			name: "check-in in the past",
			mutate: func(b *model.Booking) {
				b.CheckIn = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
			},
			key:      validation.KeyCheckIn,
			expected: "Check-in date cannot be in the past",
		},
		{
			name: "check-out before check-in",
			mutate: func(b *model.Booking) {
				b.CheckOut = time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
			},
			key:      validation.KeyCheckOut,
			expected: "Check-out date must be after check-in date",
		},
		{
			name: "check-out equals check-in",
			mutate: func(b *model.Booking) {
				b.CheckOut = b.CheckIn
			},
			key:      validation.KeyCheckOut,
			expected: "Check-out date must be after check-in date",
		},
		{
			name: "stay longer than 30 days",
			mutate: func(b *model.Booking) {
				b.CheckOut = b.CheckIn.AddDate(0, 0, 31)
			},
			key:      validation.KeyCheckOut,
			expected: "Maximum stay is 30 days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			tt.mutate(&booking)

			errs := validation.Fields(booking, now)
			assert.Equal(t, tt.expected, errs[tt.key])
		})
	}
}

func TestFieldsCheckInTodayIsValid(t *testing.T) {
	booking := validBooking()
	booking.CheckIn = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	booking.CheckOut = time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	errs := validation.Fields(booking, now)
	assert.NotContains(t, errs, validation.KeyCheckIn)
}

func TestFieldsGuestCounts(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.Booking)
		key      string
		expected string
	}{
		{
			name: "zero guests",
			mutate: func(b *model.Booking) {
				b.Guests = 0
				b.Adults = 0
				b.Children = 0
			},
			key:      validation.KeyGuests,
			expected: "Number of guests must be at least 1",
		},
		{
			name: "too many guests",
			mutate: func(b *model.Booking) {
				b.Guests = 21
				b.Adults = 21
				b.Children = 0
			},
			key:      validation.KeyGuests,
			expected: "Maximum 20 guests per booking",
		},
		{
			name:     "zero adults",
			mutate:   func(b *model.Booking) { b.Adults = 0 },
			key:      validation.KeyAdults,
			expected: "Number of adults must be at least 1",
		},
		{
			name: "negative children",
			mutate: func(b *model.Booking) {
				b.Children = -1
			},
			key:      validation.KeyChildren,
			expected: "Number of children cannot be negative",
		},
		{
			name: "totals do not add up",
			mutate: func(b *model.Booking) {
				b.Guests = 5
				b.Adults = 2
				b.Children = 1
			},
			key:      validation.KeyGuests,
			expected: "Total guests must equal adults + children",
		},
		{
			name: "totals do not add up without children",
			mutate: func(b *model.Booking) {
				b.Guests = 5
				b.Adults = 2
				b.Children = 0
			},
			key:      validation.KeyGuests,
			expected: "Total guests must equal adults + children",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			tt.mutate(&booking)

			errs := validation.Fields(booking, now)
			assert.Equal(t, tt.expected, errs[tt.key])
		})
	}
}

func TestFieldsFinancials(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.Booking)
		key      string
		expected string
	}{
		{
			name:     "negative amount",
			mutate:   func(b *model.Booking) { b.Amount = decimal.NewFromInt(-1) },
			key:      validation.KeyAmount,
			expected: "Amount cannot be negative",
		},
		{
			name:     "negative deposit",
			mutate:   func(b *model.Booking) { b.Deposit = decimal.NewFromInt(-1) },
			key:      validation.KeyDeposit,
			expected: "Deposit cannot be negative",
		},
		{
			name: "deposit exceeds amount",
			mutate: func(b *model.Booking) {
				b.Amount = decimal.NewFromInt(100)
				b.Deposit = decimal.NewFromInt(200)
			},
			key:      validation.KeyDeposit,
			expected: "Deposit cannot exceed total amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			tt.mutate(&booking)

			errs := validation.Fields(booking, now)
			assert.Equal(t, tt.expected, errs[tt.key])
		})
	}
}

func TestFieldsTextLengths(t *testing.T) {
	booking := validBooking()
	booking.SpecialRequests = strings.Repeat("a", 501)
	booking.Notes = strings.Repeat("b", 1001)

	errs := validation.Fields(booking, now)
	assert.Equal(t, "Special requests cannot exceed 500 characters", errs[validation.KeySpecialRequests])
	assert.Equal(t, "Notes cannot exceed 1000 characters", errs[validation.KeyNotes])
}

func TestConflicts(t *testing.T) {
	existing := []model.Booking{
		{
			ID:        "booking-1",
			RoomID:    "room-1",
			GuestName: "Jane Smith",
			Status:    constant.BookingStatusConfirmed,
			CheckIn:   time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			CheckOut:  time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "booking-2",
			RoomID:    "room-1",
			GuestName: "Cancelled Guest",
			Status:    constant.BookingStatusCancelled,
			CheckIn:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			CheckOut:  time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "booking-3",
			RoomID:    "room-2",
			GuestName: "Other Room",
			Status:    constant.BookingStatusConfirmed,
			CheckIn:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			CheckOut:  time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		},
	}

	t.Run("overlap reported with guest details", func(t *testing.T) {
		errs := validation.Conflicts(validBooking(), existing, "")
		assert.Equal(t,
			"Room is already booked during this period: Jane Smith (2025-06-16 - 2025-06-20)",
			errs[validation.KeyRoomConflict],
		)
	})

	t.Run("cancelled and other-room bookings ignored", func(t *testing.T) {
		booking := validBooking()
		booking.CheckIn = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
		booking.CheckOut = time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC)

		errs := validation.Conflicts(booking, existing, "")
		assert.Empty(t, errs)
	})

	t.Run("back to back stays do not conflict", func(t *testing.T) {
		booking := validBooking()
		booking.CheckIn = time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)
		booking.CheckOut = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

		errs := validation.Conflicts(booking, existing, "")
		assert.Empty(t, errs)
	})

	t.Run("excluded booking skipped when editing", func(t *testing.T) {
		errs := validation.Conflicts(validBooking(), existing, "booking-1")
		assert.Empty(t, errs)
	})

	t.Run("incomplete booking skips conflict check", func(t *testing.T) {
		booking := validBooking()
		booking.RoomID = ""

		errs := validation.Conflicts(booking, existing, "")
		assert.Empty(t, errs)
	})
}

func TestPayment(t *testing.T) {
	booking := validBooking()
	booking.Balance = decimal.NewFromInt(230)

	tests := []struct {
		name     string
		amount   decimal.Decimal
		method   string
		key      string
		expected string
	}{
		{
			name:   "valid payment",
			amount: decimal.NewFromInt(100),
			method: "cash",
		},
		{
			name:     "zero amount",
			amount:   decimal.Zero,
			method:   "cash",
			key:      validation.KeyAmount,
			expected: "Payment amount must be greater than 0",
		},
		{
			name:     "exceeds balance",
			amount:   decimal.NewFromInt(500),
			method:   "card",
			key:      validation.KeyAmount,
			expected: "Payment amount cannot exceed outstanding balance",
		},
		{
			name:     "missing method",
			amount:   decimal.NewFromInt(100),
			key:      validation.KeyMethod,
			expected: "Payment method is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validation.Payment(booking, tt.amount, tt.method)

			if tt.key == "" {
				assert.Empty(t, errs)

				return
			}

			assert.Equal(t, tt.expected, errs[tt.key])
		})
	}
}

func TestCancellation(t *testing.T) {
	t.Run("already cancelled", func(t *testing.T) {
		booking := validBooking()
		booking.Status = constant.BookingStatusCancelled

		errs := validation.Cancellation(booking, "", now)
		assert.Equal(t, "Booking is already cancelled", errs[validation.KeyStatus])
	})

	t.Run("completed booking", func(t *testing.T) {
		booking := validBooking()
		booking.Status = constant.BookingStatusCheckedOut

		errs := validation.Cancellation(booking, "", now)
		assert.Equal(t, "Cannot cancel a completed booking", errs[validation.KeyStatus])
	})

	t.Run("late cancellation of confirmed booking warns", func(t *testing.T) {
		booking := validBooking()
		booking.Status = constant.BookingStatusConfirmed
		booking.CheckIn = now.Add(12 * time.Hour)

		errs := validation.Cancellation(booking, "", now)
		assert.Equal(t, "Cancellation deadline has passed. Late cancellation fees may apply.", errs[validation.KeyDeadline])
	})

	t.Run("late cancellation of pending booking does not warn", func(t *testing.T) {
		booking := validBooking()
		booking.Status = constant.BookingStatusPending
		booking.CheckIn = now.Add(12 * time.Hour)

		errs := validation.Cancellation(booking, "", now)
		assert.Empty(t, errs)
	})

	t.Run("timely cancellation passes", func(t *testing.T) {
		booking := validBooking()
		booking.Status = constant.BookingStatusConfirmed
		booking.CheckIn = now.Add(48 * time.Hour)

		errs := validation.Cancellation(booking, "no longer travelling", now)
		assert.Empty(t, errs)
	})

	t.Run("overlong reason rejected", func(t *testing.T) {
		booking := validBooking()
		booking.Status = constant.BookingStatusPending
		booking.CheckIn = now.Add(48 * time.Hour)

		errs := validation.Cancellation(booking, strings.Repeat("r", 501), now)
		assert.Equal(t, "Cancellation reason cannot exceed 500 characters", errs[validation.KeyReason])
	})
}
