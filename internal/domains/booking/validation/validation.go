// Package validation holds the booking business rules: guest and stay field
// checks, room availability conflicts, payment recording and cancellation.
// Each check returns a map of field name to message so callers can report
// every problem at once.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lodgehub/internal/domains/booking/model"
	"lodgehub/internal/domains/booking/pricing"
	"lodgehub/shared/constant"
	"lodgehub/shared/timezone"
)

const (
	KeyGuestName       = "guestName"
	KeyGuestEmail      = "guestEmail"
	KeyGuestPhone      = "guestPhone"
	KeyLodgeID         = "lodgeId"
	KeyRoomID          = "roomId"
	KeyCheckIn         = "checkIn"
	KeyCheckOut        = "checkOut"
	KeyGuests          = "guests"
	KeyAdults          = "adults"
	KeyChildren        = "children"
	KeyAmount          = "amount"
	KeyDeposit         = "deposit"
	KeySpecialRequests = "specialRequests"
	KeyNotes           = "notes"
	KeyRoomConflict    = "roomConflict"
	KeyMethod          = "method"
	KeyStatus          = "status"
	KeyDeadline        = "deadline"
	KeyReason          = "reason"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[1-9]\d{3,14}$`)
)

// Fields validates guest details, stay dates, guest counts and money fields
// of a booking. The now argument anchors the past-date check.
func Fields(booking model.Booking, now time.Time) map[string]string {
	errs := map[string]string{}

	name := strings.TrimSpace(booking.GuestName)
	if name == "" {
		errs[KeyGuestName] = "Guest name is required"
	} else if len(name) < 2 {
		errs[KeyGuestName] = "Guest name must be at least 2 characters"
	}

	email := strings.TrimSpace(booking.GuestEmail)
	if email == "" {
		errs[KeyGuestEmail] = "Guest email is required"
	} else if !emailPattern.MatchString(email) {
		errs[KeyGuestEmail] = "Please enter a valid email address"
	}

	phone := strings.TrimSpace(booking.GuestPhone)
	if phone == "" {
		errs[KeyGuestPhone] = "Guest phone number is required"
	} else if !phonePattern.MatchString(strings.ReplaceAll(phone, " ", "")) {
		errs[KeyGuestPhone] = "Please enter a valid phone number"
	}

	if booking.LodgeID == "" {
		errs[KeyLodgeID] = "Please select a lodge"
	}

	if booking.RoomID == "" {
		errs[KeyRoomID] = "Please select a room"
	}

	if booking.CheckIn.IsZero() {
		errs[KeyCheckIn] = "Check-in date is required"
	}

	if booking.CheckOut.IsZero() {
		errs[KeyCheckOut] = "Check-out date is required"
	}

	if !booking.CheckIn.IsZero() && !booking.CheckOut.IsZero() {
		today := timezone.StartOfDay(now)

		if booking.CheckIn.Before(today) {
			errs[KeyCheckIn] = "Check-in date cannot be in the past"
		}

		if !booking.CheckOut.After(booking.CheckIn) {
			errs[KeyCheckOut] = "Check-out date must be after check-in date"
		}

		if pricing.Nights(booking.CheckIn, booking.CheckOut) > constant.MaxStayNights {
			errs[KeyCheckOut] = fmt.Sprintf("Maximum stay is %d days", constant.MaxStayNights)
		}
	}

	if booking.Guests < 1 {
		errs[KeyGuests] = "Number of guests must be at least 1"
	} else if booking.Guests > constant.MaxGuestsPerBooking {
		errs[KeyGuests] = fmt.Sprintf("Maximum %d guests per booking", constant.MaxGuestsPerBooking)
	}

	if booking.Adults < 1 {
		errs[KeyAdults] = "Number of adults must be at least 1"
	}

	if booking.Children < 0 {
		errs[KeyChildren] = "Number of children cannot be negative"
	}

	if booking.Adults >= 1 && booking.Children >= 0 && booking.Adults+booking.Children != booking.Guests {
		errs[KeyGuests] = "Total guests must equal adults + children"
	}

	if booking.Amount.IsNegative() {
		errs[KeyAmount] = "Amount cannot be negative"
	}

	if booking.Deposit.IsNegative() {
		errs[KeyDeposit] = "Deposit cannot be negative"
	} else if booking.Deposit.GreaterThan(booking.Amount) {
		errs[KeyDeposit] = "Deposit cannot exceed total amount"
	}

	if len(booking.SpecialRequests) > constant.MaxSpecialRequestLen {
		errs[KeySpecialRequests] = fmt.Sprintf("Special requests cannot exceed %d characters", constant.MaxSpecialRequestLen)
	}

	if len(booking.Notes) > constant.MaxNotesLen {
		errs[KeyNotes] = fmt.Sprintf("Notes cannot exceed %d characters", constant.MaxNotesLen)
	}

	return errs
}

// Conflicts checks the booking's room and stay window against existing
// bookings. Cancelled bookings never conflict, and excludeID skips the
// booking being edited. Two stays conflict when their date ranges overlap.
func Conflicts(booking model.Booking, existing []model.Booking, excludeID string) map[string]string {
	errs := map[string]string{}

	if booking.RoomID == "" || booking.CheckIn.IsZero() || booking.CheckOut.IsZero() {
		return errs
	}

	details := []string{}

	for _, other := range existing {
		if excludeID != "" && other.ID == excludeID {
			continue
		}

		if other.Status == constant.BookingStatusCancelled {
			continue
		}

		if other.RoomID != booking.RoomID {
			continue
		}

		if booking.CheckIn.Before(other.CheckOut) && booking.CheckOut.After(other.CheckIn) {
			details = append(details, fmt.Sprintf("%s (%s - %s)",
				other.GuestName,
				other.CheckIn.Format(constant.DateOnlyFormat),
				other.CheckOut.Format(constant.DateOnlyFormat),
			))
		}
	}

	if len(details) > 0 {
		errs[KeyRoomConflict] = "Room is already booked during this period: " + strings.Join(details, ", ")
	}

	return errs
}

// Payment validates a payment against the booking's outstanding balance.
func Payment(booking model.Booking, amount decimal.Decimal, method string) map[string]string {
	errs := map[string]string{}

	if !amount.IsPositive() {
		errs[KeyAmount] = "Payment amount must be greater than 0"
	}

	if amount.GreaterThan(booking.Balance) {
		errs[KeyAmount] = "Payment amount cannot exceed outstanding balance"
	}

	if method == "" {
		errs[KeyMethod] = "Payment method is required"
	}

	return errs
}

// Cancellation validates a cancellation request. The deadline entry is
// advisory: a confirmed booking cancelled inside the notice period may incur
// late fees but the cancellation itself still proceeds.
func Cancellation(booking model.Booking, reason string, now time.Time) map[string]string {
	errs := map[string]string{}

	if booking.Status == constant.BookingStatusCancelled {
		errs[KeyStatus] = "Booking is already cancelled"
	}

	if booking.Status == constant.BookingStatusCheckedOut {
		errs[KeyStatus] = "Cannot cancel a completed booking"
	}

	deadline := booking.CheckIn.Add(-constant.CancellationNoticePeriod)
	if now.After(deadline) && booking.Status == constant.BookingStatusConfirmed {
		errs[KeyDeadline] = "Cancellation deadline has passed. Late cancellation fees may apply."
	}

	if len(reason) > constant.MaxSpecialRequestLen {
		errs[KeyReason] = fmt.Sprintf("Cancellation reason cannot exceed %d characters", constant.MaxSpecialRequestLen)
	}

	return errs
}
