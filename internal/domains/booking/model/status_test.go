package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodgehub/internal/domains/booking/model"
	"lodgehub/shared/constant"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		expected bool
	}{
		{"pending to confirmed", constant.BookingStatusPending, constant.BookingStatusConfirmed, true},
		{"pending to cancelled", constant.BookingStatusPending, constant.BookingStatusCancelled, true},
		{"pending to checked_in", constant.BookingStatusPending, constant.BookingStatusCheckedIn, false},
		{"confirmed to checked_in", constant.BookingStatusConfirmed, constant.BookingStatusCheckedIn, true},
		{"confirmed to cancelled", constant.BookingStatusConfirmed, constant.BookingStatusCancelled, true},
		{"confirmed to checked_out", constant.BookingStatusConfirmed, constant.BookingStatusCheckedOut, false},
		{"checked_in to checked_out", constant.BookingStatusCheckedIn, constant.BookingStatusCheckedOut, true},
		{"checked_in to cancelled", constant.BookingStatusCheckedIn, constant.BookingStatusCancelled, false},
		{"checked_out is terminal", constant.BookingStatusCheckedOut, constant.BookingStatusPending, false},
		{"cancelled is terminal", constant.BookingStatusCancelled, constant.BookingStatusConfirmed, false},
		{"unknown status", "unknown", constant.BookingStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestTransitionCheckIn(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	booking := model.Booking{Status: constant.BookingStatusConfirmed}

	fields, err := booking.Transition(constant.BookingStatusCheckedIn, "user-1", now)
	require.NoError(t, err)

	assert.Equal(t, constant.BookingStatusCheckedIn, booking.Status)
	require.NotNil(t, booking.CheckInTime)
	assert.Equal(t, now, *booking.CheckInTime)
	assert.Equal(t, "user-1", booking.ModifiedBy)

	assert.Equal(t, constant.BookingStatusCheckedIn, fields[model.FieldStatus])
	assert.Equal(t, now, fields[model.FieldCheckInTime])
	assert.Equal(t, "user-1", fields[constant.FieldModifiedBy])
}

func TestTransitionCheckOutSettlesPayment(t *testing.T) {
	now := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	booking := model.Booking{
		Status:        constant.BookingStatusCheckedIn,
		PaymentStatus: constant.PaymentStatusPartial,
	}

	fields, err := booking.Transition(constant.BookingStatusCheckedOut, "user-1", now)
	require.NoError(t, err)

	assert.Equal(t, constant.BookingStatusCheckedOut, booking.Status)
	assert.Equal(t, constant.PaymentStatusPaid, booking.PaymentStatus)
	require.NotNil(t, booking.CheckOutTime)
	assert.Equal(t, now, *booking.CheckOutTime)

	assert.Equal(t, constant.PaymentStatusPaid, fields[model.FieldPaymentStatus])
	assert.Equal(t, now, fields[model.FieldCheckOutTime])
}

func TestTransitionInvalid(t *testing.T) {
	booking := model.Booking{Status: constant.BookingStatusCheckedOut}

	fields, err := booking.Transition(constant.BookingStatusCancelled, "user-1", time.Now())
	assert.Error(t, err)
	assert.Nil(t, fields)
	assert.Equal(t, constant.BookingStatusCheckedOut, booking.Status)
}

func TestNextStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{constant.BookingStatusConfirmed, constant.BookingStatusCancelled},
		model.NextStatuses(constant.BookingStatusPending),
	)
	assert.Empty(t, model.NextStatuses(constant.BookingStatusCancelled))
}
