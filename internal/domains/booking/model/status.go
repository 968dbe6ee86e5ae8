package model

import (
	"fmt"
	"time"

	"lodgehub/shared/constant"
	"lodgehub/shared/failure"
)

// transitions describes the booking lifecycle. A booking moves forward
// through pending, confirmed, checked_in and checked_out; cancellation is
// only possible before check-in.
var transitions = map[string][]string{
	constant.BookingStatusPending:    {constant.BookingStatusConfirmed, constant.BookingStatusCancelled},
	constant.BookingStatusConfirmed:  {constant.BookingStatusCheckedIn, constant.BookingStatusCancelled},
	constant.BookingStatusCheckedIn:  {constant.BookingStatusCheckedOut},
	constant.BookingStatusCheckedOut: {},
	constant.BookingStatusCancelled:  {},
}

// NextStatuses returns the statuses a booking may move to from the given one.
func NextStatuses(from string) []string {
	return transitions[from]
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

// Transition applies a status change to the booking and returns the fields
// that changed, keyed by column name. Checking in stamps the arrival time;
// checking out stamps the departure time and settles the payment.
func (b *Booking) Transition(to, user string, now time.Time) (map[string]any, error) {
	if !CanTransition(b.Status, to) {
		return nil, failure.BadRequestFromString(fmt.Sprintf("cannot change booking status from %s to %s", b.Status, to)) //nolint:wrapcheck
	}

	fields := map[string]any{
		FieldStatus:              to,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	b.Status = to
	b.ModifiedAt = now
	b.ModifiedBy = user

	switch to {
	case constant.BookingStatusCheckedIn:
		b.CheckInTime = &now
		fields[FieldCheckInTime] = now
	case constant.BookingStatusCheckedOut:
		b.CheckOutTime = &now
		b.PaymentStatus = constant.PaymentStatusPaid
		fields[FieldCheckOutTime] = now
		fields[FieldPaymentStatus] = constant.PaymentStatusPaid
	}

	return fields, nil
}
