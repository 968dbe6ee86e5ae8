package model

import (
	"time"

	"github.com/shopspring/decimal"

	"lodgehub/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                   = "id"
	FieldGuestName            = "guest_name"
	FieldGuestEmail           = "guest_email"
	FieldGuestPhone           = "guest_phone"
	FieldGuestAddress         = "guest_address"
	FieldGuestNationality     = "guest_nationality"
	FieldGuestIDNumber        = "guest_id_number"
	FieldLodgeID              = "lodge_id"
	FieldLodgeName            = "lodge_name"
	FieldRoomID               = "room_id"
	FieldRoomName             = "room_name"
	FieldRoomType             = "room_type"
	FieldCheckIn              = "check_in"
	FieldCheckOut             = "check_out"
	FieldGuests               = "guests"
	FieldAdults               = "adults"
	FieldChildren             = "children"
	FieldStatus               = "status"
	FieldAmount               = "amount"
	FieldDeposit              = "deposit"
	FieldBalance              = "balance"
	FieldCurrency             = "currency"
	FieldPaymentStatus        = "payment_status"
	FieldPaymentMethod        = "payment_method"
	FieldBookingSource        = "booking_source"
	FieldSpecialRequests      = "special_requests"
	FieldNotes                = "notes"
	FieldCancellationReason   = "cancellation_reason"
	FieldCheckInTime          = "check_in_time"
	FieldCheckOutTime         = "check_out_time"
	FieldRoomRate             = "room_rate"
	FieldTaxes                = "taxes"
	FieldDiscounts            = "discounts"
	FieldExtraCharges         = "extra_charges"
	FieldCancellationDeadline = "cancellation_deadline"
)

type Booking struct {
	ID                   string          `db:"id"`
	GuestName            string          `db:"guest_name"`
	GuestEmail           string          `db:"guest_email"`
	GuestPhone           string          `db:"guest_phone"`
	GuestAddress         string          `db:"guest_address"`
	GuestNationality     string          `db:"guest_nationality"`
	GuestIDNumber        string          `db:"guest_id_number"`
	LodgeID              string          `db:"lodge_id"`
	LodgeName            string          `db:"lodge_name"`
	RoomID               string          `db:"room_id"`
	RoomName             string          `db:"room_name"`
	RoomType             string          `db:"room_type"`
	CheckIn              time.Time       `db:"check_in"`
	CheckOut             time.Time       `db:"check_out"`
	Guests               int             `db:"guests"`
	Adults               int             `db:"adults"`
	Children             int             `db:"children"`
	Status               string          `db:"status"`
	Amount               decimal.Decimal `db:"amount"`
	Deposit              decimal.Decimal `db:"deposit"`
	Balance              decimal.Decimal `db:"balance"`
	Currency             string          `db:"currency"`
	PaymentStatus        string          `db:"payment_status"`
	PaymentMethod        string          `db:"payment_method"`
	BookingSource        string          `db:"booking_source"`
	SpecialRequests      string          `db:"special_requests"`
	Notes                string          `db:"notes"`
	CancellationReason   string          `db:"cancellation_reason"`
	CheckInTime          *time.Time      `db:"check_in_time"`
	CheckOutTime         *time.Time      `db:"check_out_time"`
	RoomRate             decimal.Decimal `db:"room_rate"`
	Taxes                decimal.Decimal `db:"taxes"`
	Discounts            decimal.Decimal `db:"discounts"`
	ExtraCharges         decimal.Decimal `db:"extra_charges"`
	CancellationDeadline *time.Time      `db:"cancellation_deadline"`
	model.Metadata
}
