package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lodgehub/internal/domains/booking/model"
	"lodgehub/internal/domains/booking/pricing"
	"lodgehub/shared"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
	gModel "lodgehub/shared/model"
	"lodgehub/shared/timezone"
)

type CreateBookingRequest struct {
	GuestName        string `json:"guest_name"        validate:"required"`
	GuestEmail       string `json:"guest_email"       validate:"required"`
	GuestPhone       string `json:"guest_phone"       validate:"required"`
	GuestAddress     string `json:"guest_address"     validate:"omitempty,max=255"`
	GuestNationality string `json:"guest_nationality" validate:"omitempty,max=100"`
	GuestIDNumber    string `json:"guest_id_number"   validate:"omitempty,max=50"`
	LodgeID          string `json:"lodge_id"          validate:"required"`
	RoomID           string `json:"room_id"           validate:"required"`
	CheckIn          string `json:"check_in"          validate:"required"`
	CheckOut         string `json:"check_out"         validate:"required"`
	Guests           int    `json:"guests"            validate:"required"`
	Adults           int    `json:"adults"            validate:"required"`
	Children         int    `json:"children"          validate:"omitempty"`
	Season           string `json:"season"            validate:"omitempty,oneof=normal busy slow"`
	Deposit          string `json:"deposit"           validate:"omitempty"`
	Currency         string `json:"currency"          validate:"omitempty,max=3"`
	PaymentMethod    string `json:"payment_method"    validate:"omitempty,max=50"`
	BookingSource    string `json:"booking_source"    validate:"omitempty,oneof=website walk_in booking_com airbnb phone agent"`
	Discounts        string `json:"discounts"         validate:"omitempty"`
	ExtraCharges     string `json:"extra_charges"     validate:"omitempty"`
	SpecialRequests  string `json:"special_requests"  validate:"omitempty"`
	Notes            string `json:"notes"             validate:"omitempty"`
}

// ToModel builds a new pending booking from the request. Monetary totals are
// left zero; the service prices the stay once the room rate is known.
func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, err := timezone.Parse(constant.DateOnlyFormat, c.CheckIn)
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := timezone.Parse(constant.DateOnlyFormat, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	deposit, err := parseDecimal(c.Deposit)
	if err != nil {
		return model.Booking{}, err
	}

	discounts, err := parseDecimal(c.Discounts)
	if err != nil {
		return model.Booking{}, err
	}

	extraCharges, err := parseDecimal(c.ExtraCharges)
	if err != nil {
		return model.Booking{}, err
	}

	currency := c.Currency
	if currency == "" {
		currency = constant.DefaultCurrency
	}

	source := c.BookingSource
	if source == "" {
		source = constant.BookingSourceWalkIn
	}

	deadline := checkIn.Add(-constant.CancellationNoticePeriod)

	return model.Booking{
		ID:                   uuid.NewString(),
		GuestName:            c.GuestName,
		GuestEmail:           c.GuestEmail,
		GuestPhone:           c.GuestPhone,
		GuestAddress:         c.GuestAddress,
		GuestNationality:     c.GuestNationality,
		GuestIDNumber:        c.GuestIDNumber,
		LodgeID:              c.LodgeID,
		RoomID:               c.RoomID,
		CheckIn:              checkIn,
		CheckOut:             checkOut,
		Guests:               c.Guests,
		Adults:               c.Adults,
		Children:             c.Children,
		Status:               constant.BookingStatusPending,
		Deposit:              deposit,
		Currency:             currency,
		PaymentStatus:        constant.PaymentStatusPending,
		PaymentMethod:        c.PaymentMethod,
		BookingSource:        source,
		SpecialRequests:      c.SpecialRequests,
		Notes:                c.Notes,
		Discounts:            discounts,
		ExtraCharges:         extraCharges,
		CancellationDeadline: &deadline,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingRequest struct {
	GuestName        string `json:"guest_name"        validate:"omitempty"`
	GuestEmail       string `json:"guest_email"       validate:"omitempty"`
	GuestPhone       string `json:"guest_phone"       validate:"omitempty"`
	GuestAddress     string `json:"guest_address"     validate:"omitempty,max=255"`
	GuestNationality string `json:"guest_nationality" validate:"omitempty,max=100"`
	GuestIDNumber    string `json:"guest_id_number"   validate:"omitempty,max=50"`
	RoomID           string `json:"room_id"           validate:"omitempty"`
	CheckIn          string `json:"check_in"          validate:"omitempty"`
	CheckOut         string `json:"check_out"         validate:"omitempty"`
	Guests           int    `json:"guests"            validate:"omitempty"`
	Adults           int    `json:"adults"            validate:"omitempty"`
	Children         int    `json:"children"          validate:"omitempty"`
	Deposit          string `json:"deposit"           validate:"omitempty"`
	PaymentMethod    string `json:"payment_method"    validate:"omitempty,max=50"`
	BookingSource    string `json:"booking_source"    validate:"omitempty,oneof=website walk_in booking_com airbnb phone agent"`
	Discounts        string `json:"discounts"         validate:"omitempty"`
	ExtraCharges     string `json:"extra_charges"     validate:"omitempty"`
	SpecialRequests  string `json:"special_requests"  validate:"omitempty"`
	Notes            string `json:"notes"             validate:"omitempty"`
}

// Apply overlays the set fields of the request onto an existing booking and
// reports whether the room or stay window changed, which forces a fresh
// conflict check and repricing.
func (u *UpdateBookingRequest) Apply(booking *model.Booking) (stayChanged bool, err error) {
	if u.GuestName != "" {
		booking.GuestName = u.GuestName
	}

	if u.GuestEmail != "" {
		booking.GuestEmail = u.GuestEmail
	}

	if u.GuestPhone != "" {
		booking.GuestPhone = u.GuestPhone
	}

	if u.GuestAddress != "" {
		booking.GuestAddress = u.GuestAddress
	}

	if u.GuestNationality != "" {
		booking.GuestNationality = u.GuestNationality
	}

	if u.GuestIDNumber != "" {
		booking.GuestIDNumber = u.GuestIDNumber
	}

	if u.RoomID != "" && u.RoomID != booking.RoomID {
		booking.RoomID = u.RoomID
		stayChanged = true
	}

	if u.CheckIn != "" {
		checkIn, parseErr := timezone.Parse(constant.DateOnlyFormat, u.CheckIn)
		if parseErr != nil {
			return false, parseErr
		}

		if !checkIn.Equal(booking.CheckIn) {
			booking.CheckIn = checkIn
			stayChanged = true
		}
	}

	if u.CheckOut != "" {
		checkOut, parseErr := timezone.Parse(constant.DateOnlyFormat, u.CheckOut)
		if parseErr != nil {
			return false, parseErr
		}

		if !checkOut.Equal(booking.CheckOut) {
			booking.CheckOut = checkOut
			stayChanged = true
		}
	}

	if u.Guests != 0 {
		booking.Guests = u.Guests
	}

	if u.Adults != 0 {
		booking.Adults = u.Adults
	}

	if u.Children != 0 {
		booking.Children = u.Children
	}

	if u.Deposit != "" {
		deposit, parseErr := decimal.NewFromString(u.Deposit)
		if parseErr != nil {
			return false, parseErr
		}

		booking.Deposit = deposit
		booking.Balance = booking.Amount.Sub(deposit)
	}

	if u.PaymentMethod != "" {
		booking.PaymentMethod = u.PaymentMethod
	}

	if u.BookingSource != "" {
		booking.BookingSource = u.BookingSource
	}

	if u.Discounts != "" {
		discounts, parseErr := decimal.NewFromString(u.Discounts)
		if parseErr != nil {
			return false, parseErr
		}

		booking.Discounts = discounts
		stayChanged = true
	}

	if u.ExtraCharges != "" {
		extraCharges, parseErr := decimal.NewFromString(u.ExtraCharges)
		if parseErr != nil {
			return false, parseErr
		}

		booking.ExtraCharges = extraCharges
		stayChanged = true
	}

	if u.SpecialRequests != "" {
		booking.SpecialRequests = u.SpecialRequests
	}

	if u.Notes != "" {
		booking.Notes = u.Notes
	}

	return stayChanged, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed checked_in checked_out cancelled"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty"`
}

type RecordPaymentRequest struct {
	Amount string `json:"amount" validate:"required"`
	Method string `json:"method" validate:"required,max=50"`
}

type BookingResponse struct {
	ID                   string          `json:"id"`
	GuestName            string          `json:"guest_name"`
	GuestEmail           string          `json:"guest_email"`
	GuestPhone           string          `json:"guest_phone"`
	GuestAddress         string          `json:"guest_address,omitempty"`
	GuestNationality     string          `json:"guest_nationality,omitempty"`
	GuestIDNumber        string          `json:"guest_id_number,omitempty"`
	LodgeID              string          `json:"lodge_id"`
	LodgeName            string          `json:"lodge_name"`
	RoomID               string          `json:"room_id"`
	RoomName             string          `json:"room_name"`
	RoomType             string          `json:"room_type"`
	CheckIn              string          `json:"check_in"`
	CheckOut             string          `json:"check_out"`
	Guests               int             `json:"guests"`
	Adults               int             `json:"adults"`
	Children             int             `json:"children"`
	Status               string          `json:"status"`
	Amount               decimal.Decimal `json:"amount"`
	Deposit              decimal.Decimal `json:"deposit"`
	Balance              decimal.Decimal `json:"balance"`
	Currency             string          `json:"currency"`
	PaymentStatus        string          `json:"payment_status"`
	PaymentMethod        string          `json:"payment_method,omitempty"`
	BookingSource        string          `json:"booking_source"`
	SpecialRequests      string          `json:"special_requests,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	CancellationReason   string          `json:"cancellation_reason,omitempty"`
	CheckInTime          *string         `json:"check_in_time,omitempty"`
	CheckOutTime         *string         `json:"check_out_time,omitempty"`
	RoomRate             decimal.Decimal `json:"room_rate"`
	Taxes                decimal.Decimal `json:"taxes"`
	Discounts            decimal.Decimal `json:"discounts"`
	ExtraCharges         decimal.Decimal `json:"extra_charges"`
	CancellationDeadline *string         `json:"cancellation_deadline,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.GuestName = mod.GuestName
	r.GuestEmail = mod.GuestEmail
	r.GuestPhone = mod.GuestPhone
	r.GuestAddress = mod.GuestAddress
	r.GuestNationality = mod.GuestNationality
	r.GuestIDNumber = mod.GuestIDNumber
	r.LodgeID = mod.LodgeID
	r.LodgeName = mod.LodgeName
	r.RoomID = mod.RoomID
	r.RoomName = mod.RoomName
	r.RoomType = mod.RoomType
	r.CheckIn = mod.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = mod.CheckOut.Format(constant.DateOnlyFormat)
	r.Guests = mod.Guests
	r.Adults = mod.Adults
	r.Children = mod.Children
	r.Status = mod.Status
	r.Amount = mod.Amount
	r.Deposit = mod.Deposit
	r.Balance = mod.Balance
	r.Currency = mod.Currency
	r.PaymentStatus = mod.PaymentStatus
	r.PaymentMethod = mod.PaymentMethod
	r.BookingSource = mod.BookingSource
	r.SpecialRequests = mod.SpecialRequests
	r.Notes = mod.Notes
	r.CancellationReason = mod.CancellationReason
	r.CheckInTime = formatTimePtr(mod.CheckInTime)
	r.CheckOutTime = formatTimePtr(mod.CheckOutTime)
	r.RoomRate = mod.RoomRate
	r.Taxes = mod.Taxes
	r.Discounts = mod.Discounts
	r.ExtraCharges = mod.ExtraCharges
	r.CancellationDeadline = formatTimePtr(mod.CancellationDeadline)
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type PricingResponse struct {
	Nights         int             `json:"nights"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Taxes          decimal.Decimal `json:"taxes"`
	ExtraCharges   decimal.Decimal `json:"extra_charges"`
	Total          decimal.Decimal `json:"total"`
}

func (r *PricingResponse) FromBreakdown(breakdown pricing.Breakdown) {
	r.Nights = breakdown.Nights
	r.Subtotal = breakdown.Subtotal
	r.DiscountAmount = breakdown.DiscountAmount
	r.Taxes = breakdown.Taxes
	r.ExtraCharges = breakdown.ExtraCharges
	r.Total = breakdown.Total
}

type StatsResponse struct {
	Total          int             `json:"total"`
	Pending        int             `json:"pending"`
	Confirmed      int             `json:"confirmed"`
	CheckedIn      int             `json:"checked_in"`
	CheckedOut     int             `json:"checked_out"`
	Cancelled      int             `json:"cancelled"`
	TodayCheckIns  int             `json:"today_check_ins"`
	TodayCheckOuts int             `json:"today_check_outs"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	OutstandingDue decimal.Decimal `json:"outstanding_due"`
}

func (r *StatsResponse) FromModel(stats model.Stats) {
	r.Total = stats.Total
	r.Pending = stats.Pending
	r.Confirmed = stats.Confirmed
	r.CheckedIn = stats.CheckedIn
	r.CheckedOut = stats.CheckedOut
	r.Cancelled = stats.Cancelled
	r.TodayCheckIns = stats.TodayCheckIns
	r.TodayCheckOuts = stats.TodayCheckOuts
	r.TotalRevenue = stats.TotalRevenue
	r.OutstandingDue = stats.OutstandingDue
}

// BookingEvent is the payload published to the booking events topic whenever
// a booking changes status.
type BookingEvent struct {
	BookingID      string    `json:"booking_id"`
	LodgeID        string    `json:"lodge_id"`
	RoomID         string    `json:"room_id"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func parseDecimal(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(value)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := t.Format(constant.DateFormat)

	return &formatted
}
