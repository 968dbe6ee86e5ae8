package model

import "github.com/shopspring/decimal"

// Stats aggregates bookings by status along with money totals and today's
// expected guest movements. Revenue counts every non-cancelled booking;
// outstanding due is what guests still owe on active stays; today's check-ins
// are confirmed bookings arriving today, today's check-outs are in-house
// bookings leaving today.
type Stats struct {
	Total          int             `db:"total"`
	Pending        int             `db:"pending"`
	Confirmed      int             `db:"confirmed"`
	CheckedIn      int             `db:"checked_in"`
	CheckedOut     int             `db:"checked_out"`
	Cancelled      int             `db:"cancelled"`
	TodayCheckIns  int             `db:"today_check_ins"`
	TodayCheckOuts int             `db:"today_check_outs"`
	TotalRevenue   decimal.Decimal `db:"total_revenue"`
	OutstandingDue decimal.Decimal `db:"outstanding_due"`
}
