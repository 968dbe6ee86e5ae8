package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"lodgehub/shared/constant"
	"lodgehub/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID              = "id"
	FieldLodgeID         = "lodge_id"
	FieldNumber          = "number"
	FieldName            = "name"
	FieldType            = "type"
	FieldCapacity        = "capacity"
	FieldBedsSingle      = "beds_single"
	FieldBedsDouble      = "beds_double"
	FieldBedsQueen       = "beds_queen"
	FieldBedsKing        = "beds_king"
	FieldAmenities       = "amenities"
	FieldDescription     = "description"
	FieldPriceNormal     = "price_normal"
	FieldPriceBusy       = "price_busy"
	FieldPriceSlow       = "price_slow"
	FieldStatus          = "status"
	FieldSizeSqm         = "size_sqm"
	FieldView            = "view"
	FieldFloor           = "floor"
	FieldIsActive        = "is_active"
	FieldLastCleaned     = "last_cleaned"
	FieldNextMaintenance = "next_maintenance"
)

type Room struct {
	ID              string          `db:"id"`
	LodgeID         string          `db:"lodge_id"`
	Number          string          `db:"number"`
	Name            string          `db:"name"`
	Type            string          `db:"type"`
	Capacity        int             `db:"capacity"`
	BedsSingle      int             `db:"beds_single"`
	BedsDouble      int             `db:"beds_double"`
	BedsQueen       int             `db:"beds_queen"`
	BedsKing        int             `db:"beds_king"`
	Amenities       pq.StringArray  `db:"amenities"`
	Description     string          `db:"description"`
	PriceNormal     decimal.Decimal `db:"price_normal"`
	PriceBusy       decimal.Decimal `db:"price_busy"`
	PriceSlow       decimal.Decimal `db:"price_slow"`
	Status          string          `db:"status"`
	SizeSqm         float64         `db:"size_sqm"`
	View            string          `db:"view"`
	Floor           int             `db:"floor"`
	IsActive        bool            `db:"is_active"`
	LastCleaned     *time.Time      `db:"last_cleaned"`
	NextMaintenance *time.Time      `db:"next_maintenance"`
	model.Metadata
}

// RateFor returns the nightly rate for the given season, falling back to the
// normal rate for unknown seasons.
func (r *Room) RateFor(season string) decimal.Decimal {
	switch season {
	case constant.SeasonBusy:
		return r.PriceBusy
	case constant.SeasonSlow:
		return r.PriceSlow
	default:
		return r.PriceNormal
	}
}

// CapacityFromBeds estimates sleeping capacity from the bed configuration:
// singles sleep one, everything else sleeps two.
func (r *Room) CapacityFromBeds() int {
	return r.BedsSingle + 2*r.BedsDouble + 2*r.BedsQueen + 2*r.BedsKing
}
