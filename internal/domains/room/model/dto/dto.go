package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"lodgehub/internal/domains/room/model"
	"lodgehub/shared"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
	gModel "lodgehub/shared/model"
	"lodgehub/shared/timezone"
)

type CreateRoomRequest struct {
	LodgeID     string   `json:"lodge_id"     validate:"required,uuid"`
	Number      string   `json:"number"       validate:"required,max=20"`
	Name        string   `json:"name"         validate:"omitempty,max=100"`
	Type        string   `json:"type"         validate:"required,oneof=standard deluxe suite family executive"`
	Capacity    int      `json:"capacity"     validate:"omitempty,min=1"`
	BedsSingle  int      `json:"beds_single"  validate:"omitempty,min=0"`
	BedsDouble  int      `json:"beds_double"  validate:"omitempty,min=0"`
	BedsQueen   int      `json:"beds_queen"   validate:"omitempty,min=0"`
	BedsKing    int      `json:"beds_king"    validate:"omitempty,min=0"`
	Amenities   []string `json:"amenities"    validate:"omitempty"`
	Description string   `json:"description"  validate:"omitempty"`
	PriceNormal string   `json:"price_normal" validate:"required"`
	PriceBusy   string   `json:"price_busy"   validate:"omitempty"`
	PriceSlow   string   `json:"price_slow"   validate:"omitempty"`
	SizeSqm     float64  `json:"size_sqm"     validate:"omitempty,min=0"`
	View        string   `json:"view"         validate:"omitempty,max=100"`
	Floor       int      `json:"floor"        validate:"omitempty"`
}

// ToModel builds a new available room. Seasonal prices fall back to the
// normal rate, and capacity falls back to the bed configuration.
func (c *CreateRoomRequest) ToModel(user string) (model.Room, error) {
	priceNormal, err := decimal.NewFromString(c.PriceNormal)
	if err != nil {
		return model.Room{}, err
	}

	priceBusy, err := parseDecimalOr(c.PriceBusy, priceNormal)
	if err != nil {
		return model.Room{}, err
	}

	priceSlow, err := parseDecimalOr(c.PriceSlow, priceNormal)
	if err != nil {
		return model.Room{}, err
	}

	room := model.Room{
		ID:          uuid.NewString(),
		LodgeID:     c.LodgeID,
		Number:      c.Number,
		Name:        c.Name,
		Type:        c.Type,
		Capacity:    c.Capacity,
		BedsSingle:  c.BedsSingle,
		BedsDouble:  c.BedsDouble,
		BedsQueen:   c.BedsQueen,
		BedsKing:    c.BedsKing,
		Amenities:   pq.StringArray(c.Amenities),
		Description: c.Description,
		PriceNormal: priceNormal,
		PriceBusy:   priceBusy,
		PriceSlow:   priceSlow,
		Status:      constant.RoomStatusAvailable,
		SizeSqm:     c.SizeSqm,
		View:        c.View,
		Floor:       c.Floor,
		IsActive:    true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if room.Capacity == 0 {
		room.Capacity = room.CapacityFromBeds()
	}

	return room, nil
}

type UpdateRoomRequest struct {
	Number      *string  `json:"number"       validate:"omitempty,max=20"`
	Name        *string  `json:"name"         validate:"omitempty,max=100"`
	Type        *string  `json:"type"         validate:"omitempty,oneof=standard deluxe suite family executive"`
	Capacity    *int     `json:"capacity"     validate:"omitempty,min=1"`
	BedsSingle  *int     `json:"beds_single"  validate:"omitempty,min=0"`
	BedsDouble  *int     `json:"beds_double"  validate:"omitempty,min=0"`
	BedsQueen   *int     `json:"beds_queen"   validate:"omitempty,min=0"`
	BedsKing    *int     `json:"beds_king"    validate:"omitempty,min=0"`
	Amenities   []string `json:"amenities"    validate:"omitempty"`
	Description *string  `json:"description"  validate:"omitempty"`
	PriceNormal *string  `json:"price_normal" validate:"omitempty"`
	PriceBusy   *string  `json:"price_busy"   validate:"omitempty"`
	PriceSlow   *string  `json:"price_slow"   validate:"omitempty"`
	SizeSqm     *float64 `json:"size_sqm"     validate:"omitempty,min=0"`
	View        *string  `json:"view"         validate:"omitempty,max=100"`
	Floor       *int     `json:"floor"        validate:"omitempty"`
	IsActive    *bool    `json:"is_active"    validate:"omitempty"`
}

// Fields maps only the set request fields to their columns.
func (u *UpdateRoomRequest) Fields(user string) (map[string]any, error) {
	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if u.Number != nil {
		fields[model.FieldNumber] = *u.Number
	}

	if u.Name != nil {
		fields[model.FieldName] = *u.Name
	}

	if u.Type != nil {
		fields[model.FieldType] = *u.Type
	}

	if u.Capacity != nil {
		fields[model.FieldCapacity] = *u.Capacity
	}

	if u.BedsSingle != nil {
		fields[model.FieldBedsSingle] = *u.BedsSingle
	}

	if u.BedsDouble != nil {
		fields[model.FieldBedsDouble] = *u.BedsDouble
	}

	if u.BedsQueen != nil {
		fields[model.FieldBedsQueen] = *u.BedsQueen
	}

	if u.BedsKing != nil {
		fields[model.FieldBedsKing] = *u.BedsKing
	}

	if u.Amenities != nil {
		fields[model.FieldAmenities] = pq.StringArray(u.Amenities)
	}

	if u.Description != nil {
		fields[model.FieldDescription] = *u.Description
	}

	if u.SizeSqm != nil {
		fields[model.FieldSizeSqm] = *u.SizeSqm
	}

	if u.View != nil {
		fields[model.FieldView] = *u.View
	}

	if u.Floor != nil {
		fields[model.FieldFloor] = *u.Floor
	}

	if u.IsActive != nil {
		fields[model.FieldIsActive] = *u.IsActive
	}

	for column, raw := range map[string]*string{
		model.FieldPriceNormal: u.PriceNormal,
		model.FieldPriceBusy:   u.PriceBusy,
		model.FieldPriceSlow:   u.PriceSlow,
	} {
		if raw == nil {
			continue
		}

		price, err := decimal.NewFromString(*raw)
		if err != nil {
			return nil, err
		}

		fields[column] = price
	}

	return fields, nil
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied maintenance out_of_order cleaning"`
}

type RoomResponse struct {
	ID              string          `json:"id"`
	LodgeID         string          `json:"lodge_id"`
	Number          string          `json:"number"`
	Name            string          `json:"name,omitempty"`
	Type            string          `json:"type"`
	Capacity        int             `json:"capacity"`
	BedsSingle      int             `json:"beds_single"`
	BedsDouble      int             `json:"beds_double"`
	BedsQueen       int             `json:"beds_queen"`
	BedsKing        int             `json:"beds_king"`
	Amenities       []string        `json:"amenities"`
	Description     string          `json:"description,omitempty"`
	PriceNormal     decimal.Decimal `json:"price_normal"`
	PriceBusy       decimal.Decimal `json:"price_busy"`
	PriceSlow       decimal.Decimal `json:"price_slow"`
	Status          string          `json:"status"`
	SizeSqm         float64         `json:"size_sqm,omitempty"`
	View            string          `json:"view,omitempty"`
	Floor           int             `json:"floor"`
	IsActive        bool            `json:"is_active"`
	LastCleaned     *string         `json:"last_cleaned,omitempty"`
	NextMaintenance *string         `json:"next_maintenance,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(mod model.Room) {
	r.ID = mod.ID
	r.LodgeID = mod.LodgeID
	r.Number = mod.Number
	r.Name = mod.Name
	r.Type = mod.Type
	r.Capacity = mod.Capacity
	r.BedsSingle = mod.BedsSingle
	r.BedsDouble = mod.BedsDouble
	r.BedsQueen = mod.BedsQueen
	r.BedsKing = mod.BedsKing
	r.Amenities = mod.Amenities
	r.Description = mod.Description
	r.PriceNormal = mod.PriceNormal
	r.PriceBusy = mod.PriceBusy
	r.PriceSlow = mod.PriceSlow
	r.Status = mod.Status
	r.SizeSqm = mod.SizeSqm
	r.View = mod.View
	r.Floor = mod.Floor
	r.IsActive = mod.IsActive
	r.LastCleaned = formatTimePtr(mod.LastCleaned)
	r.NextMaintenance = formatTimePtr(mod.NextMaintenance)
	r.Metadata.FromModel(mod.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

func parseDecimalOr(value string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if value == "" {
		return fallback, nil
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
