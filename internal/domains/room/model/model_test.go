package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lodgehub/internal/domains/room/model"
	"lodgehub/shared/constant"
)

func TestRateFor(t *testing.T) {
	room := model.Room{
		PriceNormal: decimal.NewFromInt(100),
		PriceBusy:   decimal.NewFromInt(130),
		PriceSlow:   decimal.NewFromInt(80),
	}

	tests := []struct {
		season   string
		expected int64
	}{
		{constant.SeasonNormal, 100},
		{constant.SeasonBusy, 130},
		{constant.SeasonSlow, 80},
		{"", 100},
		{"unknown", 100},
	}

	for _, tt := range tests {
		t.Run("season "+tt.season, func(t *testing.T) {
			assert.True(t, room.RateFor(tt.season).Equal(decimal.NewFromInt(tt.expected)))
		})
	}
}

func TestCapacityFromBeds(t *testing.T) {
	room := model.Room{
		BedsSingle: 2,
		BedsDouble: 1,
		BedsQueen:  1,
		BedsKing:   0,
	}

	assert.Equal(t, 6, room.CapacityFromBeds())
}
