package model

import (
	roomModel "lodgehub/internal/domains/room/model"
	"lodgehub/shared/constant"
)

// Inventory is the room availability summary for a lodge, derived from its
// current room records rather than stored counters.
type Inventory struct {
	TotalRooms     int            `json:"total_rooms"`
	AvailableRooms int            `json:"available_rooms"`
	OccupancyRate  float64        `json:"occupancy_rate"`
	ByStatus       map[string]int `json:"by_status"`
}

// ComputeInventory tallies a lodge's rooms by status. The occupancy rate is
// the share of rooms not currently available, as a percentage; a lodge with
// no rooms has zero occupancy.
func ComputeInventory(rooms []roomModel.Room) Inventory {
	inventory := Inventory{
		ByStatus: map[string]int{},
	}

	for _, room := range rooms {
		inventory.TotalRooms++
		inventory.ByStatus[room.Status]++

		if room.Status == constant.RoomStatusAvailable {
			inventory.AvailableRooms++
		}
	}

	if inventory.TotalRooms > 0 {
		occupied := inventory.TotalRooms - inventory.AvailableRooms
		inventory.OccupancyRate = float64(occupied) / float64(inventory.TotalRooms) * 100
	}

	return inventory
}
