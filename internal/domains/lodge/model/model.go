package model

import (
	"github.com/lib/pq"

	"lodgehub/shared/model"
)

const (
	TableName  = "lodges"
	EntityName = "lodge"

	FieldID                 = "id"
	FieldName               = "name"
	FieldDescription        = "description"
	FieldStreet             = "street"
	FieldCity               = "city"
	FieldState              = "state"
	FieldCountry            = "country"
	FieldZipCode            = "zip_code"
	FieldLatitude           = "latitude"
	FieldLongitude          = "longitude"
	FieldPhone              = "phone"
	FieldEmail              = "email"
	FieldWebsite            = "website"
	FieldAmenities          = "amenities"
	FieldConferenceRooms    = "conference_rooms"
	FieldHasRestaurant      = "has_restaurant"
	FieldHasGym             = "has_gym"
	FieldHasSpa             = "has_spa"
	FieldHasPool            = "has_pool"
	FieldHasParking         = "has_parking"
	FieldHasWifi            = "has_wifi"
	FieldHasLaundry         = "has_laundry"
	FieldCheckInPolicy      = "check_in_policy"
	FieldCheckOutPolicy     = "check_out_policy"
	FieldCancellationPolicy = "cancellation_policy"
	FieldPetPolicy          = "pet_policy"
	FieldSmokingPolicy      = "smoking_policy"
	FieldRating             = "rating"
	FieldTotalRooms         = "total_rooms"
	FieldAvailableRooms     = "available_rooms"
	FieldOccupancyRate      = "occupancy_rate"
	FieldIsActive           = "is_active"
	FieldManagerID          = "manager_id"
)

type Lodge struct {
	ID                 string         `db:"id"`
	Name               string         `db:"name"`
	Description        string         `db:"description"`
	Street             string         `db:"street"`
	City               string         `db:"city"`
	State              string         `db:"state"`
	Country            string         `db:"country"`
	ZipCode            string         `db:"zip_code"`
	Latitude           *float64       `db:"latitude"`
	Longitude          *float64       `db:"longitude"`
	Phone              string         `db:"phone"`
	Email              string         `db:"email"`
	Website            string         `db:"website"`
	Amenities          pq.StringArray `db:"amenities"`
	ConferenceRooms    int            `db:"conference_rooms"`
	HasRestaurant      bool           `db:"has_restaurant"`
	HasGym             bool           `db:"has_gym"`
	HasSpa             bool           `db:"has_spa"`
	HasPool            bool           `db:"has_pool"`
	HasParking         bool           `db:"has_parking"`
	HasWifi            bool           `db:"has_wifi"`
	HasLaundry         bool           `db:"has_laundry"`
	CheckInPolicy      string         `db:"check_in_policy"`
	CheckOutPolicy     string         `db:"check_out_policy"`
	CancellationPolicy string         `db:"cancellation_policy"`
	PetPolicy          string         `db:"pet_policy"`
	SmokingPolicy      string         `db:"smoking_policy"`
	Rating             float64        `db:"rating"`
	TotalRooms         int            `db:"total_rooms"`
	AvailableRooms     int            `db:"available_rooms"`
	OccupancyRate      float64        `db:"occupancy_rate"`
	IsActive           bool           `db:"is_active"`
	ManagerID          *string        `db:"manager_id"`
	model.Metadata
}
