package dto

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"lodgehub/internal/domains/lodge/model"
	"lodgehub/shared"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
	gModel "lodgehub/shared/model"
	"lodgehub/shared/timezone"
)

type CreateLodgeRequest struct {
	Name               string   `json:"name"                validate:"required,max=255"`
	Description        string   `json:"description"         validate:"omitempty"`
	Street             string   `json:"street"              validate:"omitempty,max=255"`
	City               string   `json:"city"                validate:"omitempty,max=100"`
	State              string   `json:"state"               validate:"omitempty,max=100"`
	Country            string   `json:"country"             validate:"omitempty,max=100"`
	ZipCode            string   `json:"zip_code"            validate:"omitempty,max=20"`
	Latitude           *float64 `json:"latitude"            validate:"omitempty,min=-90,max=90"`
	Longitude          *float64 `json:"longitude"           validate:"omitempty,min=-180,max=180"`
	Phone              string   `json:"phone"               validate:"omitempty,max=20"`
	Email              string   `json:"email"               validate:"omitempty,email"`
	Website            string   `json:"website"             validate:"omitempty,url"`
	Amenities          []string `json:"amenities"           validate:"omitempty"`
	ConferenceRooms    int      `json:"conference_rooms"    validate:"omitempty,min=0"`
	HasRestaurant      bool     `json:"has_restaurant"`
	HasGym             bool     `json:"has_gym"`
	HasSpa             bool     `json:"has_spa"`
	HasPool            bool     `json:"has_pool"`
	HasParking         bool     `json:"has_parking"`
	HasWifi            bool     `json:"has_wifi"`
	HasLaundry         bool     `json:"has_laundry"`
	CheckInPolicy      string   `json:"check_in_policy"     validate:"omitempty"`
	CheckOutPolicy     string   `json:"check_out_policy"    validate:"omitempty"`
	CancellationPolicy string   `json:"cancellation_policy" validate:"omitempty"`
	PetPolicy          string   `json:"pet_policy"          validate:"omitempty"`
	SmokingPolicy      string   `json:"smoking_policy"      validate:"omitempty"`
	ManagerID          *string  `json:"manager_id"          validate:"omitempty,uuid"`
}

func (c *CreateLodgeRequest) ToModel(user string) model.Lodge {
	return model.Lodge{
		ID:                 uuid.NewString(),
		Name:               c.Name,
		Description:        c.Description,
		Street:             c.Street,
		City:               c.City,
		State:              c.State,
		Country:            c.Country,
		ZipCode:            c.ZipCode,
		Latitude:           c.Latitude,
		Longitude:          c.Longitude,
		Phone:              c.Phone,
		Email:              c.Email,
		Website:            c.Website,
		Amenities:          pq.StringArray(c.Amenities),
		ConferenceRooms:    c.ConferenceRooms,
		HasRestaurant:      c.HasRestaurant,
		HasGym:             c.HasGym,
		HasSpa:             c.HasSpa,
		HasPool:            c.HasPool,
		HasParking:         c.HasParking,
		HasWifi:            c.HasWifi,
		HasLaundry:         c.HasLaundry,
		CheckInPolicy:      c.CheckInPolicy,
		CheckOutPolicy:     c.CheckOutPolicy,
		CancellationPolicy: c.CancellationPolicy,
		PetPolicy:          c.PetPolicy,
		SmokingPolicy:      c.SmokingPolicy,
		IsActive:           true,
		ManagerID:          c.ManagerID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateLodgeRequest struct {
	Name               *string  `json:"name"                validate:"omitempty,max=255"`
	Description        *string  `json:"description"         validate:"omitempty"`
	Street             *string  `json:"street"              validate:"omitempty,max=255"`
	City               *string  `json:"city"                validate:"omitempty,max=100"`
	State              *string  `json:"state"               validate:"omitempty,max=100"`
	Country            *string  `json:"country"             validate:"omitempty,max=100"`
	ZipCode            *string  `json:"zip_code"            validate:"omitempty,max=20"`
	Latitude           *float64 `json:"latitude"            validate:"omitempty,min=-90,max=90"`
	Longitude          *float64 `json:"longitude"           validate:"omitempty,min=-180,max=180"`
	Phone              *string  `json:"phone"               validate:"omitempty,max=20"`
	Email              *string  `json:"email"               validate:"omitempty,email"`
	Website            *string  `json:"website"             validate:"omitempty,url"`
	Amenities          []string `json:"amenities"           validate:"omitempty"`
	ConferenceRooms    *int     `json:"conference_rooms"    validate:"omitempty,min=0"`
	HasRestaurant      *bool    `json:"has_restaurant"      validate:"omitempty"`
	HasGym             *bool    `json:"has_gym"             validate:"omitempty"`
	HasSpa             *bool    `json:"has_spa"             validate:"omitempty"`
	HasPool            *bool    `json:"has_pool"            validate:"omitempty"`
	HasParking         *bool    `json:"has_parking"         validate:"omitempty"`
	HasWifi            *bool    `json:"has_wifi"            validate:"omitempty"`
	HasLaundry         *bool    `json:"has_laundry"         validate:"omitempty"`
	CheckInPolicy      *string  `json:"check_in_policy"     validate:"omitempty"`
	CheckOutPolicy     *string  `json:"check_out_policy"    validate:"omitempty"`
	CancellationPolicy *string  `json:"cancellation_policy" validate:"omitempty"`
	PetPolicy          *string  `json:"pet_policy"          validate:"omitempty"`
	SmokingPolicy      *string  `json:"smoking_policy"      validate:"omitempty"`
	IsActive           *bool    `json:"is_active"           validate:"omitempty"`
	ManagerID          *string  `json:"manager_id"          validate:"omitempty,uuid"`
}

// Fields maps only the set request fields to their columns.
func (u *UpdateLodgeRequest) Fields(user string) map[string]any {
	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	setString := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}

	setBool := func(column string, value *bool) {
		if value != nil {
			fields[column] = *value
		}
	}

	setString(model.FieldName, u.Name)
	setString(model.FieldDescription, u.Description)
	setString(model.FieldStreet, u.Street)
	setString(model.FieldCity, u.City)
	setString(model.FieldState, u.State)
	setString(model.FieldCountry, u.Country)
	setString(model.FieldZipCode, u.ZipCode)
	setString(model.FieldPhone, u.Phone)
	setString(model.FieldEmail, u.Email)
	setString(model.FieldWebsite, u.Website)
	setString(model.FieldCheckInPolicy, u.CheckInPolicy)
	setString(model.FieldCheckOutPolicy, u.CheckOutPolicy)
	setString(model.FieldCancellationPolicy, u.CancellationPolicy)
	setString(model.FieldPetPolicy, u.PetPolicy)
	setString(model.FieldSmokingPolicy, u.SmokingPolicy)
	setString(model.FieldManagerID, u.ManagerID)

	setBool(model.FieldHasRestaurant, u.HasRestaurant)
	setBool(model.FieldHasGym, u.HasGym)
	setBool(model.FieldHasSpa, u.HasSpa)
	setBool(model.FieldHasPool, u.HasPool)
	setBool(model.FieldHasParking, u.HasParking)
	setBool(model.FieldHasWifi, u.HasWifi)
	setBool(model.FieldHasLaundry, u.HasLaundry)
	setBool(model.FieldIsActive, u.IsActive)

	if u.Latitude != nil {
		fields[model.FieldLatitude] = *u.Latitude
	}

	if u.Longitude != nil {
		fields[model.FieldLongitude] = *u.Longitude
	}

	if u.Amenities != nil {
		fields[model.FieldAmenities] = pq.StringArray(u.Amenities)
	}

	if u.ConferenceRooms != nil {
		fields[model.FieldConferenceRooms] = *u.ConferenceRooms
	}

	return fields
}

type LodgeResponse struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description,omitempty"`
	Street             string         `json:"street,omitempty"`
	City               string         `json:"city,omitempty"`
	State              string         `json:"state,omitempty"`
	Country            string         `json:"country,omitempty"`
	ZipCode            string         `json:"zip_code,omitempty"`
	Latitude           *float64       `json:"latitude,omitempty"`
	Longitude          *float64       `json:"longitude,omitempty"`
	Phone              string         `json:"phone,omitempty"`
	Email              string         `json:"email,omitempty"`
	Website            string         `json:"website,omitempty"`
	Amenities          []string       `json:"amenities"`
	ConferenceRooms    int            `json:"conference_rooms"`
	HasRestaurant      bool           `json:"has_restaurant"`
	HasGym             bool           `json:"has_gym"`
	HasSpa             bool           `json:"has_spa"`
	HasPool            bool           `json:"has_pool"`
	HasParking         bool           `json:"has_parking"`
	HasWifi            bool           `json:"has_wifi"`
	HasLaundry         bool           `json:"has_laundry"`
	CheckInPolicy      string         `json:"check_in_policy,omitempty"`
	CheckOutPolicy     string         `json:"check_out_policy,omitempty"`
	CancellationPolicy string         `json:"cancellation_policy,omitempty"`
	PetPolicy          string         `json:"pet_policy,omitempty"`
	SmokingPolicy      string         `json:"smoking_policy,omitempty"`
	Rating             float64        `json:"rating"`
	TotalRooms         int            `json:"total_rooms"`
	AvailableRooms     int            `json:"available_rooms"`
	OccupancyRate      float64        `json:"occupancy_rate"`
	ByStatus           map[string]int `json:"rooms_by_status,omitempty"`
	IsActive           bool           `json:"is_active"`
	ManagerID          *string        `json:"manager_id,omitempty"`
	gDto.Metadata
}

func (r *LodgeResponse) FromModel(mod model.Lodge) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Description = mod.Description
	r.Street = mod.Street
	r.City = mod.City
	r.State = mod.State
	r.Country = mod.Country
	r.ZipCode = mod.ZipCode
	r.Latitude = mod.Latitude
	r.Longitude = mod.Longitude
	r.Phone = mod.Phone
	r.Email = mod.Email
	r.Website = mod.Website
	r.Amenities = mod.Amenities
	r.ConferenceRooms = mod.ConferenceRooms
	r.HasRestaurant = mod.HasRestaurant
	r.HasGym = mod.HasGym
	r.HasSpa = mod.HasSpa
	r.HasPool = mod.HasPool
	r.HasParking = mod.HasParking
	r.HasWifi = mod.HasWifi
	r.HasLaundry = mod.HasLaundry
	r.CheckInPolicy = mod.CheckInPolicy
	r.CheckOutPolicy = mod.CheckOutPolicy
	r.CancellationPolicy = mod.CancellationPolicy
	r.PetPolicy = mod.PetPolicy
	r.SmokingPolicy = mod.SmokingPolicy
	r.Rating = mod.Rating
	r.TotalRooms = mod.TotalRooms
	r.AvailableRooms = mod.AvailableRooms
	r.OccupancyRate = mod.OccupancyRate
	r.IsActive = mod.IsActive
	r.ManagerID = mod.ManagerID
	r.Metadata.FromModel(mod.Metadata)
}

// WithInventory overlays a freshly computed room inventory onto the response.
func (r *LodgeResponse) WithInventory(inventory model.Inventory) {
	r.TotalRooms = inventory.TotalRooms
	r.AvailableRooms = inventory.AvailableRooms
	r.OccupancyRate = inventory.OccupancyRate
	r.ByStatus = inventory.ByStatus
}

type GetLodgesResponse struct {
	Lodges    []LodgeResponse `json:"lodges"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetLodgesResponse) FromModels(models []model.Lodge, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Lodges = make([]LodgeResponse, len(models))
	for i, mod := range models {
		r.Lodges[i].FromModel(mod)
	}
}
