package model

import "lodgehub/shared/model"

const (
	TableName  = "lodge_images"
	EntityName = "lodge_image"

	FieldID        = "id"
	FieldLodgeID   = "lodge_id"
	FieldRoomID    = "room_id"
	FieldURL       = "url"
	FieldCaption   = "caption"
	FieldSortOrder = "sort_order"
	FieldIsCover   = "is_cover"
)

// LodgeImage is a photo attached to a lodge, optionally pinned to one of its
// rooms. The cover image is unique per lodge.
type LodgeImage struct {
	ID        string  `db:"id"`
	LodgeID   string  `db:"lodge_id"`
	RoomID    *string `db:"room_id"`
	URL       string  `db:"url"`
	Caption   string  `db:"caption"`
	SortOrder int     `db:"sort_order"`
	IsCover   bool    `db:"is_cover"`
	model.Metadata
}
