package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"lodgehub/internal/domains/gallery/model"
	gModel "lodgehub/shared/model"
	"lodgehub/shared/timezone"
)

type UploadImageRequest struct {
	LodgeID   string                `json:"lodge_id"   validate:"required,uuid"`
	RoomID    *string               `json:"room_id"    validate:"omitempty,uuid"`
	Caption   string                `json:"caption"    validate:"omitempty,max=200"`
	SortOrder int                   `json:"sort_order" validate:"omitempty,gte=0"`
	IsCover   bool                  `json:"is_cover"`
	Image     *multipart.FileHeader `json:"image"      swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	ImageFile multipart.File        `json:"-"`
}

func (r *UploadImageRequest) ToModel(url, user string) model.LodgeImage {
	return model.LodgeImage{
		ID:        uuid.NewString(),
		LodgeID:   r.LodgeID,
		RoomID:    r.RoomID,
		URL:       url,
		Caption:   r.Caption,
		SortOrder: r.SortOrder,
		IsCover:   r.IsCover,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateImageRequest struct {
	Caption   string `db:"caption"    json:"caption"    validate:"omitempty,max=200"`
	SortOrder int    `db:"sort_order" json:"sort_order" validate:"omitempty,gte=0"`
	IsCover   *bool  `json:"is_cover"`
}

type ImageResponse struct {
	ID        string  `json:"id"`
	LodgeID   string  `json:"lodge_id"`
	RoomID    *string `json:"room_id,omitempty"`
	URL       string  `json:"url"`
	Caption   string  `json:"caption"`
	SortOrder int     `json:"sort_order"`
	IsCover   bool    `json:"is_cover"`
}

func (r *ImageResponse) FromModel(image model.LodgeImage) {
	r.ID = image.ID
	r.LodgeID = image.LodgeID
	r.RoomID = image.RoomID
	r.URL = image.URL
	r.Caption = image.Caption
	r.SortOrder = image.SortOrder
	r.IsCover = image.IsCover
}

type GetImagesResponse struct {
	Images []ImageResponse `json:"images"`
	Total  int             `json:"total"`
}

func (r *GetImagesResponse) FromModels(models []model.LodgeImage) {
	r.Total = len(models)

	r.Images = make([]ImageResponse, len(models))
	for i, m := range models {
		r.Images[i].FromModel(m)
	}
}
