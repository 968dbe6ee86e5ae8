package gallery

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lodgehub/infras/otel"
	"lodgehub/internal/domains/gallery/model/dto"
	"lodgehub/internal/domains/gallery/service"
	"lodgehub/shared/constant"
	"lodgehub/shared/validator"
	"lodgehub/transport/http/response"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the image endpoints on the /lodges route group.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/{id}/images", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetImages)
		routerGroup.Post("/", handler.UploadImage)
		routerGroup.Patch("/{imageID}", handler.UpdateImage)
		routerGroup.Delete("/{imageID}", handler.DeleteImage)
	})
}

// GetImages lists a lodge's gallery.
// @Summary Get lodge images
// @Description List a lodge's images ordered by sort order.
// @Tags Gallery
// @Produce json
// @Param id path string true "Lodge ID"
// @Success 200 {object} response.Data[dto.GetImagesResponse] "List of images"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodges/{id}/images [get]
// @Security BearerAuth
func (handler *Handler) GetImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImages")
	defer scope.End()

	lodgeID := chi.URLParam(r, constant.RequestParamID)

	images, err := handler.service.GetAll(ctx, lodgeID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lodge images")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, images)
}

// UploadImage uploads an image into a lodge's gallery.
// @Summary Upload a lodge image
// @Description Upload an image file to S3 and attach it to the lodge.
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Lodge ID"
// @Param file formData file true "Image file to upload"
// @Param caption formData string false "Caption"
// @Param room_id formData string false "Room to pin the image to"
// @Param sort_order formData int false "Sort order"
// @Param is_cover formData bool false "Use as the lodge cover"
// @Success 201 {object} response.Data[dto.ImageResponse] "Uploaded image"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodges/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		LodgeID:   chi.URLParam(r, constant.RequestParamID),
		Caption:   r.FormValue("caption"),
		Image:     fileHeader,
		ImageFile: file,
	}

	if roomID := r.FormValue("room_id"); roomID != "" {
		req.RoomID = &roomID
	}

	if sortOrder := r.FormValue("sort_order"); sortOrder != "" {
		if parsed, err := strconv.Atoi(sortOrder); err == nil {
			req.SortOrder = parsed
		}
	}

	if isCover := r.FormValue("is_cover"); isCover != "" {
		parsed, _ := strconv.ParseBool(isCover)
		req.IsCover = parsed
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate upload request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload lodge image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lodge image uploaded successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdateImage updates an image's caption, order or cover flag.
// @Summary Update a lodge image
// @Description Update an image's caption, sort order or cover flag.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Lodge ID"
// @Param imageID path string true "Image ID"
// @Param request body dto.UpdateImageRequest true "Update Image Request"
// @Success 200 {object} response.Message "Image updated successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodges/{id}/images/{imageID} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateImage")
	defer scope.End()

	imageID := chi.URLParam(r, constant.RequestParamImageID)

	req := dto.UpdateImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, imageID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update lodge image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lodge image updated successfully")

	response.WithMessage(w, http.StatusOK, "Image updated successfully")
}

// DeleteImage removes an image from a lodge's gallery.
// @Summary Delete a lodge image
// @Description Delete an image record and its S3 object.
// @Tags Gallery
// @Produce json
// @Param id path string true "Lodge ID"
// @Param imageID path string true "Image ID"
// @Success 200 {object} response.Message "Image deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodges/{id}/images/{imageID} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	imageID := chi.URLParam(r, constant.RequestParamImageID)

	if err := handler.service.Delete(ctx, imageID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete lodge image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lodge image deleted successfully")

	response.WithMessage(w, http.StatusOK, "Image deleted successfully")
}
