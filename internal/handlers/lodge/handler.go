package lodge

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lodgehub/infras/otel"
	"lodgehub/internal/domains/lodge/model"
	"lodgehub/internal/domains/lodge/model/dto"
	"lodgehub/internal/domains/lodge/service"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
	"lodgehub/shared/validator"
	"lodgehub/transport/http/response"
)

type Handler struct {
	service service.Lodge
	otel    otel.Otel
}

func New(service service.Lodge, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the lodge endpoints on the /lodges route group.
func (handler *Handler) Router(router chi.Router) {
	router.Post("/", handler.CreateLodge)
	router.Get("/", handler.GetLodges)
	router.Get("/{id}", handler.GetLodgeByID)
	router.Patch("/{id}", handler.UpdateLodge)
	router.Delete("/{id}", handler.DeleteLodge)
}

// CreateLodge creates a new lodge.
// @Summary Create a lodge
// @Description Create a lodge with a unique name.
// @Tags Lodge
// @Accept json
// @Produce json
// @Param request body dto.CreateLodgeRequest true "Create Lodge Request"
// @Success 201 {object} response.Data[dto.LodgeResponse] "Created lodge"
// @Failure 409 {object} response.Error "Lodge name already taken"
// @Failure 500 {object} response.Error
// @Router /v1/lodges [post]
// @Security BearerAuth
func (handler *Handler) CreateLodge(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLodge")
	defer scope.End()

	req := dto.CreateLodgeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create lodge")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lodge created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetLodges lists lodges the caller may see.
// @Summary Get all lodges
// @Description List lodges, scoped to the caller's assignments for non-global roles.
// @Tags Lodge
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Search by name"
// @Param city query string false "Filter by city"
// @Success 200 {object} response.Data[dto.GetLodgesResponse] "List of lodges"
// @Failure 500 {object} response.Error
// @Router /v1/lodges [get]
// @Security BearerAuth
func (handler *Handler) GetLodges(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLodges")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if city := r.URL.Query().Get(model.FieldCity); city != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCity,
			Operator: gDto.FilterOperatorEq,
			Value:    city,
			Table:    model.TableName,
		})
	}

	lodges, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lodges")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, lodges)
}

// GetLodgeByID retrieves a lodge with its live room inventory.
// @Summary Get a lodge by ID
// @Description Retrieve a lodge with room counts computed from its rooms.
// @Tags Lodge
// @Produce json
// @Param id path string true "Lodge ID"
// @Success 200 {object} response.Data[dto.LodgeResponse] "Lodge details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodges/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetLodgeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLodgeByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	lodge, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lodge by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, lodge)
}

// UpdateLodge updates an existing lodge.
// @Summary Update a lodge
// @Description Update the details of an existing lodge.
// @Tags Lodge
// @Accept json
// @Produce json
// @Param id path string true "Lodge ID"
// @Param request body dto.UpdateLodgeRequest true "Update Lodge Request"
// @Success 200 {object} response.Message "Lodge updated successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodges/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateLodge(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateLodge")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateLodgeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update lodge")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lodge updated successfully")

	response.WithMessage(w, http.StatusOK, "Lodge updated successfully")
}

// DeleteLodge deletes a lodge.
// @Summary Delete a lodge
// @Description Delete a lodge by its unique identifier.
// @Tags Lodge
// @Produce json
// @Param id path string true "Lodge ID"
// @Success 200 {object} response.Message "Lodge deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodges/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteLodge(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLodge")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete lodge")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lodge deleted successfully")

	response.WithMessage(w, http.StatusOK, "Lodge deleted successfully")
}
