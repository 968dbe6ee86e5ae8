package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lodgehub/config"
	"lodgehub/infras/otel"
	"lodgehub/internal/domains/lodge/model"
	"lodgehub/internal/domains/lodge/model/dto"
	"lodgehub/internal/domains/lodge/repository"
	roomModel "lodgehub/internal/domains/room/model"
	roomRepo "lodgehub/internal/domains/room/repository"
	"lodgehub/permissions"
	"lodgehub/shared"
	"lodgehub/shared/cache"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
	"lodgehub/shared/failure"
	"lodgehub/shared/timezone"
)

const (
	cacheGetLodge    = "lodge:get"
	cacheGetAllLodge = "lodge:gets"
	cacheCountLodge  = "lodge:count"
)

type Lodge interface {
	Create(ctx context.Context, req dto.CreateLodgeRequest) (dto.LodgeResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLodgesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.LodgeResponse, error)
	Update(ctx context.Context, req dto.UpdateLodgeRequest, id string) error
	Delete(ctx context.Context, id string) error
	RecomputeInventory(ctx context.Context, lodgeID string) (model.Inventory, error)
}

type serviceImpl struct {
	repo     repository.Lodge
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Lodge, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Lodge {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLodgeRequest) (res dto.LodgeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	lodge := req.ToModel(user)

	exists, err := s.repo.Exist(ctx, nameFilter(lodge.Name))
	if err != nil {
		log.Error().Err(err).Msg("failed to check lodge name")

		return res, fmt.Errorf("failed to check lodge name: %w", err)
	}

	if exists {
		return res, failure.Conflict("A lodge with this name already exists") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, lodge); err != nil {
		log.Error().Err(err).Msg("failed to create lodge")

		return res, fmt.Errorf("failed to create lodge: %w", err)
	}

	s.invalidateListCaches(ctx)

	res.FromModel(lodge)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLodgesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = s.scopeFilter(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllLodge, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for lodges")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count lodges")

		return res, fmt.Errorf("failed to count lodges: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get lodges")

		return res, fmt.Errorf("failed to get lodges: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save lodges to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountLodge, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for lodge count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count lodges")

		return res, fmt.Errorf("failed to count lodges: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save lodge count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.LodgeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	lodge, err := s.getLodge(ctx, id)
	if err != nil {
		return res, err
	}

	rooms, err := s.roomRepo.GetAll(ctx, allRoomsParams(), roomsOfLodge(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms for lodge")

		return res, fmt.Errorf("failed to get rooms for lodge: %w", err)
	}

	res.FromModel(lodge)
	res.WithInventory(model.ComputeInventory(rooms))

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateLodgeRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	lodge, err := s.getLodge(ctx, id)
	if err != nil {
		return err
	}

	if req.Name != nil && *req.Name != lodge.Name {
		exists, existErr := s.repo.Exist(ctx, nameFilter(*req.Name))
		if existErr != nil {
			log.Error().Err(existErr).Msg("failed to check lodge name")

			return fmt.Errorf("failed to check lodge name: %w", existErr)
		}

		if exists {
			return failure.Conflict("A lodge with this name already exists") // nolint:wrapcheck
		}
	}

	if err = s.repo.Update(ctx, req.Fields(user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update lodge")

		return fmt.Errorf("failed to update lodge: %w", err)
	}

	s.invalidateLodgeCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getLodge(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete lodge")

		return fmt.Errorf("failed to delete lodge: %w", err)
	}

	s.invalidateLodgeCaches(ctx, id)

	return nil
}

// RecomputeInventory re-derives the lodge's stored room counters from its
// current room records. Called after room status changes and booking events.
func (s *serviceImpl) RecomputeInventory(ctx context.Context, lodgeID string) (inventory model.Inventory, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecomputeInventory")
	defer scope.End()
	defer scope.TraceIfError(err)

	rooms, err := s.roomRepo.GetAll(ctx, allRoomsParams(), roomsOfLodge(lodgeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms for inventory")

		return inventory, fmt.Errorf("failed to get rooms for inventory: %w", err)
	}

	inventory = model.ComputeInventory(rooms)

	fields := map[string]any{
		model.FieldTotalRooms:     inventory.TotalRooms,
		model.FieldAvailableRooms: inventory.AvailableRooms,
		model.FieldOccupancyRate:  inventory.OccupancyRate,
		constant.FieldModifiedAt:  timezone.Now(),
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(lodgeID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to store lodge inventory")

		return inventory, fmt.Errorf("failed to store lodge inventory: %w", err)
	}

	s.invalidateLodgeCaches(ctx, lodgeID)

	return inventory, nil
}

func (s *serviceImpl) getLodge(ctx context.Context, id string) (model.Lodge, error) {
	lodge, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lodge")

		return lodge, fmt.Errorf("failed to get lodge: %w", err)
	}

	if lodge.ID == constant.Empty {
		return lodge, failure.NotFound("lodge not found") // nolint:wrapcheck
	}

	return lodge, nil
}

// scopeFilter narrows lodge listings to the caller's assignments unless the
// caller has global access.
func (s *serviceImpl) scopeFilter(ctx context.Context, filter gDto.FilterGroup) gDto.FilterGroup {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if permissions.HasGlobalAccess(role) {
		return filter
	}

	assignedLodges, _ := ctx.Value(constant.ContextKeyAssignedLodges).([]string)

	if len(assignedLodges) == 0 {
		assignedLodges = []string{constant.Empty}
	}

	filter.Filters = append(filter.Filters, gDto.Filter{
		ArgName:  "scoped_id",
		Table:    model.TableName,
		Field:    model.FieldID,
		Operator: gDto.FilterOperatorIn,
		Value:    assignedLodges,
	})

	return filter
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllLodge)
		shared.InvalidateCaches(c, s.cache, cacheCountLodge)
	}()
}

func (s *serviceImpl) invalidateLodgeCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetLodge, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete lodge from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllLodge)
		shared.InvalidateCaches(c, s.cache, cacheCountLodge)
	}()
}

func nameFilter(name string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorEq,
				Value:    name,
			},
		},
	}
}

func roomsOfLodge(lodgeID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Table:    roomModel.TableName,
				Field:    roomModel.FieldLodgeID,
				Operator: gDto.FilterOperatorEq,
				Value:    lodgeID,
			},
		},
	}
}

// allRoomsParams disables paging so the inventory covers every room.
func allRoomsParams() gDto.QueryParams {
	return gDto.QueryParams{
		Page:    1,
		Limit:   0,
		SortBy:  roomModel.FieldNumber,
		SortDir: "ASC",
	}
}
