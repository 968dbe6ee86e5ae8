package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lodgehub/config"
	"lodgehub/infras/otel"
	lodgeModel "lodgehub/internal/domains/lodge/model"
	lodgeRepo "lodgehub/internal/domains/lodge/repository"
	lodgeService "lodgehub/internal/domains/lodge/service"
	"lodgehub/internal/domains/room/model"
	"lodgehub/internal/domains/room/model/dto"
	"lodgehub/internal/domains/room/repository"
	"lodgehub/permissions"
	"lodgehub/shared"
	"lodgehub/shared/cache"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
	"lodgehub/shared/failure"
	"lodgehub/shared/timezone"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	UpdateStatus(ctx context.Context, id string, req dto.UpdateRoomStatusRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Room
	lodgeRepo lodgeRepo.Lodge
	lodgeSvc  lodgeService.Lodge
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Room, lodgeRepo lodgeRepo.Lodge, lodgeSvc lodgeService.Lodge, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:      repo,
		lodgeRepo: lodgeRepo,
		lodgeSvc:  lodgeSvc,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	assignedLodges, _ := ctx.Value(constant.ContextKeyAssignedLodges).([]string)

	if !permissions.CanAccessLodge(role, assignedLodges, req.LodgeID) {
		return res, failure.ResourceRestrictedError // nolint:wrapcheck
	}

	room, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse room request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid room request: %v", err)) // nolint:wrapcheck
	}

	lodgeExists, err := s.lodgeRepo.Exist(ctx, shared.FilterByID(req.LodgeID, lodgeModel.FieldID, lodgeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check lodge for room")

		return res, fmt.Errorf("failed to check lodge for room: %w", err)
	}

	if !lodgeExists {
		return res, failure.BadRequestFromString("lodge does not exist") // nolint:wrapcheck
	}

	taken, err := s.repo.Exist(ctx, numberFilter(req.LodgeID, req.Number))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room number")

		return res, fmt.Errorf("failed to check room number: %w", err)
	}

	if taken {
		return res, failure.Conflict("Room number already exists in this lodge") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidateListCaches(ctx)
	s.recomputeLodge(ctx, room.LodgeID)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.getRoom(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.getRoom(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorizeLodge(ctx, room.LodgeID); err != nil {
		return err
	}

	if req.Number != nil && *req.Number != room.Number {
		taken, existErr := s.repo.Exist(ctx, numberFilter(room.LodgeID, *req.Number))
		if existErr != nil {
			log.Error().Err(existErr).Msg("failed to check room number")

			return fmt.Errorf("failed to check room number: %w", existErr)
		}

		if taken {
			return failure.Conflict("Room number already exists in this lodge") // nolint:wrapcheck
		}
	}

	fields, err := req.Fields(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse room update")

		return failure.BadRequestFromString(fmt.Sprintf("invalid room update: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidateRoomCaches(ctx, id)

	if req.IsActive != nil {
		s.recomputeLodge(ctx, room.LodgeID)
	}

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateRoomStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.getRoom(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorizeLodge(ctx, room.LodgeID); err != nil {
		return err
	}

	if room.Status == req.Status {
		return nil
	}

	fields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	// A room coming out of cleaning has just been cleaned.
	if room.Status == constant.RoomStatusCleaning && req.Status == constant.RoomStatusAvailable {
		fields[model.FieldLastCleaned] = timezone.Now()
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room status")

		return fmt.Errorf("failed to update room status: %w", err)
	}

	s.invalidateRoomCaches(ctx, id)
	s.recomputeLodge(ctx, room.LodgeID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.getRoom(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorizeLodge(ctx, room.LodgeID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidateRoomCaches(ctx, id)
	s.recomputeLodge(ctx, room.LodgeID)

	return nil
}

func (s *serviceImpl) getRoom(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) authorizeLodge(ctx context.Context, lodgeID string) error {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	assignedLodges, _ := ctx.Value(constant.ContextKeyAssignedLodges).([]string)

	if !permissions.CanAccessLodge(role, assignedLodges, lodgeID) {
		return failure.ResourceRestrictedError // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) recomputeLodge(ctx context.Context, lodgeID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if _, err := s.lodgeSvc.RecomputeInventory(c, lodgeID); err != nil {
			log.Error().Err(err).Str("lodge_id", lodgeID).Msg("failed to recompute lodge inventory")
		}
	}()
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}

func (s *serviceImpl) invalidateRoomCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}

func numberFilter(lodgeID, number string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldLodgeID,
				Operator: gDto.FilterOperatorEq,
				Value:    lodgeID,
			},
			gDto.Filter{
				ArgName:  "room_number",
				Table:    model.TableName,
				Field:    model.FieldNumber,
				Operator: gDto.FilterOperatorEq,
				Value:    number,
			},
		},
	}
}
