package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lodgehub/config"
	"lodgehub/infras/otel"
	"lodgehub/infras/s3"
	"lodgehub/internal/domains/gallery/model"
	"lodgehub/internal/domains/gallery/model/dto"
	"lodgehub/internal/domains/gallery/repository"
	lodgeModel "lodgehub/internal/domains/lodge/model"
	lodgeRepo "lodgehub/internal/domains/lodge/repository"
	"lodgehub/permissions"
	"lodgehub/shared"
	"lodgehub/shared/cache"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
	"lodgehub/shared/failure"
	"lodgehub/shared/timezone"
)

const cacheLodgeImages = "gallery:lodge"

type Gallery interface {
	Upload(ctx context.Context, req dto.UploadImageRequest) (dto.ImageResponse, error)
	GetAll(ctx context.Context, lodgeID string) (dto.GetImagesResponse, error)
	Update(ctx context.Context, req dto.UpdateImageRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Gallery
	lodgeRepo lodgeRepo.Lodge
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
}

func New(repo repository.Gallery, lodgeRepo lodgeRepo.Lodge, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Gallery {
	return &serviceImpl{
		repo:      repo,
		lodgeRepo: lodgeRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
	}
}

// Upload stores the image in S3 and records it against the lodge.
func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadImageRequest) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.authorizeLodge(ctx, req.LodgeID); err != nil {
		return res, err
	}

	lodgeExists, err := s.lodgeRepo.Exist(ctx, shared.FilterByID(req.LodgeID, lodgeModel.FieldID, lodgeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check lodge for image")

		return res, fmt.Errorf("failed to check lodge for image: %w", err)
	}

	if !lodgeExists {
		return res, failure.BadRequestFromString("lodge does not exist") // nolint:wrapcheck
	}

	url, err := s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, req.ImageFile, req.Image, req.Image.Filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return res, fmt.Errorf("failed to upload image to S3: %w", err)
	}

	image := req.ToModel(url, user)

	if image.IsCover {
		if err = s.clearCover(ctx, image.LodgeID, user); err != nil {
			return res, err
		}
	}

	if err = s.repo.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to save lodge image")

		return res, fmt.Errorf("failed to save lodge image: %w", err)
	}

	s.invalidateLodgeCache(ctx, image.LodgeID)

	res.FromModel(image)

	return res, nil
}

// GetAll lists a lodge's images ordered by their sort order.
func (s *serviceImpl) GetAll(ctx context.Context, lodgeID string) (res dto.GetImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.authorizeLodge(ctx, lodgeID); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheLodgeImages, lodgeID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for lodge images")

		return res, nil
	}

	images, err := s.repo.GetAll(ctx, imageListParams(), lodgeFilter(lodgeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lodge images")

		return res, fmt.Errorf("failed to get lodge images: %w", err)
	}

	res.FromModels(images)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save lodge images to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateImageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	image, err := s.getImage(ctx, id)
	if err != nil {
		return err
	}

	fields := shared.TransformFields(req, user)

	if req.IsCover != nil {
		if *req.IsCover && !image.IsCover {
			if err = s.clearCover(ctx, image.LodgeID, user); err != nil {
				return err
			}
		}

		fields[model.FieldIsCover] = *req.IsCover
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update lodge image")

		return fmt.Errorf("failed to update lodge image: %w", err)
	}

	s.invalidateLodgeCache(ctx, image.LodgeID)

	return nil
}

// Delete removes the image record, then drops the S3 object in the background.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	image, err := s.getImage(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete lodge image")

		return fmt.Errorf("failed to delete lodge image: %w", err)
	}

	s.invalidateLodgeCache(ctx, image.LodgeID)

	go func() {
		c := context.WithoutCancel(ctx)

		bucketName := s.cfg.External.S3.BucketName

		objectName := s.s3.GetObjectNameFromURL(bucketName, image.URL)
		if objectName == constant.Empty {
			log.Warn().Str("url", image.URL).Msg("failed to extract object name from URL")

			return
		}

		if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete image from S3")
		}
	}()

	return nil
}

func (s *serviceImpl) getImage(ctx context.Context, id string) (image model.LodgeImage, err error) {
	image, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lodge image")

		return image, fmt.Errorf("failed to get lodge image: %w", err)
	}

	if image.ID == constant.Empty {
		return image, failure.NotFound("image not found") // nolint:wrapcheck
	}

	if err = s.authorizeLodge(ctx, image.LodgeID); err != nil {
		return image, err
	}

	return image, nil
}

func (s *serviceImpl) authorizeLodge(ctx context.Context, lodgeID string) error {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	assignedLodges, _ := ctx.Value(constant.ContextKeyAssignedLodges).([]string)

	if !permissions.CanAccessLodge(role, assignedLodges, lodgeID) {
		return failure.ResourceRestrictedError // nolint:wrapcheck
	}

	return nil
}

// clearCover demotes the lodge's current cover so the new one stays unique.
func (s *serviceImpl) clearCover(ctx context.Context, lodgeID, user string) error {
	fields := map[string]any{
		model.FieldIsCover:       false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, coverFilter(lodgeID)); err != nil {
		log.Error().Err(err).Msg("failed to clear lodge cover image")

		return fmt.Errorf("failed to clear lodge cover image: %w", err)
	}

	return nil
}

func (s *serviceImpl) invalidateLodgeCache(ctx context.Context, lodgeID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheLodgeImages, lodgeID)); err != nil {
			log.Error().Err(err).Msg("failed to delete lodge images cache")
		}
	}()
}

func imageListParams() gDto.QueryParams {
	return gDto.QueryParams{
		Page:    1,
		Limit:   0,
		SortBy:  model.FieldSortOrder,
		SortDir: "ASC",
	}
}

func lodgeFilter(lodgeID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldLodgeID,
				Value:    lodgeID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func coverFilter(lodgeID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldLodgeID,
				Value:    lodgeID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "is_cover",
				Field:    model.FieldIsCover,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
