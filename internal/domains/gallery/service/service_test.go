package service_test

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodgehub/config"
	"lodgehub/infras/otel/mocks"
	s3Mocks "lodgehub/infras/s3/mocks"
	galleryMocks "lodgehub/internal/domains/gallery/mocks"
	"lodgehub/internal/domains/gallery/model"
	"lodgehub/internal/domains/gallery/model/dto"
	"lodgehub/internal/domains/gallery/service"
	lodgeMocks "lodgehub/internal/domains/lodge/mocks"
	cacheMocks "lodgehub/shared/cache/mocks"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
)

type serviceMocks struct {
	repo      *galleryMocks.MockGallery
	lodgeRepo *lodgeMocks.MockLodge
	cache     *cacheMocks.MockRedisCache
	s3        *s3Mocks.MockS3
}

func newService(t *testing.T) (service.Gallery, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:      galleryMocks.NewMockGallery(ctrl),
		lodgeRepo: lodgeMocks.NewMockLodge(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		s3:        s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "lodgehub-media"

	// Cache writes and invalidations run on detached goroutines.
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.repo, m.lodgeRepo, cfg, m.cache, mocks.NewOtel(), m.s3)

	return svc, m
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

	return ctx
}

func receptionistCtx(lodges ...string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-id")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleReceptionist)
	ctx = context.WithValue(ctx, constant.ContextKeyAssignedLodges, lodges)

	return ctx
}

func uploadRequest() dto.UploadImageRequest {
	return dto.UploadImageRequest{
		LodgeID: "lodge-1",
		Caption: "Lobby at sunset",
		Image:   &multipart.FileHeader{Filename: "lobby.jpg"},
	}
}

func testImage() model.LodgeImage {
	return model.LodgeImage{
		ID:      "image-1",
		LodgeID: "lodge-1",
		URL:     "https://media.test/lodge_image/lobby.jpg",
		Caption: "Lobby at sunset",
	}
}

func TestGalleryService_Upload(t *testing.T) {
	t.Run("successful upload", func(t *testing.T) {
		svc, m := newService(t)

		m.lodgeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.s3.EXPECT().
			UploadFile(gomock.Any(), "lodgehub-media", model.EntityName, gomock.Any(), gomock.Any(), "lobby.jpg").
			Return("https://media.test/lodge_image/lobby.jpg", nil)
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, image model.LodgeImage) error {
				assert.Equal(t, "lodge-1", image.LodgeID)
				assert.Equal(t, "https://media.test/lodge_image/lobby.jpg", image.URL)
				assert.Equal(t, "admin-id", image.CreatedBy)
				assert.False(t, image.IsCover)

				return nil
			})

		res, err := svc.Upload(adminCtx(), uploadRequest())

		require.NoError(t, err)
		assert.Equal(t, "Lobby at sunset", res.Caption)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("cover upload demotes the previous cover", func(t *testing.T) {
		svc, m := newService(t)

		req := uploadRequest()
		req.IsCover = true

		m.lodgeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.s3.EXPECT().
			UploadFile(gomock.Any(), "lodgehub-media", model.EntityName, gomock.Any(), gomock.Any(), "lobby.jpg").
			Return("https://media.test/lodge_image/lobby.jpg", nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldIsCover])

				return nil
			})
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, image model.LodgeImage) error {
				assert.True(t, image.IsCover)

				return nil
			})

		_, err := svc.Upload(adminCtx(), req)

		require.NoError(t, err)
	})

	t.Run("unknown lodge rejected", func(t *testing.T) {
		svc, m := newService(t)

		m.lodgeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Upload(adminCtx(), uploadRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "lodge does not exist")
	})

	t.Run("staff cannot upload outside assigned lodges", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Upload(receptionistCtx("lodge-2"), uploadRequest())

		require.Error(t, err)
	})
}

func TestGalleryService_GetAll(t *testing.T) {
	t.Run("lists images sorted by sort order", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.LodgeImage, error) {
				assert.Equal(t, model.FieldSortOrder, params.SortBy)
				assert.Zero(t, params.Limit)

				return []model.LodgeImage{testImage()}, nil
			})

		res, err := svc.GetAll(adminCtx(), "lodge-1")

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, "image-1", res.Images[0].ID)
	})

	t.Run("staff scoped to assigned lodges", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.GetAll(receptionistCtx("lodge-2"), "lodge-1")

		require.Error(t, err)
	})
}

func TestGalleryService_Update(t *testing.T) {
	t.Run("caption update", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testImage(), nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "New caption", fields[model.FieldCaption])
				assert.NotContains(t, fields, model.FieldIsCover)

				return nil
			})

		err := svc.Update(adminCtx(), dto.UpdateImageRequest{Caption: "New caption"}, "image-1")

		require.NoError(t, err)
	})

	t.Run("promoting to cover demotes the old one", func(t *testing.T) {
		svc, m := newService(t)

		cover := true

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testImage(), nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldIsCover])

				return nil
			})
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, true, fields[model.FieldIsCover])

				return nil
			})

		err := svc.Update(adminCtx(), dto.UpdateImageRequest{IsCover: &cover}, "image-1")

		require.NoError(t, err)
	})

	t.Run("image not found", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.LodgeImage{}, nil)

		err := svc.Update(adminCtx(), dto.UpdateImageRequest{Caption: "x"}, "missing")

		require.Error(t, err)
	})
}

func TestGalleryService_Delete(t *testing.T) {
	t.Run("successful delete drops the S3 object", func(t *testing.T) {
		svc, m := newService(t)

		image := testImage()

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(image, nil)
		m.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		// S3 cleanup runs on a detached goroutine.
		m.s3.EXPECT().GetObjectNameFromURL("lodgehub-media", image.URL).Return("lobby.jpg").AnyTimes()
		m.s3.EXPECT().DeleteFile(gomock.Any(), "lodgehub-media", model.EntityName, "lobby.jpg").Return(nil).AnyTimes()

		err := svc.Delete(adminCtx(), "image-1")

		require.NoError(t, err)
	})

	t.Run("staff cannot delete outside assigned lodges", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testImage(), nil)

		err := svc.Delete(receptionistCtx("lodge-2"), "image-1")

		require.Error(t, err)
	})
}
