package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodgehub/config"
	"lodgehub/infras/otel/mocks"
	lodgeMocks "lodgehub/internal/domains/lodge/mocks"
	"lodgehub/internal/domains/lodge/model"
	"lodgehub/internal/domains/lodge/model/dto"
	"lodgehub/internal/domains/lodge/service"
	roomModel "lodgehub/internal/domains/room/model"
	roomMocks "lodgehub/internal/domains/room/mocks"
	cacheMocks "lodgehub/shared/cache/mocks"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
)

type serviceMocks struct {
	repo     *lodgeMocks.MockLodge
	roomRepo *roomMocks.MockRoom
	cache    *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Lodge, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:     lodgeMocks.NewMockLodge(ctrl),
		roomRepo: roomMocks.NewMockRoom(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.repo, m.roomRepo, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

	return ctx
}

func staffCtx(lodges ...string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-id")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleCleaner)
	ctx = context.WithValue(ctx, constant.ContextKeyAssignedLodges, lodges)

	return ctx
}

func testLodge() model.Lodge {
	return model.Lodge{
		ID:       "lodge-1",
		Name:     "Mountain Lodge",
		IsActive: true,
	}
}

func TestLodgeService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, lodge model.Lodge) error {
				assert.Equal(t, "Mountain Lodge", lodge.Name)
				assert.True(t, lodge.IsActive)
				assert.NotEmpty(t, lodge.ID)
				assert.Equal(t, "admin-id", lodge.CreatedBy)

				return nil
			})

		res, err := svc.Create(adminCtx(), dto.CreateLodgeRequest{Name: "Mountain Lodge"})

		require.NoError(t, err)
		assert.Equal(t, "Mountain Lodge", res.Name)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Create(adminCtx(), dto.CreateLodgeRequest{Name: "Mountain Lodge"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("repository error", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := svc.Create(adminCtx(), dto.CreateLodgeRequest{Name: "Mountain Lodge"})

		require.Error(t, err)
	})
}

func TestLodgeService_GetAll(t *testing.T) {
	t.Run("admin sees everything", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)
		m.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.Empty(t, filter.Filters)

				return 1, nil
			})
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Lodge{testLodge()}, nil)

		res, err := svc.GetAll(adminCtx(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		require.NoError(t, err)
		assert.Len(t, res.Lodges, 1)
	})

	t.Run("staff only see assigned lodges", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)
		m.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.NotEmpty(t, filter.Filters)

				return 1, nil
			})
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Lodge{testLodge()}, nil)

		_, err := svc.GetAll(staffCtx("lodge-1"), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		require.NoError(t, err)
	})
}

func TestLodgeService_Get(t *testing.T) {
	t.Run("inventory derived from rooms", func(t *testing.T) {
		svc, m := newService(t)

		rooms := []roomModel.Room{
			{ID: "room-1", Status: constant.RoomStatusAvailable},
			{ID: "room-2", Status: constant.RoomStatusOccupied},
			{ID: "room-3", Status: constant.RoomStatusCleaning},
			{ID: "room-4", Status: constant.RoomStatusAvailable},
		}

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testLodge(), nil)
		m.roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil)

		res, err := svc.Get(adminCtx(), "lodge-1")

		require.NoError(t, err)
		assert.Equal(t, 4, res.TotalRooms)
		assert.Equal(t, 2, res.AvailableRooms)
		assert.InDelta(t, 50.0, res.OccupancyRate, 0.001)
		assert.Equal(t, 1, res.ByStatus[constant.RoomStatusCleaning])
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Lodge{}, nil)

		_, err := svc.Get(adminCtx(), "missing")

		require.Error(t, err)
	})
}

func TestLodgeService_Update(t *testing.T) {
	t.Run("rename checks for duplicates", func(t *testing.T) {
		svc, m := newService(t)

		newName := "Lakeside Lodge"

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testLodge(), nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, newName, fields[model.FieldName])

				return nil
			})

		err := svc.Update(adminCtx(), dto.UpdateLodgeRequest{Name: &newName}, "lodge-1")

		require.NoError(t, err)
	})

	t.Run("rename to taken name rejected", func(t *testing.T) {
		svc, m := newService(t)

		newName := "Lakeside Lodge"

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testLodge(), nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Update(adminCtx(), dto.UpdateLodgeRequest{Name: &newName}, "lodge-1")

		require.Error(t, err)
	})

	t.Run("unset fields left untouched", func(t *testing.T) {
		svc, m := newService(t)

		active := false

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testLodge(), nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldIsActive])
				assert.NotContains(t, fields, model.FieldName)

				return nil
			})

		err := svc.Update(adminCtx(), dto.UpdateLodgeRequest{IsActive: &active}, "lodge-1")

		require.NoError(t, err)
	})
}

func TestLodgeService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testLodge(), nil)
		m.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(adminCtx(), "lodge-1")

		require.NoError(t, err)
	})

	t.Run("missing lodge", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Lodge{}, nil)

		err := svc.Delete(adminCtx(), "missing")

		require.Error(t, err)
	})
}

func TestLodgeService_RecomputeInventory(t *testing.T) {
	t.Run("stores derived counters", func(t *testing.T) {
		svc, m := newService(t)

		rooms := []roomModel.Room{
			{ID: "room-1", Status: constant.RoomStatusAvailable},
			{ID: "room-2", Status: constant.RoomStatusOccupied},
		}

		m.roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 2, fields[model.FieldTotalRooms])
				assert.Equal(t, 1, fields[model.FieldAvailableRooms])
				assert.InDelta(t, 50.0, fields[model.FieldOccupancyRate], 0.001)

				return nil
			})

		inventory, err := svc.RecomputeInventory(adminCtx(), "lodge-1")

		require.NoError(t, err)
		assert.Equal(t, 2, inventory.TotalRooms)
	})

	t.Run("empty lodge has zero occupancy", func(t *testing.T) {
		svc, m := newService(t)

		m.roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		inventory, err := svc.RecomputeInventory(adminCtx(), "lodge-1")

		require.NoError(t, err)
		assert.Zero(t, inventory.TotalRooms)
		assert.Zero(t, inventory.OccupancyRate)
	})
}
