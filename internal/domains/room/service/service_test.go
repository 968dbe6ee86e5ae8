package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodgehub/config"
	"lodgehub/infras/otel/mocks"
	lodgeMocks "lodgehub/internal/domains/lodge/mocks"
	lodgeService "lodgehub/internal/domains/lodge/service"
	roomMocks "lodgehub/internal/domains/room/mocks"
	"lodgehub/internal/domains/room/model"
	"lodgehub/internal/domains/room/model/dto"
	"lodgehub/internal/domains/room/service"
	cacheMocks "lodgehub/shared/cache/mocks"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
)

type serviceMocks struct {
	repo      *roomMocks.MockRoom
	lodgeRepo *lodgeMocks.MockLodge
	cache     *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Room, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:      roomMocks.NewMockRoom(ctrl),
		lodgeRepo: lodgeMocks.NewMockLodge(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	// Inventory recomputes run on detached goroutines through a real lodge
	// service with its own room repository.
	inventoryRoomRepo := roomMocks.NewMockRoom(ctrl)
	inventoryRoomRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Room{}, nil).
		AnyTimes()
	m.lodgeRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	lodgeSvc := lodgeService.New(m.lodgeRepo, inventoryRoomRepo, cfg, m.cache, mocks.NewOtel())

	svc := service.New(m.repo, m.lodgeRepo, lodgeSvc, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

	return ctx
}

func receptionistCtx(lodges ...string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "reception-id")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleReceptionist)
	ctx = context.WithValue(ctx, constant.ContextKeyAssignedLodges, lodges)

	return ctx
}

func validCreateRequest() dto.CreateRoomRequest {
	return dto.CreateRoomRequest{
		LodgeID:     "4e8b4a5e-9c2f-4b7d-8a6e-1f3c5d7e9a0b",
		Number:      "101",
		Type:        constant.RoomTypeDeluxe,
		BedsQueen:   1,
		PriceNormal: "100",
	}
}

func testRoom() model.Room {
	return model.Room{
		ID:          "room-1",
		LodgeID:     "4e8b4a5e-9c2f-4b7d-8a6e-1f3c5d7e9a0b",
		Number:      "101",
		Type:        constant.RoomTypeDeluxe,
		Status:      constant.RoomStatusAvailable,
		PriceNormal: decimal.NewFromInt(100),
		IsActive:    true,
	}
}

func TestRoomService_Create(t *testing.T) {
	t.Run("successful creation with defaults", func(t *testing.T) {
		svc, m := newService(t)

		m.lodgeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) error {
				assert.Equal(t, constant.RoomStatusAvailable, room.Status)
				assert.Equal(t, 2, room.Capacity) // one queen bed sleeps two
				assert.True(t, room.PriceBusy.Equal(decimal.NewFromInt(100)), "busy price falls back to normal")
				assert.True(t, room.IsActive)

				return nil
			})

		res, err := svc.Create(adminCtx(), validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, "101", res.Number)
	})

	t.Run("duplicate number within lodge rejected", func(t *testing.T) {
		svc, m := newService(t)

		m.lodgeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Create(adminCtx(), validCreateRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists in this lodge")
	})

	t.Run("unknown lodge rejected", func(t *testing.T) {
		svc, m := newService(t)

		m.lodgeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Create(adminCtx(), validCreateRequest())

		require.Error(t, err)
	})

	t.Run("lodge out of scope forbidden", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Create(receptionistCtx("another-lodge"), validCreateRequest())

		require.Error(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)

		res, err := svc.Get(adminCtx(), "room-1")

		require.NoError(t, err)
		assert.Equal(t, "room-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := svc.Get(adminCtx(), "missing")

		require.Error(t, err)
	})
}

func TestRoomService_Update(t *testing.T) {
	t.Run("renumber checks for duplicates", func(t *testing.T) {
		svc, m := newService(t)

		newNumber := "102"

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, newNumber, fields[model.FieldNumber])

				return nil
			})

		err := svc.Update(adminCtx(), dto.UpdateRoomRequest{Number: &newNumber}, "room-1")

		require.NoError(t, err)
	})

	t.Run("renumber to taken number rejected", func(t *testing.T) {
		svc, m := newService(t)

		newNumber := "102"

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Update(adminCtx(), dto.UpdateRoomRequest{Number: &newNumber}, "room-1")

		require.Error(t, err)
	})

	t.Run("invalid price rejected", func(t *testing.T) {
		svc, m := newService(t)

		badPrice := "abc"

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)

		err := svc.Update(adminCtx(), dto.UpdateRoomRequest{PriceNormal: &badPrice}, "room-1")

		require.Error(t, err)
	})

	t.Run("room in unassigned lodge forbidden", func(t *testing.T) {
		svc, m := newService(t)

		name := "Seaview"

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)

		err := svc.Update(receptionistCtx("another-lodge"), dto.UpdateRoomRequest{Name: &name}, "room-1")

		require.Error(t, err)
	})
}

func TestRoomService_UpdateStatus(t *testing.T) {
	t.Run("status change persists", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.RoomStatusMaintenance, fields[model.FieldStatus])
				assert.NotContains(t, fields, model.FieldLastCleaned)

				return nil
			})

		err := svc.UpdateStatus(adminCtx(), "room-1", dto.UpdateRoomStatusRequest{Status: constant.RoomStatusMaintenance})

		require.NoError(t, err)
	})

	t.Run("finishing cleaning stamps last cleaned", func(t *testing.T) {
		svc, m := newService(t)

		room := testRoom()
		room.Status = constant.RoomStatusCleaning

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields, model.FieldLastCleaned)

				return nil
			})

		err := svc.UpdateStatus(adminCtx(), "room-1", dto.UpdateRoomStatusRequest{Status: constant.RoomStatusAvailable})

		require.NoError(t, err)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)

		err := svc.UpdateStatus(adminCtx(), "room-1", dto.UpdateRoomStatusRequest{Status: constant.RoomStatusAvailable})

		require.NoError(t, err)
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		m.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(adminCtx(), "room-1")

		require.NoError(t, err)
	})

	t.Run("missing room", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := svc.Delete(adminCtx(), "missing")

		require.Error(t, err)
	})
}
