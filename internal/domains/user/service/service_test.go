package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodgehub/config"
	"lodgehub/infras/otel/mocks"
	userMocks "lodgehub/internal/domains/user/mocks"
	"lodgehub/internal/domains/user/model"
	"lodgehub/internal/domains/user/model/dto"
	"lodgehub/internal/domains/user/service"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
)

func newService(t *testing.T) (service.Staff, *userMocks.MockUser) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := userMocks.NewMockUser(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	return svc, mockRepo
}

func actorCtx(userID, role string, lodges ...string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)
	ctx = context.WithValue(ctx, constant.ContextKeyAssignedLodges, lodges)

	return ctx
}

func receptionist(id string, lodges ...string) model.User {
	return model.User{
		ID:             id,
		FullName:       "Front Desk",
		Email:          id + "@lodgehub.test",
		Role:           constant.RoleReceptionist,
		AssignedLodges: lodges,
		IsActive:       true,
	}
}

func TestStaffService_GetAll(t *testing.T) {
	t.Run("admin sees everyone", func(t *testing.T) {
		svc, mockRepo := newService(t)

		staff := []model.User{
			receptionist("staff-1", "lodge-1"),
			receptionist("staff-2", "lodge-2"),
		}

		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(staff, nil)

		res, err := svc.GetAll(actorCtx("admin-id", constant.RoleAdmin), gDto.QueryParams{Limit: 20}, gDto.FilterGroup{})

		require.NoError(t, err)
		assert.Len(t, res.Staff, 2)
	})

	t.Run("supervisor only sees staff they manage", func(t *testing.T) {
		svc, mockRepo := newService(t)

		supervisorID := "supervisor-id"
		direct := receptionist("staff-3", "lodge-9")
		direct.SupervisorID = &supervisorID

		staff := []model.User{
			receptionist("staff-1", "lodge-1"), // shares a lodge
			receptionist("staff-2", "lodge-2"), // unrelated
			direct,                             // direct report in another lodge
		}

		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(staff, nil)

		res, err := svc.GetAll(actorCtx(supervisorID, constant.RoleSupervisor, "lodge-1"), gDto.QueryParams{Limit: 20}, gDto.FilterGroup{})

		require.NoError(t, err)
		require.Len(t, res.Staff, 2)
		assert.Equal(t, "staff-1", res.Staff[0].ID)
		assert.Equal(t, "staff-3", res.Staff[1].ID)
	})
}

func TestStaffService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(receptionist("staff-1", "lodge-1"), nil)

		res, err := svc.Get(actorCtx("admin-id", constant.RoleAdmin), "staff-1")

		require.NoError(t, err)
		assert.Equal(t, "staff-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(actorCtx("admin-id", constant.RoleAdmin), "missing")

		require.Error(t, err)
	})

	t.Run("supervisor blocked from unrelated staff", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(receptionist("staff-2", "lodge-2"), nil)

		_, err := svc.Get(actorCtx("supervisor-id", constant.RoleSupervisor, "lodge-1"), "staff-2")

		require.Error(t, err)
	})
}

func TestStaffService_Update(t *testing.T) {
	t.Run("manager reassigns lodges", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(receptionist("staff-1", "lodge-1"), nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields, model.FieldAssignedLodges)
				assert.Equal(t, "manager-id", fields[constant.FieldModifiedBy])

				return nil
			})

		err := svc.Update(actorCtx("manager-id", constant.RoleManager), dto.UpdateStaffRequest{AssignedLodges: []string{"lodge-2"}}, "staff-1")

		require.NoError(t, err)
	})

	t.Run("supervisor cannot change roles", func(t *testing.T) {
		svc, mockRepo := newService(t)

		newRole := constant.RoleManager

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(receptionist("staff-1", "lodge-1"), nil)

		err := svc.Update(actorCtx("supervisor-id", constant.RoleSupervisor, "lodge-1"), dto.UpdateStaffRequest{Role: &newRole}, "staff-1")

		require.Error(t, err)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		svc, mockRepo := newService(t)

		badRole := "owner"

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(receptionist("staff-1", "lodge-1"), nil)

		err := svc.Update(actorCtx("admin-id", constant.RoleAdmin), dto.UpdateStaffRequest{Role: &badRole}, "staff-1")

		require.Error(t, err)
	})
}

func TestStaffService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(receptionist("staff-1", "lodge-1"), nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(actorCtx("admin-id", constant.RoleAdmin), "staff-1")

		require.NoError(t, err)
	})

	t.Run("self deletion rejected", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.Delete(actorCtx("staff-1", constant.RoleAdmin), "staff-1")

		require.Error(t, err)
	})
}
