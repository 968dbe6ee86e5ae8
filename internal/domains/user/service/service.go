package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lodgehub/config"
	"lodgehub/infras/otel"
	"lodgehub/internal/domains/user/model"
	"lodgehub/internal/domains/user/model/dto"
	"lodgehub/internal/domains/user/repository"
	"lodgehub/permissions"
	"lodgehub/shared"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
	"lodgehub/shared/failure"
	"lodgehub/shared/timezone"
)

type Staff interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetStaffResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateStaffRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.User
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.User, cfg *config.Config, otel otel.Otel) Staff {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetStaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	actorID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	assignedLodges, _ := ctx.Value(constant.ContextKeyAssignedLodges).([]string)

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	// Supervisors only see staff they manage.
	if !permissions.HasGlobalAccess(role) {
		managed := make([]model.User, 0, len(models))

		for _, staff := range models {
			if permissions.CanManageStaff(role, actorID, assignedLodges, staff.AssignedLodges, staff.SupervisorOrEmpty()) {
				managed = append(managed, staff)
			}
		}

		models = managed
	}

	res.FromModels(models, len(models), req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	staff, err := s.getManagedStaff(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(staff)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateStaffRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	actorID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	staff, err := s.getManagedStaff(ctx, id)
	if err != nil {
		return err
	}

	if req.Role != nil {
		if !permissions.IsValidRole(*req.Role) {
			return failure.BadRequestFromString("unknown role") // nolint:wrapcheck
		}

		// Only roles with global access may promote or demote staff.
		if *req.Role != staff.Role && !permissions.HasGlobalAccess(role) {
			return failure.ForbiddenError // nolint:wrapcheck
		}
	}

	fields := req.Fields()
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = actorID

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update staff")

		return fmt.Errorf("failed to update staff: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	actorID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if actorID == id {
		return failure.BadRequestFromString("you cannot delete your own account") // nolint:wrapcheck
	}

	if _, err = s.getManagedStaff(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete staff")

		return fmt.Errorf("failed to delete staff: %w", err)
	}

	return nil
}

// getManagedStaff loads a staff member and verifies the caller is allowed to
// manage them.
func (s *serviceImpl) getManagedStaff(ctx context.Context, id string) (model.User, error) {
	actorID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	assignedLodges, _ := ctx.Value(constant.ContextKeyAssignedLodges).([]string)

	staff, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return staff, fmt.Errorf("failed to get staff: %w", err)
	}

	if staff.ID == constant.Empty {
		return staff, failure.NotFound("staff member not found") // nolint:wrapcheck
	}

	if !permissions.CanManageStaff(role, actorID, assignedLodges, staff.AssignedLodges, staff.SupervisorOrEmpty()) {
		return staff, failure.ResourceRestrictedError // nolint:wrapcheck
	}

	return staff, nil
}
