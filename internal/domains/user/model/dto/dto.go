package dto

import (
	"time"

	"github.com/lib/pq"

	"lodgehub/internal/domains/user/model"
	"lodgehub/shared"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
)

type UpdateStaffRequest struct {
	FullName       *string  `json:"full_name"       validate:"omitempty,max=255"`
	Phone          *string  `json:"phone"           validate:"omitempty,max=20"`
	Role           *string  `json:"role"            validate:"omitempty,oneof=admin manager supervisor receptionist cleaner maintenance"`
	AssignedLodges []string `json:"assigned_lodges" validate:"omitempty,dive,uuid"`
	SupervisorID   *string  `json:"supervisor_id"   validate:"omitempty,uuid"`
	EmployeeID     *string  `json:"employee_id"     validate:"omitempty,max=50"`
	Department     *string  `json:"department"      validate:"omitempty,max=100"`
	IsActive       *bool    `json:"is_active"       validate:"omitempty"`
}

// Fields maps only the set request fields to their columns.
func (u *UpdateStaffRequest) Fields() map[string]any {
	fields := map[string]any{}

	if u.FullName != nil {
		fields[model.FieldFullName] = *u.FullName
	}

	if u.Phone != nil {
		fields[model.FieldPhone] = *u.Phone
	}

	if u.Role != nil {
		fields[model.FieldRole] = *u.Role
	}

	if u.AssignedLodges != nil {
		fields[model.FieldAssignedLodges] = pq.StringArray(u.AssignedLodges)
	}

	if u.SupervisorID != nil {
		fields[model.FieldSupervisorID] = *u.SupervisorID
	}

	if u.EmployeeID != nil {
		fields[model.FieldEmployeeID] = *u.EmployeeID
	}

	if u.Department != nil {
		fields[model.FieldDepartment] = *u.Department
	}

	if u.IsActive != nil {
		fields[model.FieldIsActive] = *u.IsActive
	}

	return fields
}

type UserResponse struct {
	ID             string   `json:"id"`
	FullName       string   `json:"full_name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	Role           string   `json:"role"`
	AssignedLodges []string `json:"assigned_lodges"`
	SupervisorID   *string  `json:"supervisor_id,omitempty"`
	EmployeeID     string   `json:"employee_id,omitempty"`
	Department     string   `json:"department,omitempty"`
	IsActive       bool     `json:"is_active"`
	LastLogin      *string  `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(mod model.User) {
	r.ID = mod.ID
	r.FullName = mod.FullName
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Role = mod.Role
	r.AssignedLodges = mod.AssignedLodges
	r.SupervisorID = mod.SupervisorID
	r.EmployeeID = mod.EmployeeID
	r.Department = mod.Department
	r.IsActive = mod.IsActive
	r.LastLogin = formatTimePtr(mod.LastLogin)
	r.Metadata.FromModel(mod.Metadata)
}

type GetStaffResponse struct {
	Staff     []UserResponse `json:"staff"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetStaffResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Staff = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Staff[i].FromModel(mod)
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := t.Format(constant.DateFormat)

	return &formatted
}
