package model

import (
	"time"

	"github.com/lib/pq"

	"lodgehub/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID             = "id"
	FieldFullName       = "full_name"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldPhone          = "phone"
	FieldRole           = "role"
	FieldAssignedLodges = "assigned_lodges"
	FieldSupervisorID   = "supervisor_id"
	FieldEmployeeID     = "employee_id"
	FieldDepartment     = "department"
	FieldIsActive       = "is_active"
	FieldLastLogin      = "last_login"
)

type User struct {
	ID             string         `db:"id"`
	FullName       string         `db:"full_name"`
	Email          string         `db:"email"`
	Password       string         `db:"password"`
	Phone          string         `db:"phone"`
	Role           string         `db:"role"`
	AssignedLodges pq.StringArray `db:"assigned_lodges"`
	SupervisorID   *string        `db:"supervisor_id"`
	EmployeeID     string         `db:"employee_id"`
	Department     string         `db:"department"`
	IsActive       bool           `db:"is_active"`
	LastLogin      *time.Time     `db:"last_login"`
	model.Metadata
}

// SupervisorOrEmpty flattens the optional supervisor reference for
// permission checks.
func (u *User) SupervisorOrEmpty() string {
	if u.SupervisorID == nil {
		return ""
	}

	return *u.SupervisorID
}
