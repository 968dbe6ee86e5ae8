package dto

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"lodgehub/infras/jwt"
	userModel "lodgehub/internal/domains/user/model"
	gModel "lodgehub/shared/model"
	"lodgehub/shared/timezone"
)

type RegisterRequest struct {
	FullName       string   `json:"full_name"       validate:"required,max=255"`
	Email          string   `json:"email"           validate:"required,email"`
	Password       string   `json:"password"        validate:"required,min=8"`
	Phone          string   `json:"phone"           validate:"omitempty,max=20"`
	Role           string   `json:"role"            validate:"required,oneof=admin manager supervisor receptionist cleaner maintenance"`
	AssignedLodges []string `json:"assigned_lodges" validate:"omitempty,dive,uuid"`
	SupervisorID   *string  `json:"supervisor_id"   validate:"omitempty,uuid"`
	EmployeeID     string   `json:"employee_id"     validate:"omitempty,max=50"`
	Department     string   `json:"department"      validate:"omitempty,max=100"`
}

func (r *RegisterRequest) ToUserModel(creator, hashedPassword string) userModel.User {
	return userModel.User{
		ID:             uuid.NewString(),
		FullName:       r.FullName,
		Email:          r.Email,
		Password:       hashedPassword,
		Phone:          r.Phone,
		Role:           r.Role,
		AssignedLodges: pq.StringArray(r.AssignedLodges),
		SupervisorID:   r.SupervisorID,
		EmployeeID:     r.EmployeeID,
		Department:     r.Department,
		IsActive:       true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  creator,
			ModifiedBy: creator,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
	UserID       string   `json:"user_id"`
	FullName     string   `json:"full_name"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}
