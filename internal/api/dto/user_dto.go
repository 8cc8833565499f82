package dto

import (
	"time"

	"github.com/spec-kit/citizen-engagement/internal/domain"
)

// RegisterRequest payload for citizen self-registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest payload for login by phone.
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the account and its bearer token.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// CreateUserRequest is the admin payload for a new account.
type CreateUserRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email,max=255"`
	Phone    string          `json:"phone" validate:"required,phone"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	Role     domain.UserRole `json:"role" validate:"required,oneof=ADMIN AGENCY_STAFF CITIZEN"`
	AgencyID *string         `json:"agencyId" validate:"omitempty,uuid"`
}

// UpdateUserRequest is a partial update. agencyId may be sent as null to detach.
type UpdateUserRequest struct {
	Name     *string            `json:"name" validate:"omitempty,min=2,max=100"`
	Email    *string            `json:"email" validate:"omitempty,email,max=255"`
	Phone    *string            `json:"phone" validate:"omitempty,phone"`
	Password *string            `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *domain.UserRole   `json:"role" validate:"omitempty,oneof=ADMIN AGENCY_STAFF CITIZEN"`
	Status   *domain.UserStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	AgencyID Nullable[string]   `json:"agencyId"`
}

// UserResponse is the sanitized account. The password hash never leaves the service.
type UserResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Role      domain.UserRole   `json:"role"`
	Status    domain.UserStatus `json:"status"`
	AgencyID  *string           `json:"agencyId"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewUserResponse strips credentials from user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		Status:    user.Status,
		AgencyID:  user.AgencyID,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
