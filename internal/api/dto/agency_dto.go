package dto

import (
	"time"

	"github.com/spec-kit/citizen-engagement/internal/domain"
)

// CreateAgencyRequest payload.
type CreateAgencyRequest struct {
	Name         string               `json:"name" validate:"required,min=2,max=150"`
	Description  string               `json:"description" validate:"required,max=2000"`
	ContactEmail string               `json:"contactEmail" validate:"required,email"`
	ContactPhone *string              `json:"contactPhone" validate:"omitempty,phone"`
	Status       *domain.AgencyStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// UpdateAgencyRequest is a partial update.
type UpdateAgencyRequest struct {
	Name         *string              `json:"name" validate:"omitempty,min=2,max=150"`
	Description  *string              `json:"description" validate:"omitempty,max=2000"`
	ContactEmail *string              `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone *string              `json:"contactPhone" validate:"omitempty,phone"`
	Status       *domain.AgencyStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// AgencyResponse representation.
type AgencyResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	ContactEmail string              `json:"contactEmail"`
	ContactPhone *string             `json:"contactPhone"`
	Status       domain.AgencyStatus `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func NewAgencyResponse(a *domain.Agency) AgencyResponse {
	return AgencyResponse{
		ID:           a.ID,
		Name:         a.Name,
		Description:  a.Description,
		ContactEmail: a.ContactEmail,
		ContactPhone: a.ContactPhone,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
