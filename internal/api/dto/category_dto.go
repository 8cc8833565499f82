package dto

import (
	"time"

	"github.com/spec-kit/citizen-engagement/internal/domain"
)

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	Name             string  `json:"name" validate:"required,min=2,max=100"`
	Description      string  `json:"description" validate:"max=1000"`
	ParentCategoryID *string `json:"parentCategoryId" validate:"omitempty,uuid"`
}

// UpdateCategoryRequest is a partial update. parentCategoryId may be null to detach.
type UpdateCategoryRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=2,max=100"`
	Description      *string          `json:"description" validate:"omitempty,max=1000"`
	ParentCategoryID Nullable[string] `json:"parentCategoryId"`
}

// CategoryResponse representation.
type CategoryResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	ParentCategoryID *string   `json:"parentCategoryId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func NewCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		ParentCategoryID: c.ParentCategoryID,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// CreateRoutingRuleRequest payload.
type CreateRoutingRuleRequest struct {
	CategoryID       string                    `json:"categoryId" validate:"required,uuid"`
	AssignedAgencyID string                    `json:"assignedAgencyId" validate:"required,uuid"`
	Description      string                    `json:"description" validate:"max=1000"`
	Status           *domain.RoutingRuleStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// UpdateRoutingRuleRequest is a partial update.
type UpdateRoutingRuleRequest struct {
	AssignedAgencyID *string                   `json:"assignedAgencyId" validate:"omitempty,uuid"`
	Description      *string                   `json:"description" validate:"omitempty,max=1000"`
	Status           *domain.RoutingRuleStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// RoutingRuleResponse representation.
type RoutingRuleResponse struct {
	ID               string                   `json:"id"`
	CategoryID       string                   `json:"categoryId"`
	AssignedAgencyID string                   `json:"assignedAgencyId"`
	Description      string                   `json:"description"`
	Status           domain.RoutingRuleStatus `json:"status"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

func NewRoutingRuleResponse(r *domain.RoutingRule) RoutingRuleResponse {
	return RoutingRuleResponse{
		ID:               r.ID,
		CategoryID:       r.CategoryID,
		AssignedAgencyID: r.AssignedAgencyID,
		Description:      r.Description,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
