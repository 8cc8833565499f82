package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizen-engagement/internal/api/dto"
	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	"github.com/spec-kit/citizen-engagement/internal/service"
	"github.com/spec-kit/citizen-engagement/internal/validation"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

var agencySortFields = []string{"createdAt", "updatedAt", "name", "status"}

// AgenciesHandler manages government agencies.
type AgenciesHandler struct {
	binder
	agencies *service.AgencyService
}

// NewAgenciesHandler constructs handler.
func NewAgenciesHandler(agencies *service.AgencyService, v *validation.Validator) *AgenciesHandler {
	return &AgenciesHandler{binder: binder{validator: v}, agencies: agencies}
}

// List handles GET /agencies.
func (h *AgenciesHandler) List(c *fiber.Ctx) error {
	page, sort, err := listParams(c, agencySortFields)
	if err != nil {
		return err
	}
	status, err := validation.OptionalEnum("status", c.Query("status"), domain.AgencyStatus.Valid)
	if err != nil {
		return err
	}
	result, err := h.agencies.ListAgencies(c.UserContext(), repository.AgencyFilter{
		Status: status,
		Search: c.Query("search"),
	}, page, sort)
	if err != nil {
		return err
	}
	return respondPage(c, result, dto.NewAgencyResponse)
}

// Get handles GET /agencies/:id.
func (h *AgenciesHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	agency, err := h.agencies.GetAgencyByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if agency == nil {
		return apperrors.NewNotFound("agency", map[string]any{"id": id})
	}
	return ok(c, dto.NewAgencyResponse(agency))
}

// Create handles POST /agencies.
func (h *AgenciesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAgencyRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	agency, err := h.agencies.CreateAgency(c.UserContext(), service.AgencyCreateInput{
		Name:         req.Name,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Status:       req.Status,
	})
	if err != nil {
		return err
	}
	return created(c, "agency created", dto.NewAgencyResponse(agency))
}

// Update handles PATCH /agencies/:id.
func (h *AgenciesHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAgencyRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	agency, err := h.agencies.UpdateAgency(c.UserContext(), id, service.AgencyUpdateInput{
		Name:         req.Name,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Status:       req.Status,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "agency updated", dto.NewAgencyResponse(agency))
}

// Delete handles DELETE /agencies/:id. Agencies are deactivated, not removed.
func (h *AgenciesHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	agency, err := h.agencies.DeleteAgency(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "agency deactivated", dto.NewAgencyResponse(agency))
}
