package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizen-engagement/internal/api/dto"
	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	"github.com/spec-kit/citizen-engagement/internal/service"
	"github.com/spec-kit/citizen-engagement/internal/validation"
)

var routingRuleSortFields = []string{"createdAt", "updatedAt", "status"}

// RoutingRulesHandler manages category to agency routing rules.
type RoutingRulesHandler struct {
	binder
	rules *service.RoutingRuleService
}

// NewRoutingRulesHandler constructs handler.
func NewRoutingRulesHandler(rules *service.RoutingRuleService, v *validation.Validator) *RoutingRulesHandler {
	return &RoutingRulesHandler{binder: binder{validator: v}, rules: rules}
}

// List handles GET /routing-rules.
func (h *RoutingRulesHandler) List(c *fiber.Ctx) error {
	page, sort, err := listParams(c, routingRuleSortFields)
	if err != nil {
		return err
	}
	status, err := validation.OptionalEnum("status", c.Query("status"), domain.RoutingRuleStatus.Valid)
	if err != nil {
		return err
	}
	result, err := h.rules.ListRules(c.UserContext(), repository.RoutingRuleFilter{
		Status:           status,
		CategoryID:       validation.OptionalString(c.Query("categoryId")),
		AssignedAgencyID: validation.OptionalString(c.Query("assignedAgencyId")),
	}, page, sort)
	if err != nil {
		return err
	}
	return respondPage(c, result, dto.NewRoutingRuleResponse)
}

// Get handles GET /routing-rules/:id.
func (h *RoutingRulesHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rule, err := h.rules.GetRule(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, dto.NewRoutingRuleResponse(rule))
}

// Create handles POST /routing-rules.
func (h *RoutingRulesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRoutingRuleRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	rule, err := h.rules.CreateRule(c.UserContext(), service.RoutingRuleCreateInput{
		CategoryID:       req.CategoryID,
		AssignedAgencyID: req.AssignedAgencyID,
		Description:      req.Description,
		Status:           req.Status,
	})
	if err != nil {
		return err
	}
	return created(c, "routing rule created", dto.NewRoutingRuleResponse(rule))
}

// Update handles PATCH /routing-rules/:id.
func (h *RoutingRulesHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateRoutingRuleRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	rule, err := h.rules.UpdateRule(c.UserContext(), id, service.RoutingRuleUpdateInput{
		AssignedAgencyID: req.AssignedAgencyID,
		Description:      req.Description,
		Status:           req.Status,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "routing rule updated", dto.NewRoutingRuleResponse(rule))
}

// Delete handles DELETE /routing-rules/:id.
func (h *RoutingRulesHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.rules.DeleteRule(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "routing rule deleted", nil)
}
