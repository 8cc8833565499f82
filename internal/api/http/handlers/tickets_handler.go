package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizen-engagement/internal/api/dto"
	"github.com/spec-kit/citizen-engagement/internal/auth"
	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/service"
	"github.com/spec-kit/citizen-engagement/internal/validation"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

var ticketSortFields = []string{"createdAt", "updatedAt", "priority", "status", "title"}

// TicketsHandler manages ticket endpoints for citizens, agency staff and admins.
type TicketsHandler struct {
	binder
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, v *validation.Validator) *TicketsHandler {
	return &TicketsHandler{binder: binder{validator: v}, tickets: tickets}
}

// Create handles POST /tickets. Anonymous submissions need no token.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	user, _ := auth.CurrentUser(c)
	ticket, err := h.tickets.CreateTicket(c.UserContext(), service.TicketCreateInput{
		Title:                   req.Title,
		DetailedDescription:     req.DetailedDescription,
		Location:                req.Location,
		Priority:                req.Priority,
		CategoryID:              req.CategoryID,
		IsAnonymous:             req.IsAnonymous,
		AnonymousCreatorName:    req.AnonymousCreatorName,
		AnonymousCreatorContact: req.AnonymousCreatorContact,
	}, user)
	if err != nil {
		return err
	}
	return created(c, "ticket submitted", dto.NewTicketResponse(ticket))
}

// List handles GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	page, sort, err := listParams(c, ticketSortFields)
	if err != nil {
		return err
	}
	statuses, err := validation.StatusList(c.Query("status"))
	if err != nil {
		return err
	}
	priority, err := validation.OptionalEnum("priority", c.Query("priority"), domain.TicketPriority.Valid)
	if err != nil {
		return err
	}

	user, _ := auth.CurrentUser(c)
	result, err := h.tickets.ListTickets(c.UserContext(), service.TicketListQuery{
		Statuses:         statuses,
		Priority:         priority,
		CategoryID:       validation.OptionalString(c.Query("categoryId")),
		AssignedAgencyID: validation.OptionalString(c.Query("assignedAgencyId")),
		AssignedAgentID:  validation.OptionalString(c.Query("assignedAgentId")),
		CitizenID:        validation.OptionalString(c.Query("citizenId")),
		Search:           c.Query("search"),
	}, page, sort, user)
	if err != nil {
		return err
	}
	return respondPage(c, result, dto.NewTicketResponse)
}

// Get handles GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, _ := auth.CurrentUser(c)
	ticket, err := h.tickets.GetTicket(c.UserContext(), id, user)
	if err != nil {
		return err
	}
	return ok(c, dto.NewTicketResponse(ticket))
}

// Update handles PATCH /tickets/:id for agency staff and admins.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	user, _ := auth.CurrentUser(c)
	ticket, err := h.tickets.UpdateTicketByAgent(c.UserContext(), id, service.TicketAgentUpdateInput{
		Status:   req.Status,
		Priority: req.Priority,
	}, user)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "ticket updated", dto.NewTicketResponse(ticket))
}

// Assign handles PATCH /tickets/:id/assignment. agentId is required; null unassigns.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AssignmentRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	if !req.AgentID.Set {
		return apperrors.NewValidationError("validation failed", []apperrors.FieldError{
			{Field: "agentId", Message: "is required; send null to unassign"},
		})
	}
	if req.AgentID.Valid && !validation.IsUUID(req.AgentID.Value) {
		return apperrors.NewValidationError("validation failed", []apperrors.FieldError{
			{Field: "agentId", Message: "must be a valid UUID"},
		})
	}

	user, _ := auth.CurrentUser(c)
	ticket, err := h.tickets.UpdateTicketAssignment(c.UserContext(), id, service.AssignmentInput{
		AgentID: req.AgentID.Ptr(),
	}, user)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "assignment updated", dto.NewTicketResponse(ticket))
}

// Transfer handles POST /tickets/:id/transfer.
func (h *TicketsHandler) Transfer(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TransferRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	user, _ := auth.CurrentUser(c)
	ticket, err := h.tickets.TransferTicket(c.UserContext(), id, service.TransferInput{
		AgencyID: req.NewAgencyID,
		Comment:  req.TransferComment,
	}, user)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "ticket transferred", dto.NewTicketResponse(ticket))
}

// AddCommunication handles POST /tickets/:id/communications.
func (h *TicketsHandler) AddCommunication(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateCommunicationRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	user, _ := auth.CurrentUser(c)
	comm, err := h.tickets.AddCommunication(c.UserContext(), id, service.CommunicationInput{
		Message:    req.Message,
		IsInternal: req.IsInternal,
	}, user)
	if err != nil {
		return err
	}
	return created(c, "message added", dto.NewCommunicationResponse(comm))
}

// ListCommunications handles GET /tickets/:id/communications.
func (h *TicketsHandler) ListCommunications(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, _ := auth.CurrentUser(c)
	comms, err := h.tickets.ListCommunications(c.UserContext(), id, user)
	if err != nil {
		return err
	}
	return ok(c, mapSlice(comms, dto.NewCommunicationResponse))
}

// History handles GET /tickets/:id/history.
func (h *TicketsHandler) History(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, _ := auth.CurrentUser(c)
	entries, err := h.tickets.GetTicketHistory(c.UserContext(), id, user)
	if err != nil {
		return err
	}
	return ok(c, mapSlice(entries, dto.NewTicketHistoryResponse))
}
