package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

// AssignmentInput sets the ticket's agent. A nil AgentID unassigns.
type AssignmentInput struct {
	AgentID *string
}

// TransferInput moves a ticket to another agency. Comment is only logged.
type TransferInput struct {
	AgencyID string
	Comment  string
}

// UpdateTicketAssignment sets or clears the assigned agent. The assignee must
// be active agency staff of the ticket's agency; a ticket without an agency
// adopts the assignee's. Assigning a NEW ticket moves it to ASSIGNED.
func (s *TicketService) UpdateTicketAssignment(ctx context.Context, id string, input AssignmentInput, actor *domain.User) (*domain.Ticket, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "ticket", id)
	}
	if sameID(ticket.AssignedAgentID, input.AgentID) {
		return ticket, nil
	}

	var changes []domain.TicketHistory
	if input.AgentID != nil {
		agent, err := s.users.GetByID(ctx, *input.AgentID)
		if err != nil {
			return nil, notFoundOr(err, "agent", *input.AgentID)
		}
		if agent.Role != domain.RoleAgencyStaff || !agent.IsActive() {
			return nil, apperrors.NewBadRequest("assignee must be an active agency staff member")
		}
		switch {
		case ticket.AssignedAgencyID == nil && agent.AgencyID != nil:
			changes = append(changes, historyEntry(ticket.ID, actor.ID, domain.ChangeTypeAgency,
				"assignedAgencyId", nil, *agent.AgencyID))
			ticket.AssignedAgencyID = agent.AgencyID
		case ticket.AssignedAgencyID != nil && !ticket.HandledBy(agent.AgencyID):
			return nil, apperrors.NewBadRequest("assignee does not belong to the ticket's agency")
		}
	}

	changes = append(changes, historyEntry(ticket.ID, actor.ID, domain.ChangeTypeAssignee,
		"assignedAgentId", idValue(ticket.AssignedAgentID), idValue(input.AgentID)))
	ticket.AssignedAgentID = input.AgentID

	oldStatus := ticket.Status
	var action domain.TicketAction
	if input.AgentID != nil && ticket.Status == domain.TicketStatusNew {
		next, err := domain.Transition(ticket.Status, domain.ActionAssign, actor.Role)
		if err != nil {
			return nil, transitionError(err)
		}
		ticket.Status = next
		action = domain.ActionAssign
		changes = append(changes, historyEntry(ticket.ID, actor.ID, domain.ChangeTypeStatus, "status", oldStatus, next))
	}

	if err := s.save(ctx, ticket, changes); err != nil {
		return nil, err
	}
	if action != "" {
		s.publishStatusChange(ctx, ticket, actor.ID, oldStatus, action)
	}
	return ticket, nil
}

// TransferTicket routes the ticket to another active agency and clears the
// assigned agent. Staff may only transfer tickets held by their own agency.
func (s *TicketService) TransferTicket(ctx context.Context, id string, input TransferInput, actor *domain.User) (*domain.Ticket, error) {
	ticket, err := s.ticketForStaff(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	agency, err := s.agencies.GetByID(ctx, input.AgencyID)
	if err != nil {
		return nil, notFoundOr(err, "agency", input.AgencyID)
	}
	if agency.Status != domain.AgencyStatusActive {
		return nil, apperrors.NewConflict("target agency is inactive", map[string]any{"agencyId": agency.ID})
	}
	if ticket.HandledBy(&agency.ID) {
		return ticket, nil
	}

	changes := []domain.TicketHistory{
		historyEntry(ticket.ID, actor.ID, domain.ChangeTypeAgency,
			"assignedAgencyId", idValue(ticket.AssignedAgencyID), agency.ID),
	}
	if ticket.AssignedAgentID != nil {
		changes = append(changes, historyEntry(ticket.ID, actor.ID, domain.ChangeTypeAssignee,
			"assignedAgentId", *ticket.AssignedAgentID, nil))
	}
	ticket.AssignedAgencyID = &agency.ID
	ticket.AssignedAgentID = nil

	if err := s.save(ctx, ticket, changes); err != nil {
		return nil, err
	}
	s.logger.Info("ticket transferred",
		zap.String("ticket_id", ticket.ID),
		zap.String("agency_id", agency.ID),
		zap.String("by", actor.ID),
		zap.String("comment", input.Comment))
	return ticket, nil
}
