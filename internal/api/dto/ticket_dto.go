package dto

import (
	"time"

	"github.com/spec-kit/citizen-engagement/internal/domain"
)

// CreateTicketRequest payload. Anonymous tickets must name a creator and a contact.
type CreateTicketRequest struct {
	Title                   string                 `json:"title" validate:"required,min=3,max=200"`
	DetailedDescription     string                 `json:"detailedDescription" validate:"required,min=10,max=5000"`
	Location                string                 `json:"location" validate:"required,max=255"`
	Priority                *domain.TicketPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	CategoryID              *string                `json:"categoryId" validate:"omitempty,uuid"`
	IsAnonymous             bool                   `json:"isAnonymous"`
	AnonymousCreatorName    *string                `json:"anonymousCreatorName" validate:"required_if=IsAnonymous true"`
	AnonymousCreatorContact *string                `json:"anonymousCreatorContact" validate:"required_if=IsAnonymous true"`
}

// UpdateTicketRequest is the agent's partial update.
type UpdateTicketRequest struct {
	Status   *domain.TicketStatus   `json:"status" validate:"omitempty,oneof=NEW ASSIGNED IN_PROGRESS_PENDING_AGENT IN_PROGRESS_PENDING_CITIZEN RESOLVED CLOSED"`
	Priority *domain.TicketPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

// AssignmentRequest sets agentId, or clears it with an explicit null.
type AssignmentRequest struct {
	AgentID Nullable[string] `json:"agentId"`
}

// TransferRequest moves a ticket to another agency.
type TransferRequest struct {
	NewAgencyID     string `json:"newAgencyId" validate:"required,uuid"`
	TransferComment string `json:"transferComment" validate:"max=2000"`
}

// CreateCommunicationRequest payload.
type CreateCommunicationRequest struct {
	Message    string `json:"message" validate:"required,min=1,max=5000"`
	IsInternal bool   `json:"isInternal"`
}

// TicketResponse representation.
type TicketResponse struct {
	ID                      string                `json:"id"`
	Title                   string                `json:"title"`
	DetailedDescription     string                `json:"detailedDescription"`
	Location                string                `json:"location"`
	Priority                domain.TicketPriority `json:"priority"`
	Status                  domain.TicketStatus   `json:"status"`
	IsAnonymous             bool                  `json:"isAnonymous"`
	AnonymousCreatorName    *string               `json:"anonymousCreatorName"`
	AnonymousCreatorContact *string               `json:"anonymousCreatorContact"`
	CitizenID               *string               `json:"citizenId"`
	CategoryID              *string               `json:"categoryId"`
	AssignedAgentID         *string               `json:"assignedAgentId"`
	AssignedAgencyID        *string               `json:"assignedAgencyId"`
	CreatedAt               time.Time             `json:"createdAt"`
	UpdatedAt               time.Time             `json:"updatedAt"`
}

func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                      t.ID,
		Title:                   t.Title,
		DetailedDescription:     t.DetailedDescription,
		Location:                t.Location,
		Priority:                t.Priority,
		Status:                  t.Status,
		IsAnonymous:             t.IsAnonymous,
		AnonymousCreatorName:    t.AnonymousCreatorName,
		AnonymousCreatorContact: t.AnonymousCreatorContact,
		CitizenID:               t.CitizenID,
		CategoryID:              t.CategoryID,
		AssignedAgentID:         t.AssignedAgentID,
		AssignedAgencyID:        t.AssignedAgencyID,
		CreatedAt:               t.CreatedAt,
		UpdatedAt:               t.UpdatedAt,
	}
}

// CommunicationResponse represents one message in a ticket thread.
type CommunicationResponse struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticketId"`
	SenderID   *string   `json:"senderId"`
	Message    string    `json:"message"`
	IsInternal bool      `json:"isInternal"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewCommunicationResponse(c *domain.Communication) CommunicationResponse {
	return CommunicationResponse{
		ID:         c.ID,
		TicketID:   c.TicketID,
		SenderID:   c.SenderID,
		Message:    c.Message,
		IsInternal: c.IsInternal,
		Timestamp:  c.CreatedAt,
	}
}

// TicketHistoryResponse is one audit entry.
type TicketHistoryResponse struct {
	ID          string                  `json:"id"`
	ChangeType  domain.TicketChangeType `json:"changeType"`
	ChangedByID *string                 `json:"changedById"`
	OldValue    map[string]any          `json:"oldValue"`
	NewValue    map[string]any          `json:"newValue"`
	CreatedAt   time.Time               `json:"createdAt"`
}

func NewTicketHistoryResponse(h *domain.TicketHistory) TicketHistoryResponse {
	return TicketHistoryResponse{
		ID:          h.ID,
		ChangeType:  h.ChangeType,
		ChangedByID: h.ChangedByID,
		OldValue:    h.OldValue,
		NewValue:    h.NewValue,
		CreatedAt:   h.CreatedAt,
	}
}
