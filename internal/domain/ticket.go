package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew                      TicketStatus = "NEW"
	TicketStatusAssigned                 TicketStatus = "ASSIGNED"
	TicketStatusInProgressPendingAgent   TicketStatus = "IN_PROGRESS_PENDING_AGENT"
	TicketStatusInProgressPendingCitizen TicketStatus = "IN_PROGRESS_PENDING_CITIZEN"
	TicketStatusResolved                 TicketStatus = "RESOLVED"
	TicketStatusClosed                   TicketStatus = "CLOSED"
)

// Valid reports whether s is a known status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusNew, TicketStatusAssigned, TicketStatusInProgressPendingAgent,
		TicketStatusInProgressPendingCitizen, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is a citizen-reported issue.
//
// Anonymous tickets never carry a CitizenID and always carry both anonymous creator fields.
type Ticket struct {
	ID                      string
	Title                   string
	DetailedDescription     string
	Location                string
	Priority                TicketPriority
	Status                  TicketStatus
	IsAnonymous             bool
	AnonymousCreatorName    *string
	AnonymousCreatorContact *string
	CitizenID               *string
	CategoryID              *string
	AssignedAgentID         *string
	AssignedAgencyID        *string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// OwnedBy reports whether the ticket was filed by the given citizen under their name.
func (t *Ticket) OwnedBy(userID string) bool {
	return !t.IsAnonymous && t.CitizenID != nil && *t.CitizenID == userID
}

// HandledBy reports whether the ticket is currently routed to the given agency.
func (t *Ticket) HandledBy(agencyID *string) bool {
	return agencyID != nil && t.AssignedAgencyID != nil && *t.AssignedAgencyID == *agencyID
}
