package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/citizen-engagement/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, ticketID string, actorID *string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// TicketCreatedPayload carries who should hear about the new ticket.
type TicketCreatedPayload struct {
	Title            string  `json:"title"`
	CitizenID        *string `json:"citizen_id,omitempty"`
	AnonymousContact *string `json:"anonymous_contact,omitempty"`
	AssignedAgencyID *string `json:"assigned_agency_id,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	Title            string              `json:"title"`
	CitizenID        *string             `json:"citizen_id,omitempty"`
	AnonymousContact *string             `json:"anonymous_contact,omitempty"`
	OldStatus        domain.TicketStatus `json:"old_status"`
	NewStatus        domain.TicketStatus `json:"new_status"`
	Action           domain.TicketAction `json:"action"`
}
