package domain

import "time"

// Communication is a message in a ticket thread. Internal messages are staff-only.
type Communication struct {
	ID         string
	TicketID   string
	SenderID   *string
	Message    string
	IsInternal bool
	CreatedAt  time.Time
}
