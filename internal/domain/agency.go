package domain

import "time"

// AgencyStatus marks whether an agency accepts tickets.
type AgencyStatus string

const (
	AgencyStatusActive   AgencyStatus = "ACTIVE"
	AgencyStatusInactive AgencyStatus = "INACTIVE"
)

// Valid reports whether s is a known status.
func (s AgencyStatus) Valid() bool {
	return s == AgencyStatusActive || s == AgencyStatusInactive
}

// Agency is an organizational unit that resolves tickets in its domain.
type Agency struct {
	ID           string
	Name         string
	Description  string
	ContactEmail string
	ContactPhone *string
	Status       AgencyStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
