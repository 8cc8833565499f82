package domain

import "time"

// RoutingRuleStatus toggles whether a rule is applied to new tickets.
type RoutingRuleStatus string

const (
	RoutingRuleStatusActive   RoutingRuleStatus = "ACTIVE"
	RoutingRuleStatusInactive RoutingRuleStatus = "INACTIVE"
)

// Valid reports whether s is a known status.
func (s RoutingRuleStatus) Valid() bool {
	return s == RoutingRuleStatusActive || s == RoutingRuleStatusInactive
}

// RoutingRule maps a category to the agency that handles it by default.
type RoutingRule struct {
	ID               string
	CategoryID       string
	AssignedAgencyID string
	Description      string
	Status           RoutingRuleStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
