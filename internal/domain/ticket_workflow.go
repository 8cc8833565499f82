package domain

import (
	"errors"
	"fmt"
	"slices"
)

// TicketAction names a move through the ticket lifecycle.
type TicketAction string

const (
	ActionAssign             TicketAction = "ASSIGN"
	ActionStartWork          TicketAction = "START_WORK"
	ActionRequestCitizenInfo TicketAction = "REQUEST_CITIZEN_INFO"
	ActionCitizenReply       TicketAction = "CITIZEN_REPLY"
	ActionResolve            TicketAction = "RESOLVE"
	ActionReopen             TicketAction = "REOPEN"
	ActionClose              TicketAction = "CLOSE"
)

// ErrInvalidTransition is returned when no edge permits the requested move.
var ErrInvalidTransition = errors.New("invalid status transition")

type transition struct {
	action TicketAction
	from   []TicketStatus
	to     TicketStatus
	roles  []UserRole
}

var (
	staffRoles = []UserRole{RoleAdmin, RoleAgencyStaff}
	anyRole    = []UserRole{RoleAdmin, RoleAgencyStaff, RoleCitizen}
	workStates = []TicketStatus{
		TicketStatusAssigned,
		TicketStatusInProgressPendingAgent,
		TicketStatusInProgressPendingCitizen,
	}
)

// Order matters: the first matching edge wins.
var ticketTransitions = []transition{
	{action: ActionAssign, from: []TicketStatus{TicketStatusNew}, to: TicketStatusAssigned, roles: staffRoles},
	{action: ActionStartWork, from: []TicketStatus{TicketStatusAssigned}, to: TicketStatusInProgressPendingAgent, roles: staffRoles},
	{
		action: ActionRequestCitizenInfo,
		from:   []TicketStatus{TicketStatusAssigned, TicketStatusInProgressPendingAgent},
		to:     TicketStatusInProgressPendingCitizen,
		roles:  staffRoles,
	},
	{action: ActionCitizenReply, from: []TicketStatus{TicketStatusInProgressPendingCitizen}, to: TicketStatusInProgressPendingAgent, roles: anyRole},
	{action: ActionResolve, from: workStates, to: TicketStatusResolved, roles: staffRoles},
	{action: ActionReopen, from: []TicketStatus{TicketStatusResolved}, to: TicketStatusInProgressPendingAgent, roles: anyRole},
	{action: ActionClose, from: []TicketStatus{TicketStatusResolved}, to: TicketStatusClosed, roles: anyRole},
	{
		action: ActionClose,
		from: []TicketStatus{
			TicketStatusNew,
			TicketStatusAssigned,
			TicketStatusInProgressPendingAgent,
			TicketStatusInProgressPendingCitizen,
		},
		to:    TicketStatusClosed,
		roles: []UserRole{RoleAdmin},
	},
}

// Transition returns the status reached by applying action from current as role.
func Transition(current TicketStatus, action TicketAction, role UserRole) (TicketStatus, error) {
	for _, edge := range ticketTransitions {
		if edge.action != action {
			continue
		}
		if slices.Contains(edge.from, current) && slices.Contains(edge.roles, role) {
			return edge.to, nil
		}
	}
	return "", fmt.Errorf("%w: %s cannot %s a %s ticket", ErrInvalidTransition, role, action, current)
}

// TransitionTo resolves the action that moves current to target for role.
// Moving to the current status is a no-op and returns an empty action.
func TransitionTo(current, target TicketStatus, role UserRole) (TicketAction, error) {
	if current == target {
		return "", nil
	}
	for _, edge := range ticketTransitions {
		if edge.to != target {
			continue
		}
		if slices.Contains(edge.from, current) && slices.Contains(edge.roles, role) {
			return edge.action, nil
		}
	}
	return "", fmt.Errorf("%w: %s cannot move a %s ticket to %s", ErrInvalidTransition, role, current, target)
}
