package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_HappyPath(t *testing.T) {
	t.Parallel()

	steps := []struct {
		action TicketAction
		role   UserRole
		want   TicketStatus
	}{
		{ActionAssign, RoleAdmin, TicketStatusAssigned},
		{ActionStartWork, RoleAgencyStaff, TicketStatusInProgressPendingAgent},
		{ActionRequestCitizenInfo, RoleAgencyStaff, TicketStatusInProgressPendingCitizen},
		{ActionCitizenReply, RoleCitizen, TicketStatusInProgressPendingAgent},
		{ActionResolve, RoleAgencyStaff, TicketStatusResolved},
		{ActionClose, RoleCitizen, TicketStatusClosed},
	}

	status := TicketStatusNew
	for _, step := range steps {
		next, err := Transition(status, step.action, step.role)
		require.NoError(t, err, "%s from %s", step.action, status)
		assert.Equal(t, step.want, next)
		status = next
	}
}

func TestTransition_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current TicketStatus
		action  TicketAction
		role    UserRole
	}{
		{"resolve a new ticket", TicketStatusNew, ActionResolve, RoleAgencyStaff},
		{"citizen assigns", TicketStatusNew, ActionAssign, RoleCitizen},
		{"citizen resolves", TicketStatusInProgressPendingAgent, ActionResolve, RoleCitizen},
		{"reopen closed", TicketStatusClosed, ActionReopen, RoleAdmin},
		{"staff closes unresolved", TicketStatusInProgressPendingAgent, ActionClose, RoleAgencyStaff},
		{"close closed", TicketStatusClosed, ActionClose, RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Transition(tt.current, tt.action, tt.role)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTransition))
		})
	}
}

func TestTransition_AdminForceClose(t *testing.T) {
	t.Parallel()

	next, err := Transition(TicketStatusInProgressPendingCitizen, ActionClose, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, TicketStatusClosed, next)
}

func TestTransitionTo(t *testing.T) {
	t.Parallel()

	action, err := TransitionTo(TicketStatusAssigned, TicketStatusResolved, RoleAgencyStaff)
	require.NoError(t, err)
	assert.Equal(t, ActionResolve, action)

	action, err = TransitionTo(TicketStatusResolved, TicketStatusResolved, RoleAgencyStaff)
	require.NoError(t, err)
	assert.Empty(t, action)

	_, err = TransitionTo(TicketStatusNew, TicketStatusResolved, RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = TransitionTo(TicketStatusClosed, TicketStatusNew, RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNewPage_TotalPages(t *testing.T) {
	t.Parallel()

	page := NewPage([]int{1, 2, 3, 4, 5}, 15, PageRequest{Page: 2, Limit: 10})
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 10, PageRequest{Page: 2, Limit: 10}.Offset())

	empty := NewPage[int](nil, 0, PageRequest{Page: 1, Limit: 10})
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestTicketOwnership(t *testing.T) {
	t.Parallel()

	citizen := "user-1"
	agency := "agency-1"
	other := "agency-2"
	ticket := &Ticket{CitizenID: &citizen, AssignedAgencyID: &agency}

	assert.True(t, ticket.OwnedBy("user-1"))
	assert.False(t, ticket.OwnedBy("user-2"))
	assert.True(t, ticket.HandledBy(&agency))
	assert.False(t, ticket.HandledBy(&other))
	assert.False(t, ticket.HandledBy(nil))

	ticket.IsAnonymous = true
	assert.False(t, ticket.OwnedBy("user-1"))
}
