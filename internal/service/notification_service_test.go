package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/events"
	"github.com/spec-kit/citizen-engagement/internal/worker"
)

type enqueued struct {
	name    string
	payload worker.SendSMSPayload
}

type fakeQueue struct {
	jobs []enqueued
	err  error
}

func (q *fakeQueue) Add(ctx context.Context, name string, payload any) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	var p worker.SendSMSPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", err
	}
	q.jobs = append(q.jobs, enqueued{name: name, payload: p})
	return "job-1", nil
}

func newNotificationFixture(q *fakeQueue) events.Dispatcher {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	NewNotificationService(dispatcher, q, memoryUsers(citizen("c1")), zap.NewNop()).RegisterHandlers()
	return dispatcher
}

func TestNotification_TicketCreatedTextsCitizen(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{}
	dispatcher := newNotificationFixture(q)

	dispatcher.Publish(context.Background(), events.New(events.EventTicketCreated, "0b5e6c1a-aaaa-bbbb-cccc-000000000001", nil,
		events.TicketCreatedPayload{Title: "Leak", CitizenID: ptr("c1")}))

	require.Len(t, q.jobs, 1)
	assert.Equal(t, worker.JobSendSMS, q.jobs[0].name)
	assert.Equal(t, "+250788c1", q.jobs[0].payload.To)
	assert.Contains(t, q.jobs[0].payload.Message, "0B5E6C1A")
}

func TestNotification_AnonymousContact(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{}
	dispatcher := newNotificationFixture(q)
	ctx := context.Background()

	dispatcher.Publish(ctx, events.New(events.EventTicketStatusChanged, "t1", nil, events.TicketStatusChangedPayload{
		Title: "Leak", AnonymousContact: ptr("+250788000009"),
		OldStatus: domain.TicketStatusInProgressPendingAgent, NewStatus: domain.TicketStatusResolved,
	}))
	dispatcher.Publish(ctx, events.New(events.EventTicketCreated, "t2", nil, events.TicketCreatedPayload{
		Title: "Noise", AnonymousContact: ptr("jane@example.com"),
	}))

	require.Len(t, q.jobs, 1)
	assert.Equal(t, "+250788000009", q.jobs[0].payload.To)
	assert.Contains(t, q.jobs[0].payload.Message, "resolved")
}

func TestNotification_QueueFailureIsSwallowedByDispatcher(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{err: errors.New("redis down")}
	dispatcher := newNotificationFixture(q)

	assert.NotPanics(t, func() {
		dispatcher.Publish(context.Background(), events.New(events.EventTicketCreated, "t1", nil,
			events.TicketCreatedPayload{Title: "Leak", CitizenID: ptr("c1")}))
	})
	assert.Empty(t, q.jobs)
}
