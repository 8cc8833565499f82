package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/events"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	"github.com/spec-kit/citizen-engagement/internal/validation"
	"github.com/spec-kit/citizen-engagement/internal/worker"
)

// JobEnqueuer adds a job to the notification queue.
type JobEnqueuer interface {
	Add(ctx context.Context, name string, payload any) (string, error)
}

// NotificationService turns ticket events into SEND_SMS jobs.
type NotificationService struct {
	dispatcher events.Dispatcher
	queue      JobEnqueuer
	users      repository.UserRepository
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, queue JobEnqueuer, users repository.UserRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		queue:      queue,
		users:      users,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	text := fmt.Sprintf("Your complaint %q has been received. Reference: %s.", payload.Title, shortRef(event.TicketID))
	return n.notify(ctx, event.TicketID, payload.CitizenID, payload.AnonymousContact, text)
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	text := fmt.Sprintf("Your complaint %q (ref %s) is now %s.", payload.Title, shortRef(event.TicketID), statusLabel(payload.NewStatus))
	return n.notify(ctx, event.TicketID, payload.CitizenID, payload.AnonymousContact, text)
}

func (n *NotificationService) notify(ctx context.Context, ticketID string, citizenID, anonymousContact *string, text string) error {
	to, err := n.recipient(ctx, citizenID, anonymousContact)
	if err != nil {
		return err
	}
	if to == "" {
		n.logger.Debug("no sms recipient", zap.String("ticket_id", ticketID))
		return nil
	}

	jobID, err := n.queue.Add(ctx, worker.JobSendSMS, worker.SendSMSPayload{To: to, Message: text, TicketID: ticketID})
	if err != nil {
		return fmt.Errorf("enqueue sms: %w", err)
	}
	n.logger.Debug("sms enqueued", zap.String("ticket_id", ticketID), zap.String("job_id", jobID))
	return nil
}

// recipient is the citizen's phone, or the anonymous contact when it looks like a phone number.
func (n *NotificationService) recipient(ctx context.Context, citizenID, anonymousContact *string) (string, error) {
	if citizenID != nil {
		user, err := n.users.GetByID(ctx, *citizenID)
		if err != nil {
			return "", fmt.Errorf("load citizen %s: %w", *citizenID, err)
		}
		return user.Phone, nil
	}
	if anonymousContact != nil && validation.IsPhone(strings.TrimSpace(*anonymousContact)) {
		return strings.TrimSpace(*anonymousContact), nil
	}
	return "", nil
}

func shortRef(ticketID string) string {
	if len(ticketID) > 8 {
		return strings.ToUpper(ticketID[:8])
	}
	return strings.ToUpper(ticketID)
}

func statusLabel(status domain.TicketStatus) string {
	switch status {
	case domain.TicketStatusAssigned:
		return "assigned to an agent"
	case domain.TicketStatusInProgressPendingAgent:
		return "in progress"
	case domain.TicketStatusInProgressPendingCitizen:
		return "waiting for your reply"
	case domain.TicketStatusResolved:
		return "resolved"
	case domain.TicketStatusClosed:
		return "closed"
	}
	return strings.ToLower(strings.ReplaceAll(string(status), "_", " "))
}
