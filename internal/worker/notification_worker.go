// Package worker holds the job processors run by cmd/worker.
package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/queue"
	"github.com/spec-kit/citizen-engagement/internal/sms"
)

// JobSendSMS is the only job kind the notification queue carries.
const JobSendSMS = "SEND_SMS"

// SendSMSPayload is the body of a SEND_SMS job.
type SendSMSPayload struct {
	To       string `json:"to"`
	Message  string `json:"message"`
	TicketID string `json:"ticketId,omitempty"`
}

// SMSSender delivers a text message.
type SMSSender interface {
	Send(ctx context.Context, to, text string) error
}

// NotificationWorker dispatches notification jobs by name.
type NotificationWorker struct {
	sms    SMSSender
	logger *zap.Logger
}

// NewNotificationWorker creates the worker.
func NewNotificationWorker(sender SMSSender, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{sms: sender, logger: logger}
}

// Handle is a queue.Handler. Unknown job kinds fail without retry.
func (w *NotificationWorker) Handle(ctx context.Context, job *queue.Job) error {
	switch job.Name {
	case JobSendSMS:
		return w.sendSMS(ctx, job)
	default:
		return queue.Permanent(fmt.Errorf("unknown job kind %q", job.Name))
	}
}

func (w *NotificationWorker) sendSMS(ctx context.Context, job *queue.Job) error {
	var payload SendSMSPayload
	if err := job.Decode(&payload); err != nil {
		return queue.Permanent(fmt.Errorf("decode payload: %w", err))
	}
	if strings.TrimSpace(payload.To) == "" || strings.TrimSpace(payload.Message) == "" {
		return queue.Permanent(errors.New("sms job missing recipient or message"))
	}

	err := w.sms.Send(ctx, payload.To, payload.Message)
	if err == nil {
		w.logger.Info("sms sent",
			zap.String("job_id", job.ID),
			zap.String("ticket_id", payload.TicketID),
			zap.Int("attempt", job.Attempts))
		return nil
	}

	var gwErr *sms.GatewayError
	if errors.As(err, &gwErr) && !gwErr.Retryable() {
		return queue.Permanent(err)
	}
	if errors.Is(err, sms.ErrNotConfigured) {
		return queue.Permanent(err)
	}
	return err
}
