package worker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/queue"
	"github.com/spec-kit/citizen-engagement/internal/sms"
)

type senderFunc func(ctx context.Context, to, text string) error

func (f senderFunc) Send(ctx context.Context, to, text string) error { return f(ctx, to, text) }

func smsJob(t *testing.T, name string, payload any) *queue.Job {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &queue.Job{ID: "j1", Name: name, Payload: raw, Attempts: 1}
}

func TestHandle_SendsSMS(t *testing.T) {
	t.Parallel()

	var gotTo, gotText string
	w := NewNotificationWorker(senderFunc(func(ctx context.Context, to, text string) error {
		gotTo, gotText = to, text
		return nil
	}), zap.NewNop())

	err := w.Handle(context.Background(), smsJob(t, JobSendSMS, SendSMSPayload{To: "+250788000001", Message: "hello"}))
	require.NoError(t, err)
	assert.Equal(t, "+250788000001", gotTo)
	assert.Equal(t, "hello", gotText)
}

func TestHandle_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		job       string
		payload   any
		sendErr   error
		permanent bool
	}{
		{"unknown kind", "SEND_FAX", SendSMSPayload{To: "+1", Message: "x"}, nil, true},
		{"missing recipient", JobSendSMS, SendSMSPayload{Message: "x"}, nil, true},
		{"bad request", JobSendSMS, SendSMSPayload{To: "+1", Message: "x"}, &sms.GatewayError{StatusCode: http.StatusBadRequest}, true},
		{"rate limited", JobSendSMS, SendSMSPayload{To: "+1", Message: "x"}, &sms.GatewayError{StatusCode: http.StatusTooManyRequests}, false},
		{"gateway down", JobSendSMS, SendSMSPayload{To: "+1", Message: "x"}, &sms.GatewayError{StatusCode: http.StatusServiceUnavailable}, false},
		{"network", JobSendSMS, SendSMSPayload{To: "+1", Message: "x"}, errors.New("connection reset"), false},
		{"not configured", JobSendSMS, SendSMSPayload{To: "+1", Message: "x"}, sms.ErrNotConfigured, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := NewNotificationWorker(senderFunc(func(ctx context.Context, to, text string) error {
				return tt.sendErr
			}), zap.NewNop())

			err := w.Handle(context.Background(), smsJob(t, tt.job, tt.payload))
			require.Error(t, err)
			assert.Equal(t, tt.permanent, queue.IsPermanent(err))
		})
	}
}
