package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatcher_FailingHandlerDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	d := NewInMemoryDispatcher(zap.New(core))

	var seen []string
	d.Subscribe(EventTicketCreated, func(ctx context.Context, e Event) error {
		seen = append(seen, "first")
		return errors.New("queue down")
	})
	d.Subscribe(EventTicketCreated, func(ctx context.Context, e Event) error {
		seen = append(seen, "second")
		return nil
	})
	d.Subscribe(EventTicketStatusChanged, func(ctx context.Context, e Event) error {
		seen = append(seen, "other")
		return nil
	})

	d.Publish(context.Background(), New(EventTicketCreated, "t-1", nil, TicketCreatedPayload{Title: "x"}))

	assert.Equal(t, []string{"first", "second"}, seen)
	assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
}
