package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/config"
	"github.com/spec-kit/citizen-engagement/internal/persistence/testhelper"
)

type smsPayload struct {
	To string `json:"to"`
}

func newTestQueue(t *testing.T, cfg config.QueueConfig) (*Queue, *time.Time) {
	t.Helper()
	rdb := testhelper.SetupTestRedis(t)
	if cfg.Name == "" {
		cfg.Name = "test"
	}
	q := New(rdb, cfg, zap.NewNop())
	clock := time.Now()
	q.now = func() time.Time { return clock }
	return q, &clock
}

func TestQueue_CompletesJob(t *testing.T) {
	q, _ := newTestQueue(t, config.QueueConfig{MaxAttempts: 3, BackoffBase: time.Second, KeepCompleted: 10, KeepFailed: 10})
	ctx := context.Background()

	id, err := q.Add(ctx, "SEND_SMS", smsPayload{To: "+250788000001"})
	require.NoError(t, err)

	var got smsPayload
	ran, err := q.ProcessNext(ctx, func(ctx context.Context, job *Job) error {
		assert.Equal(t, "SEND_SMS", job.Name)
		assert.Equal(t, 1, job.Attempts)
		return job.Decode(&got)
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, "+250788000001", got.To)

	job, err := q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, job.State)

	counts, err := q.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Completed: 1}, counts)

	ran, err = q.ProcessNext(ctx, func(ctx context.Context, job *Job) error { return nil })
	require.NoError(t, err)
	assert.False(t, ran)
}

func TestQueue_RetriesWithBackoffThenFails(t *testing.T) {
	q, clock := newTestQueue(t, config.QueueConfig{MaxAttempts: 3, BackoffBase: 5 * time.Second, KeepCompleted: 10, KeepFailed: 10})
	ctx := context.Background()

	id, err := q.Add(ctx, "SEND_SMS", smsPayload{To: "+1"})
	require.NoError(t, err)

	failing := func(ctx context.Context, job *Job) error { return errors.New("gateway 503") }

	ran, err := q.ProcessNext(ctx, failing)
	require.NoError(t, err)
	require.True(t, ran)

	job, err := q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateDelayed, job.State)
	assert.Equal(t, "gateway 503", job.FailedReason)

	// not due yet
	ran, err = q.ProcessNext(ctx, failing)
	require.NoError(t, err)
	assert.False(t, ran)

	*clock = clock.Add(5 * time.Second)
	ran, err = q.ProcessNext(ctx, failing)
	require.NoError(t, err)
	require.True(t, ran)

	// second retry waits twice as long
	*clock = clock.Add(9 * time.Second)
	ran, err = q.ProcessNext(ctx, failing)
	require.NoError(t, err)
	assert.False(t, ran)

	*clock = clock.Add(time.Second)
	ran, err = q.ProcessNext(ctx, failing)
	require.NoError(t, err)
	require.True(t, ran)

	job, err = q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, job.State)
	assert.Equal(t, 3, job.Attempts)

	counts, err := q.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Failed: 1}, counts)
}

func TestQueue_PermanentErrorSkipsRetries(t *testing.T) {
	q, _ := newTestQueue(t, config.QueueConfig{MaxAttempts: 5, BackoffBase: time.Second, KeepFailed: 10})
	ctx := context.Background()

	id, err := q.Add(ctx, "MYSTERY", struct{}{})
	require.NoError(t, err)

	_, err = q.ProcessNext(ctx, func(ctx context.Context, job *Job) error {
		return Permanent(errors.New("unknown job kind"))
	})
	require.NoError(t, err)

	job, err := q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, job.State)
	assert.Equal(t, 1, job.Attempts)
}

func TestQueue_PanicIsAFailedAttempt(t *testing.T) {
	q, _ := newTestQueue(t, config.QueueConfig{MaxAttempts: 1, KeepFailed: 10})
	ctx := context.Background()

	id, err := q.Add(ctx, "SEND_SMS", smsPayload{})
	require.NoError(t, err)

	_, err = q.ProcessNext(ctx, func(ctx context.Context, job *Job) error { panic("nil map") })
	require.NoError(t, err)

	job, err := q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, job.State)
	assert.Contains(t, job.FailedReason, "nil map")
}

func TestQueue_TrimsHistory(t *testing.T) {
	q, _ := newTestQueue(t, config.QueueConfig{MaxAttempts: 1, KeepCompleted: 2})
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		id, err := q.Add(ctx, "SEND_SMS", smsPayload{})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	for i := 0; i < 4; i++ {
		_, err := q.ProcessNext(ctx, func(ctx context.Context, job *Job) error { return nil })
		require.NoError(t, err)
	}

	counts, err := q.Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts.Completed)

	_, err = q.Get(ctx, ids[0])
	assert.ErrorIs(t, err, redis.Nil, "oldest job hash is dropped")
	_, err = q.Get(ctx, ids[3])
	assert.NoError(t, err)
}

func TestQueue_RecoverStalled(t *testing.T) {
	q, _ := newTestQueue(t, config.QueueConfig{MaxAttempts: 1})
	ctx := context.Background()

	id, err := q.Add(ctx, "SEND_SMS", smsPayload{})
	require.NoError(t, err)
	require.NoError(t, q.rdb.LMove(ctx, q.key("wait"), q.key("active"), "RIGHT", "LEFT").Err())

	moved, err := q.RecoverStalled(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	job, err := q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateWaiting, job.State)
}

func TestQueue_RecoverStalledRespectsLease(t *testing.T) {
	q, clock := newTestQueue(t, config.QueueConfig{MaxAttempts: 1, StalledAfter: time.Minute})
	ctx := context.Background()

	id, err := q.Add(ctx, "SEND_SMS", smsPayload{})
	require.NoError(t, err)
	claimed, err := q.claim(ctx)
	require.NoError(t, err)
	require.Equal(t, id, claimed)

	moved, err := q.RecoverStalled(ctx)
	require.NoError(t, err)
	assert.Zero(t, moved, "a job under a live lease stays active")

	*clock = clock.Add(2 * time.Minute)
	moved, err = q.RecoverStalled(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	counts, err := q.Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, counts.Active)
	assert.EqualValues(t, 1, counts.Waiting)
}

func TestQueue_TrimDeletesEveryDroppedHash(t *testing.T) {
	q, _ := newTestQueue(t, config.QueueConfig{MaxAttempts: 1})
	ctx := context.Background()

	list := q.key("completed")
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := q.Add(ctx, "SEND_SMS", smsPayload{})
		require.NoError(t, err)
		require.NoError(t, q.rdb.LPush(ctx, list, id).Err())
		ids = append(ids, id)
	}

	require.NoError(t, q.trim(ctx, list, 1))
	kept, err := q.rdb.LRange(ctx, list, 0, -1).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{ids[2]}, kept)
	for _, id := range ids[:2] {
		n, err := q.rdb.Exists(ctx, q.jobKey(id)).Result()
		require.NoError(t, err)
		assert.Zero(t, n, "hash of trimmed job %s", id)
	}

	require.NoError(t, q.trim(ctx, list, 0))
	n, err := q.rdb.Exists(ctx, list, q.jobKey(ids[2])).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestQueue_ConsumeStopsOnCancel(t *testing.T) {
	q, _ := newTestQueue(t, config.QueueConfig{MaxAttempts: 1, Concurrency: 2, KeepCompleted: 10})
	q.pollTimeout = 100 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())

	_, err := q.Add(ctx, "SEND_SMS", smsPayload{})
	require.NoError(t, err)

	done := make(chan struct{})
	handled := make(chan struct{}, 1)
	go func() {
		defer close(done)
		_ = q.Consume(ctx, func(ctx context.Context, job *Job) error {
			handled <- struct{}{}
			return nil
		})
	}()

	select {
	case <-handled:
	case <-time.After(5 * time.Second):
		t.Fatal("job was not consumed")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("consume did not stop")
	}
}
