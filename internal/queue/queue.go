package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/citizen-engagement/internal/config"
)

// Handler processes one job. Returning an error fails the attempt; wrap it
// with Permanent to skip the remaining attempts.
type Handler func(ctx context.Context, job *Job) error

// Counts is the number of jobs in each state.
type Counts struct {
	Waiting   int64 `json:"waiting"`
	Active    int64 `json:"active"`
	Delayed   int64 `json:"delayed"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}

// Queue is a named job queue stored in Redis.
type Queue struct {
	rdb    *redis.Client
	name   string
	cfg    config.QueueConfig
	logger *zap.Logger

	pollTimeout time.Duration
	now         func() time.Time
}

// New binds a queue to a Redis client.
func New(rdb *redis.Client, cfg config.QueueConfig, logger *zap.Logger) *Queue {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.StalledAfter <= 0 {
		cfg.StalledAfter = time.Minute
	}
	return &Queue{
		rdb:         rdb,
		name:        cfg.Name,
		cfg:         cfg,
		logger:      logger.With(zap.String("queue", cfg.Name)),
		pollTimeout: 500 * time.Millisecond,
		now:         time.Now,
	}
}

func (q *Queue) key(part string) string { return "queue:" + q.name + ":" + part }
func (q *Queue) jobKey(id string) string { return q.key("job:" + id) }

// Add enqueues a job and returns its id.
func (q *Queue) Add(ctx context.Context, name string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	id := uuid.NewString()
	_, err = q.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, q.jobKey(id), map[string]any{
			"name":        name,
			"payload":     string(data),
			"attempts":    0,
			"maxAttempts": q.cfg.MaxAttempts,
			"state":       string(StateWaiting),
			"createdAt":   q.now().UnixMilli(),
		})
		pipe.LPush(ctx, q.key("wait"), id)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", name, err)
	}
	return id, nil
}

// Get loads a job by id. It returns redis.Nil when the job is unknown or was trimmed.
func (q *Queue) Get(ctx context.Context, id string) (*Job, error) {
	h, err := q.rdb.HGetAll(ctx, q.jobKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(h) == 0 {
		return nil, redis.Nil
	}
	return jobFromHash(id, h), nil
}

// Counts reports queue depth per state.
func (q *Queue) Counts(ctx context.Context) (Counts, error) {
	var (
		wait, active, completed, failed *redis.IntCmd
		delayed                         *redis.IntCmd
	)
	_, err := q.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		wait = pipe.LLen(ctx, q.key("wait"))
		active = pipe.LLen(ctx, q.key("active"))
		delayed = pipe.ZCard(ctx, q.key("delayed"))
		completed = pipe.LLen(ctx, q.key("completed"))
		failed = pipe.LLen(ctx, q.key("failed"))
		return nil
	})
	if err != nil {
		return Counts{}, err
	}
	return Counts{
		Waiting:   wait.Val(),
		Active:    active.Val(),
		Delayed:   delayed.Val(),
		Completed: completed.Val(),
		Failed:    failed.Val(),
	}, nil
}

// Moves due delayed jobs back to the wait list.
var promoteScript = redis.NewScript(`
local ids = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, 100)
for _, id in ipairs(ids) do
  redis.call('ZREM', KEYS[1], id)
  redis.call('LPUSH', KEYS[2], id)
  redis.call('HSET', ARGV[2] .. id, 'state', 'waiting')
end
return #ids
`)

func (q *Queue) promoteDelayed(ctx context.Context) (int64, error) {
	return promoteScript.Run(ctx, q.rdb,
		[]string{q.key("delayed"), q.key("wait")},
		q.now().UnixMilli(), q.key("job:"),
	).Int64()
}

// Moves one id from wait to active and stamps its lease.
var claimScript = redis.NewScript(`
local id = redis.call('RPOP', KEYS[1])
if not id then
  return false
end
redis.call('LPUSH', KEYS[2], id)
redis.call('HSET', ARGV[2] .. id, 'state', 'active', 'leaseUntil', ARGV[1])
return id
`)

// Requeues active jobs whose lease ran out. A missing lease counts as expired.
var recoverScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local moved = 0
for _, id in ipairs(redis.call('LRANGE', KEYS[1], 0, -1)) do
  local lease = tonumber(redis.call('HGET', ARGV[2] .. id, 'leaseUntil') or '0')
  if lease < now then
    redis.call('LREM', KEYS[1], 1, id)
    redis.call('LPUSH', KEYS[2], id)
    redis.call('HSET', ARGV[2] .. id, 'state', 'waiting')
    redis.call('HDEL', ARGV[2] .. id, 'leaseUntil')
    moved = moved + 1
  end
end
return moved
`)

// claim returns redis.Nil when nothing is waiting.
func (q *Queue) claim(ctx context.Context) (string, error) {
	return claimScript.Run(ctx, q.rdb,
		[]string{q.key("wait"), q.key("active")},
		q.leaseDeadline(), q.key("job:"),
	).Text()
}

func (q *Queue) leaseDeadline() int64 {
	return q.now().Add(q.cfg.StalledAfter).UnixMilli()
}

// RecoverStalled moves active jobs whose lease expired back to wait. Jobs
// held by a live worker keep a fresh lease and are left alone, so several
// worker processes can share a queue.
func (q *Queue) RecoverStalled(ctx context.Context) (int, error) {
	moved, err := recoverScript.Run(ctx, q.rdb,
		[]string{q.key("active"), q.key("wait")},
		q.now().UnixMilli(), q.key("job:"),
	).Int()
	return moved, err
}

// Consume runs cfg.Concurrency workers until ctx is cancelled.
func (q *Queue) Consume(ctx context.Context, handler Handler) error {
	if err := q.recover(ctx); err != nil {
		return fmt.Errorf("recover stalled jobs: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t := time.NewTicker(q.cfg.StalledAfter)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-t.C:
				if err := q.recover(gctx); err != nil && gctx.Err() == nil {
					q.logger.Warn("stalled job sweep failed", zap.Error(err))
				}
			}
		}
	})
	for i := 0; i < q.cfg.Concurrency; i++ {
		worker := i
		g.Go(func() error {
			q.loop(gctx, worker, handler)
			return nil
		})
	}
	return g.Wait()
}

func (q *Queue) recover(ctx context.Context) error {
	recovered, err := q.RecoverStalled(ctx)
	if err != nil {
		return err
	}
	if recovered > 0 {
		q.logger.Warn("requeued stalled jobs", zap.Int("count", recovered))
	}
	return nil
}

func (q *Queue) loop(ctx context.Context, worker int, handler Handler) {
	log := q.logger.With(zap.Int("worker", worker))
	for ctx.Err() == nil {
		if _, err := q.promoteDelayed(ctx); err != nil && ctx.Err() == nil {
			log.Warn("promote delayed jobs failed", zap.Error(err))
		}

		id, err := q.claim(ctx)
		if errors.Is(err, redis.Nil) {
			sleep(ctx, q.pollTimeout)
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("fetch job failed", zap.Error(err))
			sleep(ctx, q.pollTimeout)
			continue
		}

		// Finish bookkeeping even when shutdown starts mid-job.
		if err := q.process(context.WithoutCancel(ctx), id, handler); err != nil {
			log.Error("job bookkeeping failed", zap.String("job_id", id), zap.Error(err))
		}
	}
}

// heartbeat extends the job's lease until stop is closed.
func (q *Queue) heartbeat(ctx context.Context, id string, stop <-chan struct{}) {
	t := time.NewTicker(q.cfg.StalledAfter / 3)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if err := q.rdb.HSet(ctx, q.jobKey(id), "leaseUntil", q.leaseDeadline()).Err(); err != nil {
				q.logger.Warn("extend job lease failed", zap.String("job_id", id), zap.Error(err))
			}
		}
	}
}

func (q *Queue) process(ctx context.Context, id string, handler Handler) error {
	attempts, err := q.rdb.HIncrBy(ctx, q.jobKey(id), "attempts", 1).Result()
	if err != nil {
		return err
	}
	if err := q.rdb.HSet(ctx, q.jobKey(id),
		"state", string(StateActive),
		"processedAt", q.now().UnixMilli(),
	).Err(); err != nil {
		return err
	}

	job, err := q.Get(ctx, id)
	if err != nil {
		return err
	}
	job.Attempts = int(attempts)
	if job.MaxAttempts <= 0 {
		job.MaxAttempts = q.cfg.MaxAttempts
	}

	stop := make(chan struct{})
	go q.heartbeat(ctx, id, stop)
	runErr := q.run(ctx, job, handler)
	close(stop)
	if runErr == nil {
		q.logger.Debug("job completed", zap.String("job_id", id), zap.String("name", job.Name))
		return q.finish(ctx, id, StateCompleted, "", q.cfg.KeepCompleted)
	}

	retry, delay := decideRetry(runErr, job.Attempts, job.MaxAttempts, q.cfg.BackoffBase)
	if retry {
		q.logger.Warn("job failed, retrying",
			zap.String("job_id", id),
			zap.String("name", job.Name),
			zap.Int("attempt", job.Attempts),
			zap.Duration("delay", delay),
			zap.Error(runErr))
		_, err := q.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.LRem(ctx, q.key("active"), 1, id)
			pipe.ZAdd(ctx, q.key("delayed"), redis.Z{
				Score:  float64(q.now().Add(delay).UnixMilli()),
				Member: id,
			})
			pipe.HSet(ctx, q.jobKey(id), "state", string(StateDelayed), "failedReason", runErr.Error())
			pipe.HDel(ctx, q.jobKey(id), "leaseUntil")
			return nil
		})
		return err
	}

	q.logger.Error("job failed",
		zap.String("job_id", id),
		zap.String("name", job.Name),
		zap.Int("attempt", job.Attempts),
		zap.Bool("permanent", IsPermanent(runErr)),
		zap.Error(runErr))
	return q.finish(ctx, id, StateFailed, runErr.Error(), q.cfg.KeepFailed)
}

// run invokes handler, converting a panic into a failed attempt.
func (q *Queue) run(ctx context.Context, job *Job, handler Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("job panicked", zap.String("job_id", job.ID), zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return handler(ctx, job)
}

func (q *Queue) finish(ctx context.Context, id string, state JobState, reason string, keep int64) error {
	list := q.key(string(state))
	_, err := q.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, q.key("active"), 1, id)
		pipe.LPush(ctx, list, id)
		fields := []any{"state", string(state), "finishedAt", q.now().UnixMilli()}
		if reason != "" {
			fields = append(fields, "failedReason", reason)
		}
		pipe.HSet(ctx, q.jobKey(id), fields...)
		pipe.HDel(ctx, q.jobKey(id), "leaseUntil")
		return nil
	})
	if err != nil {
		return err
	}
	return q.trim(ctx, list, keep)
}

// Trims KEYS[1] to the newest ARGV[1] ids and deletes the hashes of the
// ids it drops, in one step so a concurrent push cannot be trimmed unseen.
var trimScript = redis.NewScript(`
local keep = tonumber(ARGV[1])
local stale = redis.call('LRANGE', KEYS[1], keep, -1)
if #stale == 0 then
  return 0
end
if keep == 0 then
  redis.call('DEL', KEYS[1])
else
  redis.call('LTRIM', KEYS[1], 0, keep - 1)
end
for _, id in ipairs(stale) do
  redis.call('DEL', ARGV[2] .. id)
end
return #stale
`)

func (q *Queue) trim(ctx context.Context, list string, keep int64) error {
	if keep < 0 {
		keep = 0
	}
	return trimScript.Run(ctx, q.rdb, []string{list}, keep, q.key("job:")).Err()
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
