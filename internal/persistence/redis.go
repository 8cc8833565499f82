package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/config"
)

// redisStartupWait bounds how long NewRedis waits for the broker.
const redisStartupWait = 5 * time.Second

// Redis is the broker connection shared by the notification queue and the
// readiness probe.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to the queue broker, retrying the first ping with
// exponential backoff. A broker that stays unreachable is logged, not fatal:
// enqueueing fails per call and the readiness probe reports it.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	log := logger.With(zap.String("addr", cfg.Addr()), zap.Int("db", cfg.DB))

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = redisStartupWait
	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return client.Ping(ctx).Err()
	}, policy)
	if err != nil {
		log.Warn("redis unreachable", zap.Int("attempts", attempts), zap.Error(err))
	} else {
		log.Info("connected to redis", zap.Int("attempts", attempts))
	}

	return &Redis{Client: client}
}

// Close releases the connection pool.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping satisfies the readiness probe.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
