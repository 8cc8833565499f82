package queue

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ProcessNext runs at most one waiting job. It reports false when none was ready.
func (q *Queue) ProcessNext(ctx context.Context, handler Handler) (bool, error) {
	if _, err := q.promoteDelayed(ctx); err != nil {
		return false, err
	}
	id, err := q.claim(ctx)
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, q.process(ctx, id, handler)
}
