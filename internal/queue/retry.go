package queue

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var perm *backoff.PermanentError
	return errors.As(err, &perm)
}

// retryDelay is base * 2^(attempt-1).
func retryDelay(base time.Duration, attempt int) time.Duration {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     base,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         24 * time.Hour,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()

	delay := base
	for i := 0; i < attempt; i++ {
		delay = b.NextBackOff()
	}
	return delay
}

// decideRetry reports whether a job that just failed its attempt-th run
// should be retried, and after how long.
func decideRetry(err error, attempt, maxAttempts int, base time.Duration) (bool, time.Duration) {
	if IsPermanent(err) || attempt >= maxAttempts {
		return false, 0
	}
	return true, retryDelay(base, attempt)
}
