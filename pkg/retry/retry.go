package retry

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// Policy applies a bounded exponential-backoff retry to an external call.
// Every external boundary (transcription, classification, completion) runs
// through the same policy so retry behavior is configured in one place.
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// SingleAttempt is the default policy: each call is issued exactly once and a
// transient failure is a terminal failure for that stage.
func SingleAttempt() Policy {
	return Policy{MaxAttempts: 1}
}

// Do runs fn under the policy. With MaxAttempts of 1 it behaves as a plain
// call; with more attempts it retries with exponential backoff between tries.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	if attempts == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn()
	}

	bo := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		bo.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		bo.MaxInterval = p.MaxInterval
	}

	limited := backoff.WithMaxRetries(bo, uint64(attempts-1))
	return backoff.Retry(fn, backoff.WithContext(limited, ctx))
}
