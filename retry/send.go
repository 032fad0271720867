package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// SendWrapper bounds the number of attempts made to deliver one reply
// datagram before the dispatcher gives up, logs, and moves on to the next
// recv. Adapted from the teacher's BackoffWrapper, trimmed to the single
// operation shape the dispatcher needs and returning the final error
// instead of printing it.
type SendWrapper struct {
	ctx     context.Context
	options []backoff.RetryOption
}

// NewSendWrapper configures a bounded retry policy for sendto. maxTries
// counts attempts, not additional retries.
func NewSendWrapper(ctx context.Context, initialInterval time.Duration, maxTries uint) *SendWrapper {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialInterval

	return &SendWrapper{
		ctx:     ctx,
		options: []backoff.RetryOption{backoff.WithBackOff(policy), backoff.WithMaxTries(maxTries)},
	}
}

// Do runs operation under the configured policy and returns the last
// error if every attempt failed.
func (s *SendWrapper) Do(operation func() error) error {
	_, err := backoff.Retry(s.ctx, func() (any, error) {
		return nil, operation()
	}, s.options...)
	return err
}
