// Package retry wraps the two backoff strategies the server needs around
// its two genuinely transient operations: binding the UDP socket at
// startup (a port can be briefly held by a dying previous instance) and
// sending a reply datagram (spec.md §7 allows an implementation to log and
// continue rather than treat sendto failure as always-fatal).
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Bind retries operation with an exponential backoff bounded by
// maxElapsed, logging each attempt's failure, adapted from the
// backoff.RetryNotify + backoff.WithContext pattern used for dial retries
// elsewhere in this codebase's lineage.
func Bind(ctx context.Context, maxElapsed time.Duration, operation func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxElapsed

	return backoff.RetryNotify(
		operation,
		backoff.WithContext(policy, ctx),
		func(err error, wait time.Duration) {
			logrus.WithFields(logrus.Fields{
				"component": "retry.Bind",
				"wait":      wait.String(),
			}).Warnf("bind attempt failed, retrying: %v", err)
		},
	)
}
