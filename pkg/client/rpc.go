package client

import (
	"context"
	"log"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/example/smallfs/pkg/wire"
)

// callWithRetry executes an RPC call, retrying transient failures with
// exponential backoff
func (c *Client) callWithRetry(ctx context.Context, operation string, fn func(context.Context) error) error {
	op := func() (struct{}, error) {
		// Create a context with timeout
		callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()

		err := fn(callCtx)
		if err != nil && !wire.IsRetryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	notify := func(err error, delay time.Duration) {
		log.Printf("%s failed: %v. Retrying in %v", operation, err, delay)
	}

	b := backoff.NewExponentialBackOff()
	if c.config.RetryDelay > 0 {
		b.InitialInterval = c.config.RetryDelay
	}
	if c.config.BackoffFactor >= 1 {
		b.Multiplier = c.config.BackoffFactor
	}

	maxRetries := c.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	_, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithNotify(notify),
		backoff.WithMaxTries(uint(maxRetries+1)),
	)
	return err
}
