package client

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type maxRetriesError struct {
	tries   int
	lastErr error
}

func (e *maxRetriesError) Error() string {
	return fmt.Sprintf("%v after %d tries: %v", ErrMaxRetries, e.tries, e.lastErr)
}

func (e *maxRetriesError) Unwrap() []error {
	return []error{ErrMaxRetries, e.lastErr}
}

// retry calls attempt until it succeeds, returns an error not marked retryable, or the client's max tries is reached.
// The delay between attempts grows by the backoff factor each time.
func (c *Client) retry(ctx context.Context, attempt func() error) error {
	var (
		delay = c.delay
		err   error
	)
	for i := 0; i < c.maxTries; i++ {
		if i > 0 && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			delay = time.Duration(float64(delay) * c.backoff)
		} else if ctx.Err() != nil {
			return ctx.Err()
		}

		err = attempt()
		if err == nil || !errors.Is(err, errNotificationRetry) {
			return err
		}
	}
	if c.maxTries == 1 {
		return err
	}
	return &maxRetriesError{tries: c.maxTries, lastErr: err}
}
