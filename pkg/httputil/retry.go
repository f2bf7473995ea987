package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a transient failure that [Policy.Do] retries.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	Attempts int           // total tries; values below 1 mean one try
	Delay    time.Duration // wait before the second try, doubled after each failure
	MaxDelay time.Duration // cap on a single wait; 0 leaves it uncapped
}

// DefaultPolicy is used by the data source and the cache backends: three
// tries, waiting 1s and then 2s.
var DefaultPolicy = Policy{Attempts: 3, Delay: time.Second, MaxDelay: 30 * time.Second}

// Do calls fn until it succeeds, fails with an error that is not retryable,
// or runs out of attempts. The last error is returned unwrapped from its
// [RetryableError]; cancellation returns ctx.Err().
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay

	var lastErr error
	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		lastErr = re.Err

		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
		if p.MaxDelay > 0 {
			delay = min(delay, p.MaxDelay)
		}
	}
	return lastErr
}

// Retry runs fn under a policy of attempts tries starting at delay.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	return Policy{Attempts: attempts, Delay: delay, MaxDelay: DefaultPolicy.MaxDelay}.Do(ctx, fn)
}
