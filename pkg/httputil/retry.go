package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
)

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrNetwork covers connection failures, timeouts, throttling and 5xx
	// responses.
	ErrNetwork = errors.New("network error")
)

// maxRetryAfter caps how long a server may ask us to wait.
const maxRetryAfter = time.Minute

// RetryableError marks an error as transient. [Retry] only retries errors of
// this type. After, when set, replaces the backoff delay before the next
// attempt.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err; nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err was wrapped with [Retryable].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// throttled wraps err for a 429 or 503 response, honouring a Retry-After
// header given in seconds.
func throttled(err error, h http.Header) error {
	re := &RetryableError{Err: err}
	if s, convErr := strconv.Atoi(h.Get("Retry-After")); convErr == nil && s > 0 {
		re.After = min(time.Duration(s)*time.Second, maxRetryAfter)
	}
	return re
}

// Retry calls fn up to attempts times. After a retryable failure it waits
// delay, doubling it each time, or the wait the failure asked for. Other
// errors are returned immediately; cancellation returns ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := delay
		if re.After > 0 {
			wait = re.After
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			delay *= 2
		}
	}
	return lastErr
}
