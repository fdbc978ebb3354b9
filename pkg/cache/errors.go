package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for cache operations.
var (
	// ErrNotFound is returned when a requested entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss is returned when a key is absent or expired.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks an error as worth retrying.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError. A nil error stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap exposes the wrapped error to errors.Is/As.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// maxRetries bounds RetryWithBackoff. Redis connection blips are the intended
// use; anything still failing after three attempts is not transient.
const maxRetries = 3

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable error,
// or exhausts the attempt budget. The delay starts at one second and doubles
// between attempts.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := time.Second

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) || attempt == maxRetries {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
