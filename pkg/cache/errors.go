package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks a failure to reach a Redis or MongoDB backend.
	ErrNetwork = errors.New("cache backend unreachable")

	// ErrUnknownBackend is returned by [Open] for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// RetryableError marks a transient backend failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as a [RetryableError]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff is a retry schedule with doubling delays.
type Backoff struct {
	Attempts int           // total calls, including the first
	Initial  time.Duration // delay before the second call
	Max      time.Duration // cap on any single delay
}

// DefaultBackoff keeps a flaky cache from stalling a run for long: the
// generator result is still returned when every attempt fails.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 100 * time.Millisecond, Max: time.Second}

// RetryWithBackoff runs fn under [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Retry(ctx, fn)
}

// Retry calls fn until it succeeds, returns an error not marked
// [Retryable], or the attempts run out. Cancellation of ctx while waiting
// returns ctx.Err().
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	delay := b.Initial
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if delay *= 2; b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
}
