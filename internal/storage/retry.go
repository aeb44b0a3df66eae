package storage

import (
	"context"
	"errors"
	"time"
)

// Transient transport failures are retried up to maxRetries times with
// exponential backoff starting at baseDelay. Not-found and auth failures
// are never retried.
const (
	maxRetries = 2
	baseDelay  = 200 * time.Millisecond
)

// transientError marks a failure as safe to retry. Backends wrap
// network-layer errors with markTransient; everything else is permanent.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func markTransient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// retryingBackend decorates a Backend with the retry policy.
type retryingBackend struct {
	next  Backend
	sleep func(time.Duration) // replaced in tests
}

func withRetry(b Backend) Backend {
	return &retryingBackend{next: b, sleep: time.Sleep}
}

func (r *retryingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.do(ctx, func() error {
		var err error
		data, err = r.next.Get(ctx, key)
		return err
	})
	return data, err
}

func (r *retryingBackend) Put(ctx context.Context, key string, data []byte) error {
	return r.do(ctx, func() error {
		return r.next.Put(ctx, key, data)
	})
}

func (r *retryingBackend) Exists(ctx context.Context, key string) (bool, error) {
	var ok bool
	err := r.do(ctx, func() error {
		var err error
		ok, err = r.next.Exists(ctx, key)
		return err
	})
	return ok, err
}

func (r *retryingBackend) do(ctx context.Context, op func() error) error {
	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := op()
		if err == nil || !isTransient(err) || attempt == maxRetries {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.sleep(delay)
		delay *= 2
	}
}
