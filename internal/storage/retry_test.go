package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	terrors "github.com/PolarWolf314/totara/internal/errors"
)

// flakyBackend fails a configurable number of times before succeeding.
type flakyBackend struct {
	failures int
	err      error
	attempts int
}

func (f *flakyBackend) call() error {
	f.attempts++
	if f.attempts <= f.failures {
		return f.err
	}
	return nil
}

func (f *flakyBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return []byte("A=1\n"), nil
}

func (f *flakyBackend) Put(ctx context.Context, key string, data []byte) error {
	return f.call()
}

func (f *flakyBackend) Exists(ctx context.Context, key string) (bool, error) {
	if err := f.call(); err != nil {
		return false, err
	}
	return true, nil
}

func newTestRetrier(next Backend) (*retryingBackend, *[]time.Duration) {
	var sleeps []time.Duration
	r := &retryingBackend{
		next:  next,
		sleep: func(d time.Duration) { sleeps = append(sleeps, d) },
	}
	return r, &sleeps
}

func TestRetryTransientEventuallySucceeds(t *testing.T) {
	flaky := &flakyBackend{
		failures: 2,
		err:      markTransient(fmt.Errorf("%w: connection reset", terrors.ErrRemoteUnavailable)),
	}
	r, sleeps := newTestRetrier(flaky)

	data, err := r.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if string(data) != "A=1\n" {
		t.Errorf("Expected payload from the final attempt, got %q", data)
	}
	if flaky.attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", flaky.attempts)
	}
	if len(*sleeps) != 2 || (*sleeps)[0] != 200*time.Millisecond || (*sleeps)[1] != 400*time.Millisecond {
		t.Errorf("Expected 200ms then 400ms backoff, got %v", *sleeps)
	}
}

func TestRetryGivesUpAfterMaxRetries(t *testing.T) {
	flaky := &flakyBackend{
		failures: 10,
		err:      markTransient(fmt.Errorf("%w: timeout", terrors.ErrRemoteUnavailable)),
	}
	r, _ := newTestRetrier(flaky)

	err := r.Put(context.Background(), "k", []byte("x"))
	if !errors.Is(err, terrors.ErrRemoteUnavailable) {
		t.Fatalf("Expected ErrRemoteUnavailable, got %v", err)
	}
	if flaky.attempts != maxRetries+1 {
		t.Errorf("Expected %d attempts, got %d", maxRetries+1, flaky.attempts)
	}
}

func TestRetryNotFoundNotRetried(t *testing.T) {
	flaky := &flakyBackend{
		failures: 10,
		err:      fmt.Errorf("%w: k", terrors.ErrRemoteNotFound),
	}
	r, sleeps := newTestRetrier(flaky)

	_, err := r.Get(context.Background(), "k")
	if !errors.Is(err, terrors.ErrRemoteNotFound) {
		t.Fatalf("Expected ErrRemoteNotFound, got %v", err)
	}
	if flaky.attempts != 1 {
		t.Errorf("Expected a single attempt for not-found, got %d", flaky.attempts)
	}
	if len(*sleeps) != 0 {
		t.Errorf("Expected no backoff sleeps, got %v", *sleeps)
	}
}

func TestRetryAuthFailureNotRetried(t *testing.T) {
	// Auth failures are permanent ErrRemoteUnavailable, not marked transient.
	flaky := &flakyBackend{
		failures: 10,
		err:      fmt.Errorf("%w: access denied", terrors.ErrRemoteUnavailable),
	}
	r, _ := newTestRetrier(flaky)

	if _, err := r.Exists(context.Background(), "k"); !errors.Is(err, terrors.ErrRemoteUnavailable) {
		t.Fatalf("Expected ErrRemoteUnavailable, got %v", err)
	}
	if flaky.attempts != 1 {
		t.Errorf("Expected a single attempt for a permanent failure, got %d", flaky.attempts)
	}
}
