package storage

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/totara/internal/registry"
)

// Supported backend kinds.
const (
	KindS3    = "s3"
	KindLocal = "local"
)

// Backend is the capability contract every remote storage implementation
// satisfies. The sync engine depends only on this interface.
//
// Get reports a missing object as errors.ErrRemoteNotFound. Exists never
// fails for absence, only for transport errors (errors.ErrRemoteUnavailable).
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Open builds the backend for a configured remote, dispatching on its
// backend kind. The returned backend retries transient transport failures
// per the policy in this package.
func Open(ctx context.Context, remote *registry.Remote) (Backend, error) {
	var (
		backend Backend
		err     error
	)

	switch remote.Backend {
	case KindS3:
		backend, err = newS3Backend(ctx, remote.Params)
	case KindLocal:
		backend, err = newLocalBackend(remote.Params)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (supported: %s, %s)", remote.Backend, KindS3, KindLocal)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open remote %s: %w", remote.Name, err)
	}

	return withRetry(backend), nil
}
