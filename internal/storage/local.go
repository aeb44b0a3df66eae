package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/totara/internal/configs"
	terrors "github.com/PolarWolf314/totara/internal/errors"
)

// ParamPath overrides the base directory of the local backend.
const ParamPath = "path"

// localBackend stores objects as plain files under a base directory.
// Useful for machine-local syncing and for exercising the sync pipeline
// without cloud credentials.
type localBackend struct {
	baseDir string
}

func newLocalBackend(params map[string]string) (Backend, error) {
	baseDir := params[ParamPath]
	if baseDir == "" {
		baseDir = configs.UserTotaraSettings.StorageDir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &localBackend{baseDir: baseDir}, nil
}

func (l *localBackend) Get(_ context.Context, key string) ([]byte, error) {
	path, err := l.resolve(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", terrors.ErrRemoteNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", terrors.ErrRemoteUnavailable, key, err)
	}
	return data, nil
}

func (l *localBackend) Put(_ context.Context, key string, data []byte) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("%w: %s: %s", terrors.ErrRemoteUnavailable, key, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: %s: %s", terrors.ErrRemoteUnavailable, key, err)
	}
	return nil
}

func (l *localBackend) Exists(_ context.Context, key string) (bool, error) {
	path, err := l.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %s: %s", terrors.ErrRemoteUnavailable, key, err)
	}
	return true, nil
}

// resolve joins key under the base directory, rejecting keys that would
// escape it.
func (l *localBackend) resolve(key string) (string, error) {
	path := filepath.Join(l.baseDir, filepath.FromSlash(key))
	if path != l.baseDir && !strings.HasPrefix(path, l.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return path, nil
}
