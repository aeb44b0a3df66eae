package syncer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/totara/internal/diff"
	"github.com/PolarWolf314/totara/internal/envfile"
	terrors "github.com/PolarWolf314/totara/internal/errors"
	logger "github.com/PolarWolf314/totara/internal/logging"
	"github.com/PolarWolf314/totara/internal/registry"
	"github.com/PolarWolf314/totara/internal/storage"
)

// Confirmer gates mutating sync operations behind a yes/no decision.
// The CLI prompts on the terminal; tests substitute auto-yes/auto-no.
type Confirmer interface {
	Confirm(prompt string, entries []diff.Entry) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string, entries []diff.Entry) (bool, error)

func (f ConfirmFunc) Confirm(prompt string, entries []diff.Entry) (bool, error) {
	return f(prompt, entries)
}

// BackendOpener builds the storage backend for a configured remote.
type BackendOpener func(ctx context.Context, remote *registry.Remote) (storage.Backend, error)

// Engine orchestrates push, pull, and fetch between a tracked local file
// and its bound remote object. All collaborators are injected; the zero
// OpenBackend falls back to storage.Open.
type Engine struct {
	Registry    *registry.Registry
	Confirmer   Confirmer
	Logger      logger.Logger
	OpenBackend BackendOpener
}

// Result describes what a sync operation saw and did.
type Result struct {
	Environment string
	Remote      string
	Key         string

	// Entries is the diff that was (or would have been) applied.
	Entries []diff.Entry

	// Applied is false when the two sides were already identical and
	// nothing was written.
	Applied bool

	// Document is the content fetched (Fetch), pushed (Push), or written
	// locally (Pull).
	Document *envfile.Document
}

// Fetch retrieves and parses the remote content for the environment. It is
// read-only: the local file is never touched. A missing remote object
// surfaces as errors.ErrRemoteNotFound.
func (e *Engine) Fetch(ctx context.Context, project *registry.Project, envName string) (*Result, error) {
	env, remote, backend, err := e.resolve(ctx, project, envName)
	if err != nil {
		return nil, err
	}

	e.Logger.Debugf("Fetching %s:%s", remote.Name, env.Remote.Key)
	data, err := backend.Get(ctx, env.Remote.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", envName, err)
	}

	doc, err := envfile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("remote content for %s is malformed: %w", envName, err)
	}

	return &Result{
		Environment: envName,
		Remote:      remote.Name,
		Key:         env.Remote.Key,
		Document:    doc,
	}, nil
}

// Push uploads the local tracked file to the bound remote. The intended
// overwrite is presented as a diff remote→local; unless force is set, a
// non-empty diff requires confirmation. A missing remote object is treated
// as empty (a first push never fails on not-found). Declining the prompt
// returns errors.ErrAborted with no remote mutation.
func (e *Engine) Push(ctx context.Context, project *registry.Project, envName string, force bool) (*Result, error) {
	env, remote, backend, err := e.resolve(ctx, project, envName)
	if err != nil {
		return nil, err
	}

	localPath := registry.EnvFilePath(project, env)
	localDoc, err := envfile.ParseFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read local file for %s: %w", envName, err)
	}

	remoteDoc := envfile.New()
	data, err := backend.Get(ctx, env.Remote.Key)
	switch {
	case errors.Is(err, terrors.ErrRemoteNotFound):
		e.Logger.Debugf("Remote %s:%s does not exist yet, treating as empty", remote.Name, env.Remote.Key)
	case err != nil:
		return nil, fmt.Errorf("failed to read remote for %s: %w", envName, err)
	default:
		if remoteDoc, err = envfile.Parse(data); err != nil {
			return nil, fmt.Errorf("remote content for %s is malformed: %w", envName, err)
		}
	}

	result := &Result{
		Environment: envName,
		Remote:      remote.Name,
		Key:         env.Remote.Key,
		Entries:     diff.Compute(remoteDoc, localDoc),
		Document:    localDoc,
	}
	if len(result.Entries) == 0 {
		e.Logger.Infof("Remote %s:%s is already up to date", remote.Name, env.Remote.Key)
		return result, nil
	}

	if !force {
		prompt := fmt.Sprintf("Push %d change(s) to %s:%s?", len(result.Entries), remote.Name, env.Remote.Key)
		ok, err := e.Confirmer.Confirm(prompt, result.Entries)
		if err != nil {
			return nil, fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			return nil, terrors.ErrAborted
		}
	}

	if err := backend.Put(ctx, env.Remote.Key, envfile.Serialize(localDoc)); err != nil {
		return nil, fmt.Errorf("failed to push %s: %w", envName, err)
	}

	result.Applied = true
	return result, nil
}

// Pull downloads the remote content and overwrites the local tracked file.
// The intended overwrite is presented as a diff local→remote; unless force
// is set, a non-empty diff requires confirmation. Unlike a first push, a
// missing remote object is an error. The local file is replaced atomically
// via a temporary file and rename; no partial write is ever visible.
func (e *Engine) Pull(ctx context.Context, project *registry.Project, envName string, force bool) (*Result, error) {
	env, remote, backend, err := e.resolve(ctx, project, envName)
	if err != nil {
		return nil, err
	}

	data, err := backend.Get(ctx, env.Remote.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to pull %s: %w", envName, err)
	}
	remoteDoc, err := envfile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("remote content for %s is malformed: %w", envName, err)
	}

	localPath := registry.EnvFilePath(project, env)
	localDoc := envfile.New()
	if _, statErr := os.Stat(localPath); statErr == nil {
		if localDoc, err = envfile.ParseFile(localPath); err != nil {
			return nil, fmt.Errorf("failed to read local file for %s: %w", envName, err)
		}
	}

	result := &Result{
		Environment: envName,
		Remote:      remote.Name,
		Key:         env.Remote.Key,
		Entries:     diff.Compute(localDoc, remoteDoc),
		Document:    remoteDoc,
	}
	if len(result.Entries) == 0 {
		e.Logger.Infof("Local file for %s is already up to date", envName)
		return result, nil
	}

	if !force {
		prompt := fmt.Sprintf("Overwrite %s with %d change(s) from %s:%s?", env.File, len(result.Entries), remote.Name, env.Remote.Key)
		ok, err := e.Confirmer.Confirm(prompt, result.Entries)
		if err != nil {
			return nil, fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			return nil, terrors.ErrAborted
		}
	}

	if err := writeFileAtomic(localPath, envfile.Serialize(remoteDoc)); err != nil {
		return nil, fmt.Errorf("failed to write local file for %s: %w", envName, err)
	}

	result.Applied = true
	return result, nil
}

// resolve looks up the environment, its remote binding, and opens the
// backend. All resolution completes before any file or network I/O starts.
func (e *Engine) resolve(ctx context.Context, project *registry.Project, envName string) (*registry.Environment, *registry.Remote, storage.Backend, error) {
	env, err := e.Registry.Resolve(project, envName)
	if err != nil {
		return nil, nil, nil, err
	}
	if env.Remote == nil {
		return nil, nil, nil, fmt.Errorf("%w: %s", terrors.ErrNoRemoteBinding, envName)
	}

	remote, err := e.Registry.Remote(env.Remote.Remote)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("binding for %s is broken: %w", envName, err)
	}

	open := e.OpenBackend
	if open == nil {
		open = func(ctx context.Context, r *registry.Remote) (storage.Backend, error) {
			return storage.Open(ctx, r)
		}
	}
	backend, err := open(ctx, remote)
	if err != nil {
		return nil, nil, nil, err
	}

	return env, remote, backend, nil
}

// writeFileAtomic replaces path with data using a temp file in the same
// directory and an atomic rename. The temp file is removed on any failure.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
