package errors

import "errors"

// Registry errors indicate problems with project or environment state.
var (
	// ErrAlreadyRegistered indicates the directory is already a registered project.
	ErrAlreadyRegistered = errors.New("project is already registered")

	// ErrNotRegistered indicates the directory is not inside a registered project.
	ErrNotRegistered = errors.New("project is not registered")

	// ErrUnknownEnvironment indicates the environment is not tracked for this project.
	ErrUnknownEnvironment = errors.New("environment is not tracked")

	// ErrInvalidPath indicates the tracked file does not resolve under the project root.
	ErrInvalidPath = errors.New("file path is outside the project root")

	// ErrRegistryCorrupt indicates the registry file could not be decoded.
	// The registry is never reset automatically; the user must inspect it.
	ErrRegistryCorrupt = errors.New("registry file is corrupt or unreadable")
)

// Remote configuration errors indicate problems with named remotes and bindings.
var (
	// ErrUnknownRemote indicates no remote is configured under the given name.
	ErrUnknownRemote = errors.New("remote is not configured")

	// ErrRemoteExists indicates a remote already exists under the given name.
	ErrRemoteExists = errors.New("remote already exists")

	// ErrRemoteInUse indicates the remote is still referenced by environment bindings.
	ErrRemoteInUse = errors.New("remote is still referenced by tracked environments")

	// ErrNoRemoteBinding indicates the environment has no remote binding.
	ErrNoRemoteBinding = errors.New("environment has no remote binding")
)

// Transport errors indicate failures talking to a remote storage backend.
var (
	// ErrRemoteNotFound indicates the object does not exist on the remote.
	ErrRemoteNotFound = errors.New("remote object not found")

	// ErrRemoteUnavailable indicates the backend could not be reached or refused
	// the request after retries were exhausted.
	ErrRemoteUnavailable = errors.New("remote backend unavailable")
)

// Sync errors indicate an interrupted or declined synchronization.
var (
	// ErrAborted indicates the user declined the confirmation prompt.
	// Nothing was written; the operation is safe to re-run.
	ErrAborted = errors.New("operation aborted")
)
