// Package errors provides typed error values for the Totara application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Registry errors: project/environment state (ErrNotRegistered, ErrUnknownEnvironment)
//   - Remote configuration errors: named remotes and bindings (ErrUnknownRemote, ErrNoRemoteBinding)
//   - Transport errors: backend failures (ErrRemoteNotFound, ErrRemoteUnavailable)
//   - Sync errors: declined or interrupted operations (ErrAborted)
//
// # Usage
//
// Return errors from internal packages:
//
//	if env.Remote == nil {
//	    return terrors.ErrNoRemoteBinding
//	}
//
// Handle errors in the CLI layer:
//
//	err := engine.Push(ctx, project, env, force)
//	if errors.Is(err, terrors.ErrAborted) {
//	    // Show "nothing was pushed" message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("pushing %s: %w", env.Name, err)
package errors
