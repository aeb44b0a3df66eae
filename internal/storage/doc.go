// Package storage abstracts the remote object stores env files sync with.
//
// The Backend interface is a minimal key/value blob contract: Get, Put,
// Exists. The sync engine depends only on this interface; adding a new
// backend means implementing it and adding one case to Open's dispatch.
//
// # Backends
//
//   - s3: AWS S3 (or any S3-compatible endpoint the SDK can reach).
//     Credentials come from a shared-config profile, static keys stored in
//     the remote params, or the SDK's default chain.
//   - local: plain files under a base directory. Used for machine-local
//     syncing and in tests.
//
// # Error Contract
//
// A missing object is errors.ErrRemoteNotFound from Get, and (false, nil)
// from Exists. Every other failure is errors.ErrRemoteUnavailable.
//
// # Retry Policy
//
// Open wraps every backend with a retry decorator: transient network
// failures are retried up to 2 times with exponential backoff starting at
// 200ms. Not-found and auth/permission failures are never retried.
package storage
