// Package syncer orchestrates push, pull, and fetch between a tracked
// local env file and the remote object its environment is bound to.
//
// Every operation follows the same shape: resolve the binding first, read
// and compare both sides next, and only then mutate, so the user always
// sees the diff before anything is overwritten (unless --force skips the
// prompt). Side effects are confined to the final apply step: a declined
// confirmation aborts with nothing written, and local overwrites go
// through a temp-file-and-rename so a failed pull never leaves a partial
// file behind.
package syncer
