// Package diff computes key-level differences between two env documents.
package diff
