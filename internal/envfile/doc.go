// Package envfile parses and serializes key=value environment files.
//
// Documents preserve key order (first occurrence wins the position, last
// value wins the content) so that diffing two files produces stable,
// deterministic output.
package envfile
