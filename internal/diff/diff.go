package diff

import (
	"github.com/PolarWolf314/totara/internal/envfile"
)

// Op identifies the kind of change a diff entry represents.
type Op int

const (
	// Added means the key exists only in the target document.
	Added Op = iota
	// Removed means the key exists only in the source document.
	Removed
	// Changed means the key exists in both documents with different values.
	Changed
)

func (o Op) String() string {
	switch o {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	}
	return "unknown"
}

// Entry is one key-level difference between two documents.
// Old is set for Removed and Changed; New is set for Added and Changed.
type Entry struct {
	Op  Op
	Key string
	Old string
	New string
}

// Compute returns the key-level differences between source document a and
// target document b. Keys with identical values in both are omitted.
//
// Entries are emitted in union order: a's keys in a's order first, then any
// keys only in b, in b's order. Given deterministic input ordering the
// output is deterministic.
func Compute(a, b *envfile.Document) []Entry {
	var entries []Entry

	for _, key := range a.Keys() {
		oldVal, _ := a.Get(key)
		newVal, inB := b.Get(key)
		switch {
		case !inB:
			entries = append(entries, Entry{Op: Removed, Key: key, Old: oldVal})
		case oldVal != newVal:
			entries = append(entries, Entry{Op: Changed, Key: key, Old: oldVal, New: newVal})
		}
	}

	for _, key := range b.Keys() {
		if _, inA := a.Get(key); inA {
			continue
		}
		newVal, _ := b.Get(key)
		entries = append(entries, Entry{Op: Added, Key: key, New: newVal})
	}

	return entries
}
