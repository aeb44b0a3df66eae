package ui

import (
	"strings"

	"github.com/PolarWolf314/totara/internal/diff"
)

// RenderDiff formats diff entries for terminal output, one line per entry:
// added keys with a green '+', removed keys with a red '-', and changed
// keys with a yellow '~' showing both values. Returns "" for an empty diff.
func RenderDiff(entries []diff.Entry) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	for _, e := range entries {
		switch e.Op {
		case diff.Added:
			b.WriteString(Success.Sprintf("+ %s=%s", e.Key, e.New))
		case diff.Removed:
			b.WriteString(Error.Sprintf("- %s=%s", e.Key, e.Old))
		case diff.Changed:
			b.WriteString(Warning.Sprintf("~ %s=%s -> %s", e.Key, e.Old, e.New))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
