package envfile

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// keyPattern matches valid environment variable names.
var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Document is an ordered key/value mapping parsed from an env file.
// Keys keep the position of their first occurrence; setting an existing
// key updates the value in place without moving it. This ordering is what
// makes diff output stable across runs.
type Document struct {
	keys   []string
	values map[string]string
}

// New returns an empty Document.
func New() *Document {
	return &Document{values: make(map[string]string)}
}

// Get returns the value for key and whether the key is present.
func (d *Document) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set stores value under key. A new key is appended; an existing key is
// updated in place, keeping its original position.
func (d *Document) Set(key, value string) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Len returns the number of keys in the document.
func (d *Document) Len() int {
	return len(d.keys)
}

// Keys returns the keys in document order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Equal reports whether two documents have the same keys in the same
// order with the same values.
func (d *Document) Equal(other *Document) bool {
	if len(d.keys) != len(other.keys) {
		return false
	}
	for i, k := range d.keys {
		if other.keys[i] != k {
			return false
		}
		if d.values[k] != other.values[k] {
			return false
		}
	}
	return true
}

// ParseError reports a malformed line in an env file.
type ParseError struct {
	Path string // empty when parsing raw bytes
	Line int    // 1-based line number
	Text string // the offending line
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: malformed line %q", e.Path, e.Line, e.Text)
	}
	return fmt.Sprintf("line %d: malformed line %q", e.Line, e.Text)
}

// Parse reads key=value lines into a Document.
//
// Blank lines and lines starting with '#' are skipped. An "export " prefix
// is accepted and stripped. Values may be wrapped in a single pair of
// matching quotes ('...' or "..."), which are removed; unquoted values have
// any trailing " # comment" stripped. A non-blank, non-comment line without
// '=' is a ParseError. Duplicate keys keep their first position and take
// the last value.
func Parse(data []byte) (*Document, error) {
	return parse(data, "")
}

// ParseFile reads and parses the env file at path. Parse errors carry the
// file path for reporting.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return parse(data, path)
}

func parse(data []byte, path string) (*Document, error) {
	doc := New()

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Normalize "export KEY=VALUE" to "KEY=VALUE".
		if rest, ok := strings.CutPrefix(line, "export"); ok && len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
			line = strings.TrimSpace(rest)
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			return nil, &ParseError{Path: path, Line: lineNo, Text: raw}
		}

		key := strings.TrimSpace(line[:eq])
		if !keyPattern.MatchString(key) {
			return nil, &ParseError{Path: path, Line: lineNo, Text: raw}
		}

		value := strings.TrimSpace(line[eq+1:])
		if unquoted, ok := stripQuotes(value); ok {
			value = unquoted
		} else if i := strings.Index(value, " #"); i >= 0 {
			value = strings.TrimSpace(value[:i])
		}

		doc.Set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan env file: %w", err)
	}

	return doc, nil
}

// stripQuotes removes one pair of matching surrounding quotes.
func stripQuotes(s string) (string, bool) {
	if len(s) < 2 {
		return s, false
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1], true
	}
	return s, false
}

// Serialize renders the document as KEY=VALUE lines in document order.
// Values containing whitespace, '#', or '=', and values that already look
// quoted, are wrapped in double quotes so that Parse(Serialize(d))
// reproduces d. Values are single-line; a value containing a newline
// (reachable only through Set, never through Parse) produces output that
// Parse rejects.
func Serialize(d *Document) []byte {
	var buf bytes.Buffer
	for _, key := range d.keys {
		value := d.values[key]
		if needsQuoting(value) {
			value = `"` + value + `"`
		}
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(value)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func needsQuoting(value string) bool {
	if strings.ContainsAny(value, " \t#=") {
		return true
	}
	// A value that already reads as a quoted pair would lose its wrapping
	// quotes on the next Parse; an outer pair keeps it intact.
	_, quoted := stripQuotes(value)
	return quoted
}
