package validation

import (
	"errors"
	"sort"
	"strings"
)

var (
	errNotNumber  = errors.New("number")
	errNotBoolean = errors.New("boolean")
	errNotDate    = errors.New("date")
	errNotList    = errors.New("list")
)

// FieldErrors holds validation messages keyed by field name.
type FieldErrors map[string][]string

// Add appends a message for field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether field has messages.
func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// First returns the first message for field, or "".
func (e FieldErrors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Clone copies the map and its slices.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Error lists the messages sorted by field name.
func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e[k], "; "))
	}
	return strings.Join(parts, ", ")
}
