package render

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is a hidden input rendered alongside the visible fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden builds a HiddenField from any value.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken carries an anti-forgery token under the caller's input name.
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MergeHiddenFields returns a copy of base with fields applied; later
// fields win and blank names are dropped.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name != "" {
			out[field.Name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields orders hidden fields by name for stable output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(fields))
	for name, value := range fields {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, HiddenField{Name: name, Value: value})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
