package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
)

// ErrorMapping splits a server error payload into inline field messages and
// form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates message lists, trimming blanks and dropping
// duplicates while keeping order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload maps server error keys onto form fields. Keys may be plain
// names, dotted or JSON-pointer paths ("/body/title", "content.en[0].text"),
// or wrapped in request envelopes. The first segment that names a field wins;
// bilingual keys ("title.en", "en_title") fall back to their base field when
// the form splits them per language. Unmatched keys become form-level
// messages so nothing is lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	names := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			names[name] = struct{}{}
		}
	}

	for rawPath, messages := range payload {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		name, ok := matchField(rawPath, names)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[name] = normalizeMessages(append(mapping.Fields[name], messages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func matchField(raw string, names map[string]struct{}) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := dropWrapperSegments(parsePathSegments(raw))
	segments = stripNumericSegments(segments)
	if len(segments) == 0 {
		return "", false
	}

	head := segments[0]
	if _, ok := names[head]; ok {
		return head, true
	}
	// "title.en" against a form that edits enTitle / en_title
	if len(segments) > 1 {
		lang := segments[1]
		for _, candidate := range []string{lang + upperFirst(head), lang + "_" + head} {
			if _, ok := names[candidate]; ok {
				return candidate, true
			}
		}
	}
	return "", false
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for _, prefix := range []string{"#/", "$/", "$."} {
		clean = strings.TrimPrefix(clean, prefix)
	}
	clean = strings.TrimLeft(clean, "#/.$")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool { return r == '.' || r == '/' })
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		out = append(out, part)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body": {}, "request": {}, "payload": {}, "data": {}, "attributes": {},
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}
	return segments
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
