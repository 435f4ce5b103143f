package engine

import (
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// state holds the current values and the messages from the last validation.
type state struct {
	values map[string]any
	errors validation.FieldErrors
}

func newState(form model.FormModel, defaults map[string]any) *state {
	values := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		if value, ok := defaults[field.Name]; ok {
			values[field.Name] = deepCopy(value)
			continue
		}
		switch {
		case field.Default != nil:
			values[field.Name] = deepCopy(field.Default)
		case field.Kind == schema.KindArray:
			values[field.Name] = []string{}
		case field.Kind == schema.KindBoolean:
			values[field.Name] = false
		default:
			values[field.Name] = ""
		}
	}
	return &state{values: values, errors: validation.FieldErrors{}}
}

func (s *state) snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		return append([]string{}, typed...)
	default:
		return typed
	}
}

func stringList(value any) []string {
	switch typed := value.(type) {
	case []string:
		return append([]string{}, typed...)
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if typed == "" {
			return []string{}
		}
		return []string{typed}
	default:
		return []string{}
	}
}
