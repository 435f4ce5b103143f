package schema

import (
	"fmt"
	"strings"
)

// Kind is the primitive kind declared for a field.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindDate    Kind = "date"
	KindArray   Kind = "array"
)

// Known reports whether the kind is one of the declared primitive kinds.
func (k Kind) Known() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindDate, KindArray:
		return true
	default:
		return false
	}
}

// Ref marks a cross-field comparison ("must equal the value of Field"). Refs
// share the enum slots with literal values and are never offered as choices.
type Ref struct {
	Field string
}

func (r Ref) String() string {
	return "ref:" + r.Field
}

// Rules carries the validation constraints declared on a field.
type Rules struct {
	Required  bool     `json:"required,omitempty"`
	Email     bool     `json:"email,omitempty"`
	URL       bool     `json:"url,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
}

// FieldDescriptor describes a single schema entry. Allow, Valid and Whitelist
// are the three candidate enum sources, consulted in that order.
type FieldDescriptor struct {
	Kind        Kind   `json:"kind"`
	Items       Kind   `json:"items,omitempty"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
	Widget      string `json:"widget,omitempty"`
	Default     any    `json:"default,omitempty"`
	Allow       []any  `json:"allow,omitempty"`
	Valid       []any  `json:"valid,omitempty"`
	Whitelist   []any  `json:"whitelist,omitempty"`
	Rules       Rules  `json:"rules"`
}

// AllowedValues returns the enumerated values declared on the descriptor.
// The first source yielding at least one plain, non-empty string wins;
// non-strings and Ref markers are dropped.
func (d FieldDescriptor) AllowedValues() []string {
	for _, source := range [][]any{d.Allow, d.Valid, d.Whitelist} {
		if values := stringCandidates(source); len(values) > 0 {
			return values
		}
	}
	return nil
}

// Refs lists the fields referenced by Ref markers in any enum source.
func (d FieldDescriptor) Refs() []string {
	var out []string
	seen := map[string]struct{}{}
	for _, source := range [][]any{d.Allow, d.Valid, d.Whitelist} {
		for _, candidate := range source {
			ref, ok := asRef(candidate)
			if !ok || ref.Field == "" {
				continue
			}
			if _, dup := seen[ref.Field]; dup {
				continue
			}
			seen[ref.Field] = struct{}{}
			out = append(out, ref.Field)
		}
	}
	return out
}

func stringCandidates(source []any) []string {
	var out []string
	for _, candidate := range source {
		value, ok := candidate.(string)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}

func asRef(candidate any) (Ref, bool) {
	switch typed := candidate.(type) {
	case Ref:
		return typed, true
	case *Ref:
		if typed == nil {
			return Ref{}, false
		}
		return *typed, true
	default:
		return Ref{}, false
	}
}

// Field pairs a key with its descriptor.
type Field struct {
	Key        string
	Descriptor FieldDescriptor
}

// Schema is an ordered mapping of field keys to descriptors. Iteration order
// is insertion order.
type Schema struct {
	ID          string
	Title       string
	Description string

	fields []Field
	index  map[string]int
}

// New builds a schema from ordered fields. Duplicate keys keep their first
// position and take the last descriptor.
func New(id string, fields ...Field) Schema {
	s := Schema{ID: id}
	for _, field := range fields {
		s.Set(field.Key, field.Descriptor)
	}
	return s
}

// Add appends a new key. Adding an existing key is an error.
func (s *Schema) Add(key string, desc FieldDescriptor) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("schema: field key is required")
	}
	if _, exists := s.index[key]; exists {
		return fmt.Errorf("schema: duplicate field %q", key)
	}
	s.Set(key, desc)
	return nil
}

// Set inserts or replaces the descriptor stored for key.
func (s *Schema) Set(key string, desc FieldDescriptor) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if pos, ok := s.index[key]; ok {
		s.fields[pos].Descriptor = desc
		return
	}
	s.index[key] = len(s.fields)
	s.fields = append(s.fields, Field{Key: key, Descriptor: desc})
}

// Field looks up the descriptor for key.
func (s Schema) Field(key string) (FieldDescriptor, bool) {
	pos, ok := s.index[key]
	if !ok {
		return FieldDescriptor{}, false
	}
	return s.fields[pos].Descriptor, true
}

// Fields returns a copy of the ordered fields.
func (s Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Keys returns the field keys in schema order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, field := range s.fields {
		keys[i] = field.Key
	}
	return keys
}

// Len reports the number of fields.
func (s Schema) Len() int {
	return len(s.fields)
}

// Option is a caller-supplied select choice.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
