package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// refKey is the mapping key that turns an enum entry into a Ref marker, e.g.
// `valid: [{$ref: password}]`.
const refKey = "$ref"

type fieldSpec struct {
	Kind        string   `yaml:"kind"`
	Items       string   `yaml:"items"`
	Label       string   `yaml:"label"`
	Description string   `yaml:"description"`
	Widget      string   `yaml:"widget"`
	Default     any      `yaml:"default"`
	Allow       []any    `yaml:"allow"`
	Valid       []any    `yaml:"valid"`
	Whitelist   []any    `yaml:"whitelist"`
	Required    bool     `yaml:"required"`
	Email       bool     `yaml:"email"`
	URL         bool     `yaml:"url"`
	MinLength   *int     `yaml:"minLength"`
	MaxLength   *int     `yaml:"maxLength"`
	Min         *float64 `yaml:"min"`
	Max         *float64 `yaml:"max"`
	Pattern     string   `yaml:"pattern"`
}

// Parse decodes a YAML or JSON schema document. Field order follows the
// order of the `fields` mapping in the document.
func Parse(doc Document) (Schema, error) {
	if doc.Format() == FormatOpenAPI {
		return Schema{}, fmt.Errorf("schema: %s is an OpenAPI document, use the openapi adapter", doc.Location())
	}

	var root yaml.Node
	if err := yaml.Unmarshal(doc.raw, &root); err != nil {
		return Schema{}, fmt.Errorf("schema: decode %s: %w", doc.Location(), err)
	}
	body := &root
	if body.Kind == yaml.DocumentNode && len(body.Content) > 0 {
		body = body.Content[0]
	}
	if body.Kind != yaml.MappingNode {
		return Schema{}, fmt.Errorf("schema: %s: expected a mapping at the document root", doc.Location())
	}

	var out Schema
	for i := 0; i+1 < len(body.Content); i += 2 {
		key, value := body.Content[i].Value, body.Content[i+1]
		switch key {
		case "id":
			out.ID = value.Value
		case "title":
			out.Title = value.Value
		case "description":
			out.Description = value.Value
		case "fields":
			if err := parseFields(&out, value); err != nil {
				return Schema{}, fmt.Errorf("schema: %s: %w", doc.Location(), err)
			}
		}
	}
	if out.Len() == 0 {
		return Schema{}, fmt.Errorf("schema: %s declares no fields", doc.Location())
	}
	return out, nil
}

// MustParse panics when Parse fails. Intended for embedded schemas.
func MustParse(doc Document) Schema {
	s, err := Parse(doc)
	if err != nil {
		panic(err)
	}
	return s
}

func parseFields(out *Schema, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("fields must be a mapping of key to descriptor")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		desc, err := parseDescriptor(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		if err := out.Add(key, desc); err != nil {
			return err
		}
	}
	return nil
}

func parseDescriptor(node *yaml.Node) (FieldDescriptor, error) {
	// `name: string` is shorthand for `name: {kind: string}`.
	if node.Kind == yaml.ScalarNode {
		return FieldDescriptor{Kind: Kind(strings.ToLower(node.Value))}, nil
	}

	var spec fieldSpec
	if err := node.Decode(&spec); err != nil {
		return FieldDescriptor{}, err
	}
	kind := Kind(strings.ToLower(strings.TrimSpace(spec.Kind)))
	if kind == "" {
		kind = KindString
	}
	return FieldDescriptor{
		Kind:        kind,
		Items:       Kind(strings.ToLower(strings.TrimSpace(spec.Items))),
		Label:       spec.Label,
		Description: spec.Description,
		Widget:      strings.TrimSpace(spec.Widget),
		Default:     spec.Default,
		Allow:       decodeCandidates(spec.Allow),
		Valid:       decodeCandidates(spec.Valid),
		Whitelist:   decodeCandidates(spec.Whitelist),
		Rules: Rules{
			Required:  spec.Required,
			Email:     spec.Email,
			URL:       spec.URL,
			MinLength: spec.MinLength,
			MaxLength: spec.MaxLength,
			Min:       spec.Min,
			Max:       spec.Max,
			Pattern:   spec.Pattern,
		},
	}, nil
}

func decodeCandidates(raw []any) []any {
	if len(raw) == 0 {
		return nil
	}
	out := make([]any, 0, len(raw))
	for _, candidate := range raw {
		if m, ok := candidate.(map[string]any); ok {
			if field, ok := m[refKey].(string); ok {
				out = append(out, Ref{Field: field})
				continue
			}
		}
		out = append(out, candidate)
	}
	return out
}
