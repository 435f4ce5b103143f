package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/schema"
)

func (p *Parser) convertObject(id string, src *openapi3.Schema) (schema.Schema, error) {
	if src.Type != nil && !src.Type.Is(openapi3.TypeObject) {
		return schema.Schema{}, fmt.Errorf("expected an object schema, got %v", src.Type.Slice())
	}
	if len(src.Properties) == 0 {
		return schema.Schema{}, errors.New("object schema has no properties")
	}

	out := schema.New(id)
	out.Title = src.Title
	out.Description = src.Description

	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}

	for _, name := range fieldOrder(src, p.options.OrderExtension) {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		desc, ok := descriptor(ref.Value)
		if !ok {
			continue
		}
		desc.Rules.Required = required[name]
		out.Set(name, desc)
	}
	if out.Len() == 0 {
		return schema.Schema{}, errors.New("no property maps to a form field")
	}
	return out, nil
}

// fieldOrder lists the keys named by the order extension first, then the
// remaining properties alphabetically. Unknown names are ignored.
func fieldOrder(src *openapi3.Schema, extension string) []string {
	var ordered []string
	seen := make(map[string]struct{}, len(src.Properties))
	for _, name := range stringList(src.Extensions[extension]) {
		if _, ok := src.Properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		ordered = append(ordered, name)
	}

	rest := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

// descriptor maps one property. Nested objects have no field counterpart.
func descriptor(src *openapi3.Schema) (schema.FieldDescriptor, bool) {
	kind, ok := kindOf(src)
	if !ok {
		return schema.FieldDescriptor{}, false
	}
	desc := schema.FieldDescriptor{
		Kind:        kind,
		Label:       stringExt(src.Extensions, pkgopenapi.ExtensionLabel),
		Description: src.Description,
		Widget:      stringExt(src.Extensions, pkgopenapi.ExtensionWidget),
		Default:     src.Default,
	}
	if desc.Label == "" {
		desc.Label = src.Title
	}

	rules := &desc.Rules
	switch strings.ToLower(src.Format) {
	case "email":
		rules.Email = true
	case "uri", "url":
		rules.URL = true
	}
	if src.MinLength > 0 {
		n := int(src.MinLength)
		rules.MinLength = &n
	}
	if src.MaxLength != nil {
		n := int(*src.MaxLength)
		rules.MaxLength = &n
	}
	if src.Min != nil {
		v := *src.Min
		rules.Min = &v
	}
	if src.Max != nil {
		v := *src.Max
		rules.Max = &v
	}
	rules.Pattern = src.Pattern

	enumSource := src
	if kind == schema.KindArray {
		desc.Items = schema.KindString
		if src.Items != nil && src.Items.Value != nil {
			if items, ok := kindOf(src.Items.Value); ok && items != schema.KindArray {
				desc.Items = items
			}
			enumSource = src.Items.Value
		}
		if src.MinItems > 0 {
			n := int(src.MinItems)
			rules.MinLength = &n
		}
		if src.MaxItems != nil {
			n := int(*src.MaxItems)
			rules.MaxLength = &n
		}
	}
	for _, value := range enumSource.Enum {
		if s, ok := value.(string); ok {
			desc.Allow = append(desc.Allow, s)
		}
	}
	if ref := stringExt(src.Extensions, pkgopenapi.ExtensionEquals); ref != "" {
		desc.Valid = append(desc.Valid, schema.Ref{Field: ref})
	}
	return desc, true
}

func kindOf(src *openapi3.Schema) (schema.Kind, bool) {
	switch {
	case src.Type == nil:
		if len(src.Properties) > 0 {
			return "", false
		}
		return schema.KindString, true
	case src.Type.Is(openapi3.TypeString):
		switch src.Format {
		case "date", "date-time":
			return schema.KindDate, true
		}
		return schema.KindString, true
	case src.Type.Is(openapi3.TypeInteger), src.Type.Is(openapi3.TypeNumber):
		return schema.KindNumber, true
	case src.Type.Is(openapi3.TypeBoolean):
		return schema.KindBoolean, true
	case src.Type.Is(openapi3.TypeArray):
		return schema.KindArray, true
	default:
		return "", false
	}
}

func stringExt(ext map[string]any, key string) string {
	s, _ := ext[key].(string)
	return strings.TrimSpace(s)
}

func stringList(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
