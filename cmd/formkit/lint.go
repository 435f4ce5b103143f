package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const extensionNamespace = "x-formkit-"

type violation struct {
	file     string
	location string
	message  string
}

func (v violation) String() string {
	return fmt.Sprintf("%s: %s -> %s", v.file, v.location, v.message)
}

func runLint(ctx context.Context, _ *environment, args []string) error {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return errors.New("at least one OpenAPI document path is required")
	}

	var violations []violation
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		linted, err := lintDocument(ctx, path, raw)
		if err != nil {
			return fmt.Errorf("lint %s: %w", path, err)
		}
		violations = append(violations, linted...)
	}

	for _, v := range violations {
		fmt.Fprintln(os.Stderr, v)
	}
	if len(violations) > 0 {
		return fmt.Errorf("%d extension problem(s)", len(violations))
	}
	return nil
}

func lintDocument(ctx context.Context, file string, raw []byte) ([]violation, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	var result []violation
	if doc.Components != nil {
		names := make([]string, 0, len(doc.Components.Schemas))
		for name := range doc.Components.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			result = append(result, lintSchema(file, []string{"components", name}, doc.Components.Schemas[name])...)
		}
	}

	if doc.Paths != nil {
		paths := doc.Paths.Map()
		keys := make([]string, 0, len(paths))
		for key := range paths {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for method, op := range paths[key].Operations() {
				if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
					continue
				}
				id := op.OperationID
				if id == "" {
					id = method + " " + key
				}
				for mediaType, content := range op.RequestBody.Value.Content {
					if content == nil {
						continue
					}
					result = append(result, lintSchema(file, []string{"operation", id, mediaType}, content.Schema)...)
				}
			}
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].location == result[j].location {
			return result[i].message < result[j].message
		}
		return result[i].location < result[j].location
	})
	return result, nil
}

func lintSchema(file string, path []string, ref *openapi3.SchemaRef) []violation {
	if ref == nil || ref.Value == nil {
		return nil
	}
	// Referenced components are linted once, under their own name.
	if ref.Ref != "" && len(path) > 2 {
		return nil
	}
	schema := ref.Value

	properties := make(map[string]struct{}, len(schema.Properties))
	for name := range schema.Properties {
		properties[name] = struct{}{}
	}

	result := lintExtensions(file, path, schema.Extensions, properties, false)
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		next := appendPath(path, "properties."+name)
		result = append(result, lintExtensions(file, next, prop.Value.Extensions, properties, true)...)
	}
	return result
}

func lintExtensions(file string, path []string, extensions map[string]any, siblings map[string]struct{}, property bool) []violation {
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		if strings.HasPrefix(key, extensionNamespace) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var result []violation
	report := func(format string, args ...any) {
		result = append(result, violation{file: file, location: formatLocation(path), message: fmt.Sprintf(format, args...)})
	}
	for _, key := range keys {
		value := extensions[key]
		switch key {
		case pkgopenapi.ExtensionOrder:
			if property {
				report("%s belongs on the object schema", key)
				continue
			}
			list, ok := value.([]any)
			if !ok {
				report("%s must be a list of property names, found %T", key, value)
				continue
			}
			for _, item := range list {
				name, ok := item.(string)
				if !ok {
					report("%s entries must be strings, found %T", key, item)
					continue
				}
				if _, known := siblings[name]; !known {
					report("%s names unknown property %q", key, name)
				}
			}
		case pkgopenapi.ExtensionWidget:
			name, ok := value.(string)
			if !ok {
				report("%s must be a string, found %T", key, value)
				continue
			}
			if !widgets.Kind(name).Builtin() {
				report("unknown widget %q (supported: %s)", name, widgetNames())
			}
		case pkgopenapi.ExtensionLabel:
			if _, ok := value.(string); !ok {
				report("%s must be a string, found %T", key, value)
			}
		case pkgopenapi.ExtensionEquals:
			name, ok := value.(string)
			if !ok {
				report("%s must be a string, found %T", key, value)
				continue
			}
			if _, known := siblings[name]; !known {
				report("%s references unknown property %q", key, name)
			}
		default:
			report("unsupported extension %q", key)
		}
	}
	return result
}

func widgetNames() string {
	kinds := widgets.Builtins()
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return strings.Join(names, ", ")
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
