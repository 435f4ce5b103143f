package orchestrator

import (
	"context"

	"gopkg.in/yaml.v3"

	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Built-in adapter names.
const (
	AdapterFieldSchema = "schema"
	AdapterOpenAPI     = "openapi"
)

// FieldSchemaAdapter reads formkit field schemas (a top level "fields" map).
type FieldSchemaAdapter struct{}

func (FieldSchemaAdapter) Name() string { return AdapterFieldSchema }

func (FieldSchemaAdapter) Detect(_ schema.Source, raw []byte) bool {
	keys := topLevelKeys(raw)
	_, hasFields := keys["fields"]
	_, isOpenAPI := keys["openapi"]
	return hasFields && !isOpenAPI
}

func (FieldSchemaAdapter) Schema(ctx context.Context, doc schema.Document, _ string) (schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return schema.Schema{}, err
	}
	return schema.Parse(doc)
}

// OpenAPIAdapter derives a schema from an OpenAPI 3 component or operation.
type OpenAPIAdapter struct {
	Parser pkgopenapi.Parser
}

func (OpenAPIAdapter) Name() string { return AdapterOpenAPI }

func (OpenAPIAdapter) Detect(_ schema.Source, raw []byte) bool {
	_, ok := topLevelKeys(raw)["openapi"]
	return ok
}

func (a OpenAPIAdapter) Schema(ctx context.Context, doc schema.Document, target string) (schema.Schema, error) {
	return a.Parser.Schema(ctx, doc, target)
}

// topLevelKeys decodes the first mapping level of a YAML or JSON payload.
func topLevelKeys(raw []byte) map[string]struct{} {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil || len(node.Content) == 0 {
		return nil
	}
	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	keys := make(map[string]struct{}, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keys[root.Content[i].Value] = struct{}{}
	}
	return keys
}
