package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// ErrTargetNotFound is returned when no component or operation matches.
var ErrTargetNotFound = errors.New("openapi parser: target not found")

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	if options.OrderExtension == "" {
		options.OrderExtension = pkgopenapi.ExtensionOrder
	}
	return &Parser{options: options}
}

// Targets lists component schema names and operation ids.
func (p *Parser) Targets(ctx context.Context, doc schema.Document) ([]string, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	if spec.Components != nil {
		for name := range spec.Components.Schemas {
			seen[name] = struct{}{}
		}
	}
	for _, op := range operations(spec) {
		if op.OperationID != "" {
			seen[op.OperationID] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Schema converts the object schema behind target into a field schema.
func (p *Parser) Schema(ctx context.Context, doc schema.Document, target string) (schema.Schema, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return schema.Schema{}, err
	}

	ref, title := lookup(spec, target)
	if ref == nil || ref.Value == nil {
		return schema.Schema{}, fmt.Errorf("%w: %q in %s", ErrTargetNotFound, target, doc.Location())
	}
	out, err := p.convertObject(target, ref.Value)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("openapi parser: %s: %w", target, err)
	}
	if out.Title == "" {
		out.Title = title
	}
	return out, nil
}

func (p *Parser) load(ctx context.Context, doc schema.Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	return spec, nil
}

// lookup resolves a component schema first, then an operation request body.
func lookup(spec *openapi3.T, target string) (*openapi3.SchemaRef, string) {
	if spec.Components != nil {
		if ref, ok := spec.Components.Schemas[target]; ok {
			return ref, ""
		}
	}
	for _, op := range operations(spec) {
		if op.OperationID != target {
			continue
		}
		return requestSchema(op.RequestBody), op.Summary
	}
	return nil, ""
}

func operations(spec *openapi3.T) []*openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	var out []*openapi3.Operation
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{item.Post, item.Put, item.Patch} {
			if op != nil {
				out = append(out, op)
			}
		}
	}
	return out
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.SchemaRef {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mt.Schema
		}
	}
	for _, mt := range content {
		if mt != nil {
			return mt.Schema
		}
	}
	return nil
}
