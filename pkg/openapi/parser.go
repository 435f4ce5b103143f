package openapi

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Extension keys read from OpenAPI schemas.
const (
	ExtensionOrder  = "x-formkit-order"
	ExtensionWidget = "x-formkit-widget"
	ExtensionLabel  = "x-formkit-label"
	ExtensionEquals = "x-formkit-equals"
)

// Parser turns OpenAPI documents into field schemas.
type Parser interface {
	// Targets lists the component schema names and operation ids a form can
	// be derived from, sorted.
	Targets(ctx context.Context, doc schema.Document) ([]string, error)
	// Schema derives the field schema of a component or operation request
	// body. Components win when both share a name.
	Schema(ctx context.Context, doc schema.Document, target string) (schema.Schema, error)
}

// ParserOptions tune document loading.
type ParserOptions struct {
	// ResolveReferences validates the document and allows external $refs.
	ResolveReferences bool
	// OrderExtension names the extension holding the field order.
	OrderExtension string
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles document validation and external refs.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithOrderExtension reads field order from a different extension key.
func WithOrderExtension(key string) ParserOption {
	return func(opts *ParserOptions) {
		if key != "" {
			opts.OrderExtension = key
		}
	}
}

// NewParserOptions applies ParserOption functions over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ResolveReferences: false,
		OrderExtension:    ExtensionOrder,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
