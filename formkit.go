// Package formkit turns declarative field schemas into forms: it infers a
// widget per field, drives editing sessions through validation to a typed
// submit payload, and renders the result as HTML or terminal prompts. The
// pkg/blocks and pkg/posts packages carry the bilingual content model the
// built-in storefront schemas submit alongside.
package formkit

import (
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	internalParser "github.com/goliatone/go-formkit/internal/openapi/parser"
	internalLoader "github.com/goliatone/go-formkit/internal/schema/loader"
	"github.com/goliatone/go-formkit/pkg/engine"
	"github.com/goliatone/go-formkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// FieldSubset aliases render.FieldSubset for callers rendering part of a
// form.
type FieldSubset = render.FieldSubset

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads source, builds the form for target (empty for field
// schema documents) and renders it with the named renderer.
func GenerateHTML(ctx context.Context, source schema.Source, target, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:   source,
		Target:   target,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromDocument renders a form from a pre-loaded document,
// bypassing the loader stage.
func GenerateHTMLFromDocument(ctx context.Context, doc schema.Document, target, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document: &doc,
		Target:   target,
		Renderer: rendererName,
	})
}

// NewSession starts an editing session over form seeded with defaults.
func NewSession(form model.FormModel, defaults map[string]any, options ...engine.Option) *engine.Session {
	return engine.NewSession(form, defaults, options...)
}

// NewLoader constructs the default schema loader while keeping the concrete
// type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	return internalLoader.New(schema.NewLoaderOptions(options...))
}

// NewParser constructs the default OpenAPI parser.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// LoadSchema loads and parses a field schema document.
func LoadSchema(ctx context.Context, source schema.Source, options ...schema.LoaderOption) (schema.Schema, error) {
	doc, err := NewLoader(options...).Load(ctx, source)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("formkit: load schema: %w", err)
	}
	parsed, err := schema.Parse(doc)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("formkit: parse schema: %w", err)
	}
	return parsed, nil
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so
// callers can reuse or extend them without importing the renderer package.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider builds a go-theme selector from provider so renderers
// receive resolved partials and tokens.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
