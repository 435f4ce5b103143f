package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/internal/logging"
	internalParser "github.com/goliatone/go-formkit/internal/openapi/parser"
	internalLoader "github.com/goliatone/go-formkit/internal/schema/loader"
	"github.com/goliatone/go-formkit/pkg/interfaces"
	"github.com/goliatone/go-formkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/posts"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/schema"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithBuiltins replaces the builtin schema set used by the default loader.
func WithBuiltins(files fs.FS) Option {
	return func(o *Orchestrator) {
		o.builtins = files
	}
}

// WithParser injects a custom OpenAPI parser for the default openapi adapter.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithAdapterRegistry injects a format adapter registry.
func WithAdapterRegistry(registry *AdapterRegistry) Option {
	return func(o *Orchestrator) {
		o.adapterRegistry = registry
	}
}

// WithDefaultAdapter names the adapter used when detection finds nothing.
func WithDefaultAdapter(name string) Option {
	return func(o *Orchestrator) {
		o.defaultAdapter = name
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that can mutate form models
// after building but before decorators run.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against the built form model
// before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the pipeline from a schema source to rendered
// output.
type Orchestrator struct {
	loader          schema.Loader
	builtins        fs.FS
	parser          pkgopenapi.Parser
	adapterRegistry *AdapterRegistry
	defaultAdapter  string
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	decorators      []model.Decorator
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	logger          interfaces.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		defaultAdapter:  AdapterFieldSchema,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one pipeline run.
type Request struct {
	// Source identifies where the schema lives. Optional when Document is
	// supplied.
	Source schema.Source

	// Document bypasses the loader.
	Document *schema.Document

	// Format names the adapter ("schema", "openapi"). Empty means detect.
	Format string

	// Target selects the OpenAPI component or operation id.
	Target string

	// SelectOptions are caller-provided choices keyed by field name. They
	// take precedence over schema enums.
	SelectOptions map[string][]model.Option

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request values, errors, locale and so on.
	RenderOptions render.RenderOptions

	// ThemeName and ThemeVariant are handed to the theme selector.
	ThemeName    string
	ThemeVariant string
}

// Generate loads, builds and renders the requested form.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("orchestrator.rendered", "form", form.ID, "renderer", renderer.Name(), "bytes", len(output))
	return output, nil
}

// Build runs every stage up to (not including) rendering and returns the
// decorated form model. Editing sessions start from it.
func (o *Orchestrator) Build(ctx context.Context, req Request) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return model.FormModel{}, err
	}
	adapter, err := o.resolveAdapter(req, doc)
	if err != nil {
		return model.FormModel{}, err
	}
	parsed, err := adapter.Schema(ctx, doc, req.Target)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: parse %s schema: %w", adapter.Name(), err)
	}

	form, err := o.builder.Build(parsed, req.SelectOptions)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if err := o.applyTransformer(ctx, &form); err != nil {
		return model.FormModel{}, err
	}
	if err := model.Apply(&form, o.decorators...); err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	o.logger.Debug("orchestrator.built", "form", form.ID, "adapter", adapter.Name(), "fields", len(form.Fields))
	return form, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *model.FormModel) error {
	if o.transformer == nil || form == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	o.logger = logging.Ensure(o.logger)

	if o.builtins == nil {
		o.builtins = posts.Builtins()
	}
	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions(schema.WithBuiltins(o.builtins)))
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.adapterRegistry == nil {
		o.adapterRegistry = NewAdapterRegistry()
		o.adapterRegistry.MustRegister(FieldSchemaAdapter{})
		o.adapterRegistry.MustRegister(OpenAPIAdapter{Parser: o.parser})
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
