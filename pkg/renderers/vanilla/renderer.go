package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	gotemplate "github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// PartialForm is the theme partial key for the form chrome template.
const PartialForm = "forms.form"

const formTemplate = "templates/form.tmpl"

// DefaultPartials lists the embedded template behind every partial key a
// theme can override.
func DefaultPartials() map[string]string {
	partials := components.DefaultPartials()
	partials[PartialForm] = formTemplate
	return partials
}

// Chrome message keys. Translators may override any of them.
const (
	MessageSubmit            = "formkit.submit"
	MessageSelectPlaceholder = "formkit.select.placeholder"
	MessageArrayAdd          = "formkit.array.add"
	MessageArrayRemove       = "formkit.array.remove"
	MessagePasswordToggle    = "formkit.password.toggle"
)

var chromeMessages = i18n.NewCatalog().
	Add(i18n.English, map[string]string{
		MessageSubmit:            "Submit",
		MessageSelectPlaceholder: "Select an option",
		MessageArrayAdd:          "Add",
		MessageArrayRemove:       "Remove",
		MessagePasswordToggle:    "Show password",
	}).
	Add(i18n.Arabic, map[string]string{
		MessageSubmit:            "إرسال",
		MessageSelectPlaceholder: "اختر خيارًا",
		MessageArrayAdd:          "إضافة",
		MessageArrayRemove:       "إزالة",
		MessagePasswordToggle:    "إظهار كلمة المرور",
	})

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	overrides        map[string]string
	classes          ChromeClasses
	stylesheets      []string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithComponentOverrides renders the named fields with specific components.
func WithComponentOverrides(overrides map[string]string) Option {
	return func(cfg *config) {
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]string, len(overrides))
		}
		maps.Copy(cfg.overrides, overrides)
	}
}

// WithChromeClasses appends caller classes to the chrome elements.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// WithStylesheet links an extra stylesheet.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithDefaultStyles inlines the bundled stylesheet.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer renders forms to HTML, one template per widget kind.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	cfg       config
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		fsys := []gotemplate.Option{gotemplate.WithExtension(".tmpl"), gotemplate.WithFS(cfg.templateFS)}
		if cfg.templateFS != TemplatesFS() {
			// custom bundles may override only some templates
			fsys = append(fsys, gotemplate.WithFS(TemplatesFS()))
		}
		engine, err := gotemplate.New(fsys...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, cfg: cfg}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form markup. The form is copied before subset
// filtering and localisation, so callers can reuse it.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form.Fields = slices.Clone(form.Fields)
	render.ApplySubset(&form, opts.Subset)
	render.LocalizeFormModel(&form, opts)

	lang := opts.Language()
	msg := r.messages(opts, lang)

	var partials map[string]string
	if opts.Theme != nil {
		partials = opts.Theme.Partials
	}
	fields := newComponentRenderer(r.templates, r.cfg.registry, r.cfg.overrides, partials, map[string]any{
		"addLabel":    msg(MessageArrayAdd),
		"removeLabel": msg(MessageArrayRemove),
		"toggleLabel": msg(MessagePasswordToggle),
	})

	entries := make([]fieldEntry, 0, len(form.Fields))
	multipart := false
	for _, field := range form.Fields {
		entry, err := fields.render(buildView(field, opts, msg(MessageSelectPlaceholder)))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		if widgets.IsUpload(field.Widget) {
			multipart = true
		}
		entries = append(entries, entry)
	}

	stylesheets, scripts := fields.assets()
	stylesheets = append(slices.Clone(r.cfg.stylesheets), stylesheets...)
	if opts.Theme != nil && opts.Theme.AssetURL != nil {
		if href := opts.Theme.AssetURL(StylesheetName); href != "" {
			stylesheets = append(stylesheets, href)
		}
	}

	style := render.CSSVarsStyle(opts.Theme)
	if r.cfg.inlineStyles {
		style = strings.TrimSpace(style + "\n" + defaultStylesheet())
	}

	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = "POST"
	}

	hidden := make([]map[string]string, 0, len(opts.HiddenFields))
	for _, field := range render.SortedHiddenFields(opts.HiddenFields) {
		hidden = append(hidden, map[string]string{"name": field.Name, "value": field.Value})
	}

	scriptViews := make([]map[string]any, 0, len(scripts))
	for _, script := range scripts {
		scriptViews = append(scriptViews, map[string]any{
			"src":    script.Src,
			"inline": script.Inline,
			"defer":  script.Defer,
			"module": script.Module,
		})
	}

	tmpl := formTemplate
	if candidate := strings.TrimSpace(partials[PartialForm]); candidate != "" {
		tmpl = candidate
	}
	result, err := r.templates.RenderTemplate(tmpl, map[string]any{
		"form":         map[string]any{"id": form.ID, "title": form.Title, "description": form.Description},
		"fields":       entries,
		"formErrors":   opts.FormErrors,
		"hiddenFields": hidden,
		"action":       opts.Action,
		"method":       method,
		"multipart":    multipart,
		"lang":         string(lang),
		"dir":          lang.Dir(),
		"classes":      r.cfg.classes.resolve(),
		"labels":       map[string]string{"submit": msg(MessageSubmit)},
		"style":        style,
		"stylesheets":  stylesheets,
		"scripts":      scriptViews,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// messages resolves chrome strings through the caller translator first and
// the bundled catalog second.
func (r *Renderer) messages(opts render.RenderOptions, lang i18n.Language) func(string) string {
	return func(key string) string {
		if opts.Translator != nil {
			if msg, err := opts.Translator.Translate(string(lang), key); err == nil && strings.TrimSpace(msg) != "" {
				return msg
			}
		}
		msg, _ := chromeMessages.Translate(string(lang), key)
		return msg
	}
}
