package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const signupOpenAPI = `
openapi: 3.0.3
info: {title: Accounts, version: 1.0.0}
paths: {}
components:
  schemas:
    Signup:
      type: object
      x-formkit-order: [email, password, confirmPassword]
      required: [email, password]
      properties:
        email: {type: string, format: email}
        password: {type: string, minLength: 8}
        confirmPassword: {type: string, x-formkit-equals: password}
        role: {type: string, enum: [admin, editor]}
`

type captureRenderer struct {
	form    model.FormModel
	options render.RenderOptions
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "text/plain" }
func (c *captureRenderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	c.form = form
	c.options = opts
	return []byte("ok"), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func widgetsOf(form model.FormModel) map[string]widgets.Kind {
	out := make(map[string]widgets.Kind, len(form.Fields))
	for _, field := range form.Fields {
		out[field.Name] = field.Widget
	}
	return out
}

func TestGenerate_BuiltinPostRendersHTML(t *testing.T) {
	orch := New()
	html, err := orch.Generate(context.Background(), Request{
		Source: schema.SourceFromBuiltin("post"),
		SelectOptions: map[string][]model.Option{
			"category": {{Value: "news", Label: "News"}},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := string(html)
	for _, want := range []string{
		`name="enTitle"`,
		`name="authorEmail" type="email"`,
		`<option value="news">News</option>`,
		`name="tags__staging"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestBuild_DetectsOpenAPI(t *testing.T) {
	orch := New()
	doc := schema.MustNewDocument(schema.SourceFromFS("accounts.yaml"), []byte(signupOpenAPI))

	form, err := orch.Build(context.Background(), Request{Document: &doc, Target: "Signup"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := map[string]widgets.Kind{
		"email":           widgets.Email,
		"password":        widgets.Password,
		"confirmPassword": widgets.Password,
		"role":            widgets.Select,
	}
	if diff := cmp.Diff(want, widgetsOf(form)); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}
	names := make([]string, len(form.Fields))
	for i, field := range form.Fields {
		names[i] = field.Name
	}
	if diff := cmp.Diff([]string{"email", "password", "confirmPassword", "role"}, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Errors(t *testing.T) {
	orch := New()
	ctx := context.Background()

	if _, err := orch.Build(ctx, Request{}); err == nil {
		t.Fatalf("expected missing source error")
	}

	doc := schema.MustNewDocument(schema.SourceFromFS("accounts.yaml"), []byte(signupOpenAPI))
	if _, err := orch.Build(ctx, Request{Document: &doc, Target: "Missing"}); err == nil {
		t.Fatalf("expected unknown target error")
	}
	if _, err := orch.Build(ctx, Request{Document: &doc, Format: "xml"}); err == nil {
		t.Fatalf("expected unknown adapter error")
	}
	if _, err := orch.Generate(ctx, Request{Source: schema.SourceFromBuiltin("post"), Renderer: "pdf"}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := orch.Build(cancelled, Request{Document: &doc}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuild_TransformerAndDecorators(t *testing.T) {
	preset, err := NewJSONPresetTransformer([]byte(`{
  "title": "Join the clinic",
  "fields": {"shortBio": {"label": "About you", "rows": 6}}
}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}

	var order []string
	orch := New(
		WithSchemaTransformer(TransformerFunc(func(ctx context.Context, form *model.FormModel) error {
			order = append(order, "transform")
			return preset.Transform(ctx, form)
		})),
		WithDecorators(model.DecoratorFunc(func(form *model.FormModel) error {
			order = append(order, "decorate")
			form.Metadata = mergeStringMap(form.Metadata, map[string]string{"audience": "doctors"})
			return nil
		})),
	)

	form, err := orch.Build(context.Background(), Request{Source: schema.SourceFromBuiltin("doctor")})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"transform", "decorate"}, order); diff != "" {
		t.Fatalf("stage order mismatch (-want +got):\n%s", diff)
	}
	if form.Title != "Join the clinic" || form.Metadata["audience"] != "doctors" {
		t.Fatalf("unexpected form header: %q %v", form.Title, form.Metadata)
	}
	bio, _ := form.Field("shortBio")
	if bio.Label != "About you" || bio.Rows != 6 {
		t.Fatalf("unexpected shortBio patch: %+v", bio)
	}

	bad, err := NewJSONPresetTransformer([]byte(`{"fields": {"nope": {"label": "x"}}}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	orch = New(WithSchemaTransformer(bad))
	if _, err := orch.Build(context.Background(), Request{Source: schema.SourceFromBuiltin("doctor")}); err == nil {
		t.Fatalf("expected unknown field patch error")
	}
}

func TestGenerate_PassesThemeConfigToRenderer(t *testing.T) {
	selection := &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand": "#123456"},
			Templates: map[string]string{
				"forms.select": "themes/acme/select.tmpl",
			},
		},
	}
	selector := &stubThemeSelector{selection: selection}
	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(capture)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(capture.Name()),
		WithThemeSelector(selector),
	)
	_, err := orch.Generate(context.Background(), Request{
		Source:       schema.SourceFromBuiltin("category"),
		ThemeName:    "acme",
		ThemeVariant: "dark",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if diff := cmp.Diff([]selectorCall{{name: "acme", variant: "dark"}}, selector.calls, cmp.AllowUnexported(selectorCall{})); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
	cfg := capture.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if got := cfg.Partials["forms.select"]; got != "themes/acme/select.tmpl" {
		t.Fatalf("theme partial not applied, got %q", got)
	}
	if got := cfg.Partials["forms.input"]; got != vanilla.DefaultPartials()["forms.input"] {
		t.Fatalf("fallback partial missing, got %q", got)
	}
	if cfg.CSSVars["--brand"] != "#123456" {
		t.Fatalf("css vars not derived from tokens: %v", cfg.CSSVars)
	}
	if capture.form.ID != "category" {
		t.Fatalf("unexpected form id %q", capture.form.ID)
	}

	selector.err = errors.New("unknown theme")
	if _, err := orch.Generate(context.Background(), Request{Source: schema.SourceFromBuiltin("category")}); err == nil {
		t.Fatalf("expected selector error to surface")
	}
}

func TestAdapterRegistry(t *testing.T) {
	reg := NewAdapterRegistry()
	reg.MustRegister(OpenAPIAdapter{})
	reg.MustRegister(FieldSchemaAdapter{})
	if err := reg.Register(OpenAPIAdapter{}); err == nil {
		t.Fatalf("expected duplicate adapter error")
	}
	if diff := cmp.Diff([]string{AdapterOpenAPI, AdapterFieldSchema}, reg.List()); diff != "" {
		t.Fatalf("adapter order mismatch (-want +got):\n%s", diff)
	}

	adapter, err := reg.Get(strings.ToUpper(AdapterOpenAPI))
	if err != nil || adapter.Name() != AdapterOpenAPI {
		t.Fatalf("case-insensitive lookup failed: %v", err)
	}
	if _, err := reg.Get("xml"); err == nil || !strings.Contains(err.Error(), AdapterFieldSchema) {
		t.Fatalf("expected unknown format error listing adapters, got %v", err)
	}

	matches := reg.Detect(schema.SourceFromFS("accounts.yaml"), []byte(signupOpenAPI))
	if len(matches) != 1 || matches[0].Name() != AdapterOpenAPI {
		t.Fatalf("unexpected detection %v", matches)
	}
}
