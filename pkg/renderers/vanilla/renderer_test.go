package vanilla_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/engine"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

var renderedAt = time.Date(2026, 5, 10, 8, 30, 0, 0, time.UTC)

func profileForm(t *testing.T) model.FormModel {
	t.Helper()
	s := schema.New("profile",
		schema.Field{Key: "title", Descriptor: schema.FieldDescriptor{Kind: schema.KindString, Rules: schema.Rules{Required: true}}},
		schema.Field{Key: "description", Descriptor: schema.FieldDescriptor{Kind: schema.KindString}},
		schema.Field{Key: "role", Descriptor: schema.FieldDescriptor{Kind: schema.KindString, Allow: []any{"admin", "user"}}},
		schema.Field{Key: "password", Descriptor: schema.FieldDescriptor{Kind: schema.KindString}},
		schema.Field{Key: "tags", Descriptor: schema.FieldDescriptor{Kind: schema.KindArray}},
		schema.Field{Key: "galleryImages", Descriptor: schema.FieldDescriptor{Kind: schema.KindArray}},
		schema.Field{Key: "appointmentTime", Descriptor: schema.FieldDescriptor{Kind: schema.KindDate}},
		schema.Field{Key: "postImage", Descriptor: schema.FieldDescriptor{Kind: schema.KindString}},
		schema.Field{Key: "featured", Descriptor: schema.FieldDescriptor{Kind: schema.KindBoolean}},
	)
	form, err := model.NewBuilder().Build(s, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return form
}

func renderForm(t *testing.T, r *vanilla.Renderer, form model.FormModel, opts render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(testsupport.Context(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, out)
		}
	}
}

func assertNotContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(out, fragment) {
			t.Fatalf("expected output to omit %q\n%s", fragment, out)
		}
	}
}

func TestRenderer_WidgetMarkup(t *testing.T) {
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out := renderForm(t, r, profileForm(t), render.RenderOptions{
		Action:     "/profiles",
		RenderedAt: renderedAt,
		Values: map[string]any{
			"title":         "<b>Dr</b>",
			"role":          "user",
			"tags":          []string{"cardio"},
			"galleryImages": []string{"https://cdn.example.com/a.png", "notes.txt"},
			"featured":      true,
		},
		Previews: map[string]string{"postImage": "blob:formkit/123"},
	})

	assertContains(t, out,
		`action="/profiles" method="POST" lang="en" dir="ltr" enctype="multipart/form-data"`,
		`value="&lt;b&gt;Dr&lt;/b&gt;"`,
		`<label for="fk-title">Title <span aria-hidden="true">*</span></label>`,
		`rows="8"`,
		`<option value="">Select an option</option><option value="admin">Admin</option><option value="user" selected>User</option>`,
		`name="password" type="password"`,
		`aria-pressed="false"`,
		`<span class="formkit-chip">cardio</span>`,
		`<img class="formkit-thumbnail" src="https://cdn.example.com/a.png" alt="">`,
		`<span class="formkit-chip">notes.txt</span>`,
		`type="datetime-local" value="" min="2026-05-10T08:30"`,
		`accept="image/*"`,
		`<img class="formkit-preview" src="blob:formkit/123" alt="">`,
		`type="checkbox" value="true" checked> Featured</label>`,
		`<script>document.addEventListener`,
		`<button type="submit">Submit</button>`,
	)
	assertNotContains(t, out, `<label for="fk-featured">`, `<span class="formkit-chip">https://cdn.example.com/a.png</span>`)
}

func TestRenderer_EmptySelectPlaceholderIsSelected(t *testing.T) {
	r, _ := vanilla.New()
	out := renderForm(t, r, profileForm(t), render.RenderOptions{Subset: render.FieldSubset{Include: []string{"role"}}})

	assertContains(t, out, `<option value="" selected>Select an option</option>`)
	assertNotContains(t, out, `name="title"`, `enctype=`, `data-formkit-toggle`)
}

func TestRenderer_SessionState(t *testing.T) {
	form := profileForm(t)
	session := engine.NewSession(form, map[string]any{"password": "s3cret"}, engine.WithClock(func() time.Time { return renderedAt }))
	defer session.Close()

	if _, err := session.TogglePasswordVisibility("password"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := session.SetStaging("tags", "surg"); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if _, err := session.AddArrayItem("tags", "cardio"); err != nil {
		t.Fatalf("add: %v", err)
	}
	_ = session.Submit(context.Background(), nil)

	r, _ := vanilla.New()
	out := renderForm(t, r, form, render.FromSession(session, render.RenderOptions{}))
	assertContains(t, out,
		`name="password" type="text" value="s3cret"`,
		`aria-pressed="true"`,
		`name="tags__staging" type="text" value="surg"`,
		`<span class="formkit-chip">cardio</span>`,
		`min="2026-05-10T08:30"`,
		`<p class="formkit-error" id="fk-title-error" role="alert">Title is required</p>`,
		`formkit-field--invalid`,
	)
}

func TestRenderer_ArabicChromeAndTranslations(t *testing.T) {
	catalog := i18n.NewCatalog().Add(i18n.Arabic, map[string]string{
		render.FieldLabelKey("title"):          "العنوان",
		render.OptionLabelKey("role", "admin"): "مسؤول",
	})
	r, _ := vanilla.New()
	form := profileForm(t)
	out := renderForm(t, r, form, render.RenderOptions{
		Locale:       "ar-SA",
		Translator:   catalog,
		FormErrors:   []string{"تعذر الحفظ"},
		HiddenFields: render.MergeHiddenFields(nil, render.CSRFToken("_csrf", "tok"), render.Hidden("version", 3)),
	})

	assertContains(t, out,
		`lang="ar" dir="rtl"`,
		`<label for="fk-title">العنوان`,
		`<option value="admin">مسؤول</option>`,
		`<li>تعذر الحفظ</li>`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`<input type="hidden" name="version" value="3">`,
		`<button type="submit">إرسال</button>`,
		`dir="rtl"`,
	)
	if form.Fields[0].Label != "Title" {
		t.Fatalf("render must not mutate the caller's form, got %q", form.Fields[0].Label)
	}
}

func TestRenderer_ThemePartialsAndStyles(t *testing.T) {
	overrides := fstest.MapFS{
		"custom/input.tmpl": {Data: []byte(`<input class="brand" name="{{ field.name }}">`)},
	}
	r, err := vanilla.New(
		vanilla.WithTemplatesFS(overrides),
		vanilla.WithStylesheet("/assets/custom.css"),
		vanilla.WithDefaultStyles(),
		vanilla.WithChromeClasses(vanilla.ChromeClasses{Form: "card formkit-hijack"}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	cfg := render.ThemeConfig(&theme.Selection{
		Theme:   "clinic",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:      "clinic",
			Tokens:    map[string]string{"color-primary": "#0a7"},
			Templates: map[string]string{"forms.input": "custom/input.tmpl"},
			Assets:    theme.Assets{Prefix: "/static", Files: map[string]string{vanilla.StylesheetName: "css/formkit.css"}},
		},
	}, nil)

	out := renderForm(t, r, profileForm(t), render.RenderOptions{Theme: cfg})
	assertContains(t, out,
		`<input class="brand" name="title">`,
		`--color-primary: #0a7;`,
		`.formkit-form {`,
		`<link rel="stylesheet" href="/assets/custom.css">`,
		`<link rel="stylesheet" href="/static/css/formkit.css">`,
		`class="formkit-form card"`,
		`rows="8"`,
	)
}

func TestRenderer_ComponentOverrideAndContract(t *testing.T) {
	r, _ := vanilla.New(vanilla.WithComponentOverrides(map[string]string{"description": "input"}))
	if r.Name() != "vanilla" || !strings.HasPrefix(r.ContentType(), "text/html") {
		t.Fatalf("unexpected renderer identity %s %s", r.Name(), r.ContentType())
	}
	out := renderForm(t, r, profileForm(t), render.RenderOptions{Subset: render.FieldSubset{ExcludeWidgets: []widgets.Kind{widgets.Array}}})
	assertContains(t, out, `<input id="fk-description" name="description" type="text"`)
	assertNotContains(t, out, `<textarea`, `formkit-array`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, profileForm(t), render.RenderOptions{}); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}
