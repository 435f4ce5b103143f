package posts

import (
	"errors"
	"io/fs"
	"slices"
	"testing"

	json "github.com/goccy/go-json"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formkit/pkg/blocks"
	"github.com/goliatone/go-formkit/pkg/engine"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

var (
	ignoreBlockIDs = cmpopts.IgnoreFields(blocks.Block{}, "ID")
	compareText    = cmp.Comparer(func(a, b i18n.Text) bool {
		return a.IsPlain() == b.IsPlain() &&
			a.In(i18n.English) == b.In(i18n.English) &&
			a.In(i18n.Arabic) == b.In(i18n.Arabic)
	})
)

func builtinForm(t *testing.T, name string, options map[string][]model.Option) model.FormModel {
	t.Helper()
	raw, err := fs.ReadFile(Builtins(), name+".yaml")
	if err != nil {
		t.Fatalf("read builtin %s: %v", name, err)
	}
	doc, err := schema.NewDocument(schema.SourceFromBuiltin(name), raw)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	parsed, err := schema.Parse(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form, err := model.NewBuilder().Build(parsed, options)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return form
}

func TestBuiltins_ListAndInferWidgets(t *testing.T) {
	if diff := cmp.Diff([]string{"category", "doctor", "post", "product"}, BuiltinNames()); diff != "" {
		t.Fatalf("builtin names mismatch (-want +got):\n%s", diff)
	}

	doctor := builtinForm(t, SchemaDoctor, nil)
	want := map[string]widgets.Kind{
		"email":           widgets.Email,
		"password":        widgets.Password,
		"confirmPassword": widgets.Password,
		"shortBio":        widgets.Textarea,
		"experienceYears": widgets.Number,
		"profileImage":    widgets.File,
		"appointmentTime": widgets.DateTime,
		"available":       widgets.Checkbox,
	}
	for name, widget := range want {
		field, ok := doctor.Field(name)
		if !ok || field.Widget != widget {
			t.Fatalf("%s: expected %s, got %+v", name, widget, field)
		}
	}
	if bio, _ := doctor.Field("shortBio"); bio.Label != "Bio - Field of specialization" {
		t.Fatalf("unexpected shortBio label %q", bio.Label)
	}

	product := builtinForm(t, SchemaProduct, nil)
	for name, widget := range map[string]widgets.Kind{
		"productVideo":  widgets.Video,
		"catalogPdf":    widgets.PDF,
		"productImages": widgets.Array,
		"specification": widgets.Textarea,
		"productStatus": widgets.Select,
	} {
		if field, _ := product.Field(name); field.Widget != widget {
			t.Fatalf("%s: expected %s, got %s", name, widget, field.Widget)
		}
	}
	if images, _ := product.Field("productImages"); !images.ImagePreview {
		t.Fatalf("expected productImages to render thumbnails")
	}
}

func TestPostForm_CategoryOptionsFromCaller(t *testing.T) {
	categories := []Category{
		{ID: "c1", Name: i18n.Localized("Imaging", "التصوير")},
		{ID: "c2", Name: i18n.Localized("Ultrasound", "الموجات"), ParentID: "c1"},
	}
	form := builtinForm(t, SchemaPost, FormOptions(categories, i18n.English))

	category, _ := form.Field("category")
	if category.Widget != widgets.Select {
		t.Fatalf("expected select, got %s", category.Widget)
	}
	want := []model.Option{{Value: "c1", Label: "Imaging"}, {Value: "c2", Label: "Imaging / Ultrasound"}}
	if diff := cmp.Diff(want, category.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	status, _ := form.Field("status")
	if diff := cmp.Diff([]string{"Draft", "In Review", "Published", "Archived"}, optionLabels(status.Options)); diff != "" {
		t.Fatalf("status labels mismatch (-want +got):\n%s", diff)
	}

	bare := builtinForm(t, SchemaPost, nil)
	if degraded, _ := bare.Field("category"); degraded.Widget != widgets.Text {
		t.Fatalf("category without options should degrade to text, got %s", degraded.Widget)
	}
}

func optionLabels(options []model.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Label
	}
	return out
}

func TestCategoryOptions_Arabic(t *testing.T) {
	got := CategoryOptions([]Category{
		{ID: "c1", Name: i18n.Localized("Imaging", "التصوير")},
		{ID: "c3", Slug: "lab-supplies"},
		{ID: "", Name: i18n.Plain("orphan")},
	}, i18n.Arabic)
	want := []model.Option{{Value: "c3", Label: "Lab Supplies"}, {Value: "c1", Label: "التصوير"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitLocalized(t *testing.T) {
	localized, rest := SplitLocalized(map[string]any{
		"enTitle":    " Hello ",
		"ar_title":   "مرحبا",
		"english":    "not a prefix",
		"en":         "bare",
		"authorName": "Dr. Lee",
	})
	want := map[string]i18n.Text{"title": i18n.Localized("Hello", "مرحبا")}
	if diff := cmp.Diff(want, localized, compareText); diff != "" {
		t.Fatalf("localized mismatch (-want +got):\n%s", diff)
	}
	wantRest := map[string]any{"english": "not a prefix", "en": "bare", "authorName": "Dr. Lee"}
	if diff := cmp.Diff(wantRest, rest); diff != "" {
		t.Fatalf("rest mismatch (-want +got):\n%s", diff)
	}
}

func samplePost(t *testing.T) CreatePostData {
	t.Helper()
	content := blocks.LocalizedContent{
		EN: blocks.Sequence{blocks.NewParagraph("Intro", "New <b>scanner</b>"), blocks.NewImage("https://cdn.example.com/x.png", "X2", "")},
	}
	data, err := Assemble(map[string]any{
		"enTitle":     "Launch",
		"arTitle":     "إطلاق",
		"authorName":  "Dr. Lee",
		"authorEmail": "lee@example.com",
		"postImage":   engine.File{Name: "cover.png", ContentType: "image/png"},
		"category":    "c1",
		"tags":        []string{"imaging", "launch"},
		"status":      StatusPublished,
		"featured":    true,
	}, content)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return data
}

func TestAssemble(t *testing.T) {
	got := samplePost(t)
	want := CreatePostData{
		Title: i18n.Localized("Launch", "إطلاق"),
		Content: blocks.LocalizedContent{
			EN: blocks.Sequence{blocks.NewParagraph("Intro", "New scanner"), blocks.NewImage("https://cdn.example.com/x.png", "X2", "")},
			AR: blocks.Sequence{},
		},
		AuthorName:  "Dr. Lee",
		AuthorEmail: "lee@example.com",
		PostImage:   "cover.png",
		Category:    "c1",
		Tags:        []string{"imaging", "launch"},
		Status:      StatusPublished,
		Featured:    true,
	}
	if diff := cmp.Diff(want, got, compareText, ignoreBlockIDs); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	if _, err := Assemble(map[string]any{"featured": "yes"}, blocks.LocalizedContent{}); err == nil {
		t.Fatalf("expected featured type error")
	}
}

func TestEncode_WireShape(t *testing.T) {
	data := samplePost(t)
	data.Tags = []string{}

	raw, err := Encode(data)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"en": "Launch", "ar": "إطلاق"}, got["title"]); diff != "" {
		t.Fatalf("title mismatch (-want +got):\n%s", diff)
	}
	content := got["content"].(map[string]any)
	if ar, ok := content["ar"].([]any); !ok || len(ar) != 0 {
		t.Fatalf("expected empty ar array, got %#v", content["ar"])
	}
	first := content["en"].([]any)[0].(map[string]any)
	if diff := cmp.Diff(map[string]any{"type": "paragraph", "title": "Intro", "text": "New scanner"}, first); diff != "" {
		t.Fatalf("block mismatch (-want +got):\n%s", diff)
	}
	if tags, ok := got["tags"].([]any); !ok || len(tags) != 0 {
		t.Fatalf("expected empty tags array, got %#v", got["tags"])
	}
}

func TestValidatePayload(t *testing.T) {
	if issues, err := ValidatePayload(samplePost(t)); err != nil || len(issues) != 0 {
		t.Fatalf("expected valid payload, got %v %v", issues, err)
	}

	data := samplePost(t)
	data.Title = i18n.Localized("Launch", "")
	data.Content = blocks.LocalizedContent{}

	issues, err := ValidatePayload(data)
	if !errors.Is(err, ErrInvalidPayload) || !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected invalid payload validation error, got %v", err)
	}
	var locations []string
	for _, issue := range issues {
		locations = append(locations, issue.Location)
	}
	for _, want := range []string{"/content/en", "/title/ar"} {
		if !slices.Contains(locations, want) {
			t.Fatalf("expected issue at %s, got %v", want, locations)
		}
	}

	form := builtinForm(t, SchemaPost, nil)
	grouped := IssueErrors(issues)
	if _, ok := grouped["/title/ar"]; !ok {
		t.Fatalf("expected grouped issue for /title/ar, got %v", grouped)
	}
	if _, ok := form.Field("arTitle"); !ok {
		t.Fatalf("post form must edit arTitle")
	}
}

func TestFormDefaultsAndEditors(t *testing.T) {
	post := Post{ID: "p1", CreatePostData: samplePost(t)}
	defaults := FormDefaults(post)
	if defaults["enTitle"] != "Launch" || defaults["arTitle"] != "إطلاق" || defaults["featured"] != true {
		t.Fatalf("unexpected defaults %v", defaults)
	}

	en, ar := Editors(&post)
	if en.Len() != 2 || ar.Len() != 0 {
		t.Fatalf("unexpected editor sizes %d / %d", en.Len(), ar.Len())
	}
	if _, err := en.Append(blocks.KindParagraph, nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(post.Content.EN) != 2 {
		t.Fatalf("editing must not touch the persisted post")
	}
}
