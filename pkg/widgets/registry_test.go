package widgets

import (
	"testing"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func TestInfer_Precedence(t *testing.T) {
	str := schema.FieldDescriptor{Kind: schema.KindString}
	enum := schema.FieldDescriptor{Kind: schema.KindString, Allow: []any{"a", "b"}}
	opts := []schema.Option{{Value: "x", Label: "X"}}

	cases := []struct {
		name    string
		key     string
		desc    schema.FieldDescriptor
		options []schema.Option
		expect  Kind
	}{
		{name: "video override beats enum", key: "productVideo", desc: enum, expect: Video},
		{name: "pdf override", key: "datasheet", desc: str, expect: PDF},
		{name: "image upload override", key: "postImage", desc: str, expect: File},
		{name: "confirm password", key: "confirmPassword", desc: schema.FieldDescriptor{Kind: schema.KindString, Valid: []any{schema.Ref{Field: "password"}}}, expect: Password},
		{name: "long text beats enum", key: "description", desc: enum, expect: Textarea},
		{name: "long text case insensitive", key: "shortBio", desc: str, expect: Textarea},
		{name: "caller options", key: "category", desc: str, options: opts, expect: Select},
		{name: "enum", key: "level", desc: enum, expect: Select},
		{name: "enum of refs only is ignored", key: "level", desc: schema.FieldDescriptor{Kind: schema.KindString, Allow: []any{schema.Ref{Field: "x"}}}, expect: Text},
		{name: "array", key: "tags", desc: schema.FieldDescriptor{Kind: schema.KindArray}, expect: Array},
		{name: "email rule", key: "contact", desc: schema.FieldDescriptor{Kind: schema.KindString, Rules: schema.Rules{Email: true}}, expect: Email},
		{name: "password key", key: "newPassword", desc: str, expect: Password},
		{name: "temporal key", key: "publishDate", desc: str, expect: DateTime},
		{name: "temporal key beats kind", key: "startTime", desc: schema.FieldDescriptor{Kind: schema.KindNumber}, expect: DateTime},
		{name: "enum-like key", key: "status", desc: str, expect: Select},
		{name: "enum-like suffix", key: "orderStatus", desc: str, expect: Select},
		{name: "enum-like suffix case insensitive", key: "userRole", desc: str, expect: Select},
		{name: "enum-like word not at the end", key: "statusCode", desc: str, expect: Text},
		{name: "enum-like word inside key", key: "stateAbbreviation", desc: str, expect: Text},
		{name: "enum-like key needs string kind", key: "status", desc: schema.FieldDescriptor{Kind: schema.KindNumber}, expect: Number},
		{name: "number", key: "age", desc: schema.FieldDescriptor{Kind: schema.KindNumber}, expect: Number},
		{name: "boolean", key: "featured", desc: schema.FieldDescriptor{Kind: schema.KindBoolean}, expect: Checkbox},
		{name: "date kind", key: "birthday", desc: schema.FieldDescriptor{Kind: schema.KindDate}, expect: Date},
		{name: "unknown kind", key: "blob", desc: schema.FieldDescriptor{Kind: "object"}, expect: Text},
		{name: "explicit widget", key: "status", desc: schema.FieldDescriptor{Kind: schema.KindString, Widget: "radio"}, expect: "radio"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Infer(tc.desc, tc.key, tc.options); got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestRegister_CustomMatcherPriority(t *testing.T) {
	reg := NewRegistry()
	reg.Register("color", PriorityKeyOverride+1, func(s Subject) bool {
		return s.Key == "brandColor"
	})

	desc := schema.FieldDescriptor{Kind: schema.KindString}
	if got := reg.Infer(desc, "brandColor", nil); got != "color" {
		t.Fatalf("expected custom widget, got %q", got)
	}
	if got := reg.Infer(desc, "title", nil); got != Text {
		t.Fatalf("expected builtin fallback, got %q", got)
	}
}

func TestEmptyRegistry_DegradesToText(t *testing.T) {
	reg := NewEmptyRegistry()
	if _, ok := reg.Resolve(NewSubject(schema.FieldDescriptor{Kind: schema.KindNumber}, "age", nil)); ok {
		t.Fatalf("expected empty registry to resolve nothing")
	}
	if got := reg.Infer(schema.FieldDescriptor{Kind: schema.KindNumber}, "age", nil); got != Text {
		t.Fatalf("expected text fallback, got %q", got)
	}
}

func TestBehaviours(t *testing.T) {
	if got := TextareaRows("enContent"); got != LongFormTextareaRows {
		t.Fatalf("expected long-form rows, got %d", got)
	}
	if got := TextareaRows("comment"); got != DefaultTextareaRows {
		t.Fatalf("expected default rows, got %d", got)
	}
	if Accept(PDF) != "application/pdf" || Accept(Video) != "video/*" || Accept(File) != "image/*" {
		t.Fatalf("unexpected accept types")
	}
	if !IsImageKey("galleryImages") || IsImageKey("tags") {
		t.Fatalf("unexpected image key classification")
	}
}

func TestBuiltinKinds(t *testing.T) {
	if len(Builtins()) != 13 {
		t.Fatalf("expected 13 builtin kinds, got %d", len(Builtins()))
	}
	if !PDF.Builtin() || Kind("color").Builtin() {
		t.Fatalf("unexpected builtin classification")
	}
}
