package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAllowedValues_FiltersRefsAndNonStrings(t *testing.T) {
	desc := FieldDescriptor{
		Kind:  KindString,
		Allow: []any{"draft", "published", Ref{Field: "status"}},
	}
	if diff := cmp.Diff([]string{"draft", "published"}, desc.AllowedValues()); diff != "" {
		t.Fatalf("allowed values mismatch (-want +got):\n%s", diff)
	}
}

func TestAllowedValues_FirstUsableSourceWins(t *testing.T) {
	desc := FieldDescriptor{
		Allow:     []any{Ref{Field: "password"}, 42, ""},
		Valid:     []any{"admin", "user"},
		Whitelist: []any{"ignored"},
	}
	if diff := cmp.Diff([]string{"admin", "user"}, desc.AllowedValues()); diff != "" {
		t.Fatalf("allowed values mismatch (-want +got):\n%s", diff)
	}

	onlyRefs := FieldDescriptor{Valid: []any{Ref{Field: "password"}}}
	if got := onlyRefs.AllowedValues(); got != nil {
		t.Fatalf("expected no allowed values, got %v", got)
	}
	if diff := cmp.Diff([]string{"password"}, onlyRefs.Refs()); diff != "" {
		t.Fatalf("refs mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_PreservesInsertionOrder(t *testing.T) {
	s := New("user",
		Field{Key: "name", Descriptor: FieldDescriptor{Kind: KindString}},
		Field{Key: "age", Descriptor: FieldDescriptor{Kind: KindNumber}},
		Field{Key: "role", Descriptor: FieldDescriptor{Kind: KindString}},
	)
	if err := s.Add("age", FieldDescriptor{}); err == nil {
		t.Fatalf("expected duplicate key error")
	}
	s.Set("name", FieldDescriptor{Kind: KindString, Rules: Rules{Required: true}})

	if diff := cmp.Diff([]string{"name", "age", "role"}, s.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	name, ok := s.Field("name")
	if !ok || !name.Rules.Required {
		t.Fatalf("expected replaced descriptor, got %+v", name)
	}
}

func TestParse_YAMLKeepsDocumentOrder(t *testing.T) {
	raw := []byte(`
id: user
title: Create user
fields:
  zeta: string
  name:
    kind: string
    required: true
    minLength: 2
  password:
    kind: string
    required: true
  confirmPassword:
    kind: string
    valid: [{$ref: password}]
  role:
    kind: string
    allow: [admin, user]
`)
	got, err := Parse(MustNewDocument(SourceFromFile("user.yaml"), raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"zeta", "name", "password", "confirmPassword", "role"}, got.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	confirm, _ := got.Field("confirmPassword")
	if diff := cmp.Diff([]any{Ref{Field: "password"}}, confirm.Valid); diff != "" {
		t.Fatalf("ref decode mismatch (-want +got):\n%s", diff)
	}
	name, _ := got.Field("name")
	if name.Rules.MinLength == nil || *name.Rules.MinLength != 2 {
		t.Fatalf("expected minLength 2, got %+v", name.Rules)
	}
	zeta, _ := got.Field("zeta")
	if zeta.Kind != KindString {
		t.Fatalf("expected shorthand kind string, got %q", zeta.Kind)
	}
}

func TestParse_JSONKeepsDocumentOrder(t *testing.T) {
	raw := []byte(`{"id":"p","fields":{"b":{"kind":"number"},"a":{"kind":"boolean"}}}`)
	doc := MustNewDocument(SourceFromFile("p.json"), raw)
	if doc.Format() != FormatJSON {
		t.Fatalf("expected json format, got %s", doc.Format())
	}
	got, err := Parse(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, got.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RejectsOpenAPIAndEmpty(t *testing.T) {
	openapi := MustNewDocument(SourceFromFile("api.yaml"), []byte("openapi: 3.0.3\ninfo: {}\n"))
	if _, err := Parse(openapi); err == nil {
		t.Fatalf("expected openapi documents to be rejected")
	}
	empty := MustNewDocument(SourceFromFile("empty.yaml"), []byte("id: empty\n"))
	if _, err := Parse(empty); err == nil {
		t.Fatalf("expected schema without fields to be rejected")
	}
}
