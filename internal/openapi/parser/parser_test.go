package parser

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/schema"
)

func loadFixture(t *testing.T) schema.Document {
	t.Helper()
	raw, err := os.ReadFile("testdata/storefront.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile("testdata/storefront.yaml"), raw)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	return doc
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestTargets(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions())
	got, err := p.Targets(context.Background(), loadFixture(t))
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	if diff := cmp.Diff([]string{"Product", "createDoctor"}, got); diff != "" {
		t.Fatalf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_ComponentOrderAndDescriptors(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions())
	got, err := p.Schema(context.Background(), loadFixture(t), "Product")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	if got.ID != "Product" || got.Title != "Product" || got.Description != "Catalog entry" {
		t.Fatalf("unexpected header: %q %q %q", got.ID, got.Title, got.Description)
	}
	wantKeys := []string{"enName", "price", "featured", "productStatus", "releaseDate", "specification", "tags", "warrantyUrl"}
	if diff := cmp.Diff(wantKeys, got.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}

	cases := map[string]schema.FieldDescriptor{
		"enName": {
			Kind:  schema.KindString,
			Label: "English name",
			Rules: schema.Rules{Required: true, MaxLength: intPtr(120)},
		},
		"price": {
			Kind:  schema.KindNumber,
			Rules: schema.Rules{Required: true, Min: floatPtr(0)},
		},
		"productStatus": {
			Kind:  schema.KindString,
			Allow: []any{"active", "out-of-stock"},
		},
		"tags": {
			Kind:  schema.KindArray,
			Items: schema.KindString,
			Allow: []any{"new", "sale"},
			Rules: schema.Rules{MaxLength: intPtr(5)},
		},
		"releaseDate": {Kind: schema.KindDate},
		"featured":    {Kind: schema.KindBoolean},
		"warrantyUrl": {Kind: schema.KindString, Rules: schema.Rules{URL: true}},
		"specification": {
			Kind:   schema.KindString,
			Widget: "textarea",
		},
	}
	for key, want := range cases {
		desc, ok := got.Field(key)
		if !ok {
			t.Fatalf("missing field %q", key)
		}
		if diff := cmp.Diff(want, desc); diff != "" {
			t.Fatalf("%s descriptor mismatch (-want +got):\n%s", key, diff)
		}
	}
	if _, ok := got.Field("dimensions"); ok {
		t.Fatalf("nested objects must not become fields")
	}
}

func TestSchema_OperationRequestBody(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions(pkgopenapi.WithReferenceResolution(true)))
	got, err := p.Schema(context.Background(), loadFixture(t), "createDoctor")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if got.Title != "Register doctor" {
		t.Fatalf("expected summary as title, got %q", got.Title)
	}
	if diff := cmp.Diff([]string{"confirmPassword", "email", "password"}, got.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	email, _ := got.Field("email")
	if !email.Rules.Email || !email.Rules.Required {
		t.Fatalf("expected required email rule, got %+v", email.Rules)
	}
	confirm, _ := got.Field("confirmPassword")
	if diff := cmp.Diff([]string{"password"}, confirm.Refs()); diff != "" {
		t.Fatalf("refs mismatch (-want +got):\n%s", diff)
	}
	if len(confirm.AllowedValues()) != 0 {
		t.Fatalf("refs must not surface as enum values")
	}
}

func TestSchema_Errors(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions())
	doc := loadFixture(t)

	if _, err := p.Schema(context.Background(), doc, "Missing"); !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Schema(ctx, doc, "Product"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	bad := schema.MustNewDocument(schema.SourceFromFS("bad.yaml"), []byte("openapi: [unterminated"))
	if _, err := p.Targets(context.Background(), bad); err == nil {
		t.Fatalf("expected load error")
	}
}
