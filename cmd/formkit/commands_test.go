package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/schema"
)

func TestSourceFlags_Request(t *testing.T) {
	dir := t.TempDir()
	categories := filepath.Join(dir, "categories.json")
	values := filepath.Join(dir, "values.json")
	if err := os.WriteFile(categories, []byte(`[
  {"id": "c1", "name": {"en": "Imaging", "ar": "التصوير"}},
  {"id": "c2", "name": "Surgery"}
]`), 0o600); err != nil {
		t.Fatalf("write categories: %v", err)
	}
	if err := os.WriteFile(values, []byte(`{"authorName": "Lina"}`), 0o600); err != nil {
		t.Fatalf("write values: %v", err)
	}

	sf := sourceFlags{builtin: "post", categories: categories, values: values, locale: "ar"}
	req, defaults, err := sf.request()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if req.Source.Kind() != schema.SourceKindBuiltin || req.Source.Location() != "post" {
		t.Fatalf("unexpected source %v %q", req.Source.Kind(), req.Source.Location())
	}
	want := []model.Option{{Value: "c2", Label: "Surgery"}, {Value: "c1", Label: "التصوير"}}
	if diff := cmp.Diff(want, req.SelectOptions["category"]); diff != "" {
		t.Fatalf("category options mismatch (-want +got):\n%s", diff)
	}
	if defaults["authorName"] != "Lina" {
		t.Fatalf("unexpected defaults %v", defaults)
	}
}

func TestSourceFlags_Errors(t *testing.T) {
	if _, _, err := (&sourceFlags{}).request(); err == nil {
		t.Fatalf("expected missing schema error")
	}
	if _, _, err := (&sourceFlags{source: "a.yaml", builtin: "post"}).request(); err == nil {
		t.Fatalf("expected conflicting source error")
	}
	if _, _, err := (&sourceFlags{builtin: "post", values: "missing.json"}).request(); err == nil {
		t.Fatalf("expected unreadable values error")
	}
}

func TestParseSource(t *testing.T) {
	if got := parseSource(" https://example.test/openapi.yaml "); got.Kind() != schema.SourceKindURL {
		t.Fatalf("expected url source, got %v", got.Kind())
	}
	if got := parseSource("schemas/doctor.yaml"); got.Kind() != schema.SourceKindFile {
		t.Fatalf("expected file source, got %v", got.Kind())
	}
}
