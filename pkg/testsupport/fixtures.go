// Package testsupport holds fixture and golden-file helpers shared by tests.
package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// LoadSchema parses a YAML or JSON field schema fixture.
func LoadSchema(t *testing.T, path string) schema.Schema {
	t.Helper()

	s, err := LoadSchemaFromPath(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return s
}

// LoadSchemaFromPath is LoadSchema for callers without a *testing.T.
func LoadSchemaFromPath(path string) (schema.Schema, error) {
	if path == "" {
		return schema.Schema{}, errors.New("testsupport: schema path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("testsupport: read schema: %w", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), data)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return schema.Parse(doc)
}

// MustBuildForm loads a schema fixture and builds it with the default builder.
func MustBuildForm(t *testing.T, path string, options map[string][]pkgmodel.Option) pkgmodel.FormModel {
	t.Helper()

	form, err := pkgmodel.NewBuilder().Build(LoadSchema(t, path), options)
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	return form
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set and
// reports whether it did.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGoldenString reads a golden file.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
