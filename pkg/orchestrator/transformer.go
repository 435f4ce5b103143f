package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Transformer mutates a FormModel before decorators run.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file:
//
//	{
//	  "title": "Register",
//	  "metadata": {"section": "onboarding"},
//	  "fields": {
//	    "shortBio": {"label": "About you", "rows": 6}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Metadata    map[string]string         `json:"metadata"`
	Fields      map[string]jsonFieldPatch `json:"fields"`
}

type jsonFieldPatch struct {
	Label       string            `json:"label"`
	Description string            `json:"description"`
	Rows        int               `json:"rows"`
	Required    *bool             `json:"required"`
	Metadata    map[string]string `json:"metadata"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied form. Patches
// naming unknown fields are an error.
func (t *JSONPresetTransformer) Transform(ctx context.Context, form *model.FormModel) error {
	if form == nil {
		return errors.New("json preset transformer: form model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Title != "" {
		form.Title = t.document.Title
	}
	if t.document.Description != "" {
		form.Description = t.document.Description
	}
	if len(t.document.Metadata) > 0 {
		form.Metadata = mergeStringMap(form.Metadata, t.document.Metadata)
	}

	for name, patch := range t.document.Fields {
		field := findField(form.Fields, name)
		if field == nil {
			return fmt.Errorf("json preset transformer: field %q not found", name)
		}
		applyFieldPatch(field, patch)
	}
	return nil
}

func applyFieldPatch(field *model.Field, patch jsonFieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Description != "" {
		field.Description = patch.Description
	}
	if patch.Rows > 0 && field.Rows > 0 {
		field.Rows = patch.Rows
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if len(patch.Metadata) > 0 {
		field.Metadata = mergeStringMap(field.Metadata, patch.Metadata)
	}
}

func findField(fields []model.Field, name string) *model.Field {
	for idx := range fields {
		if fields[idx].Name == name {
			return &fields[idx]
		}
	}
	return nil
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
