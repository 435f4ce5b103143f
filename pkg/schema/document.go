package schema

import (
	"bytes"
	"errors"
	"path"
	"strings"
)

// Format is the serialization used by a schema document.
type Format string

const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatOpenAPI Format = "openapi"
)

// Document wraps a raw schema payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates the inputs and copies raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Format sniffs the document: OpenAPI documents declare a top-level
// "openapi" key, otherwise the extension or the first byte decides between
// JSON and YAML.
func (d Document) Format() Format {
	head := d.raw
	if len(head) > 512 {
		head = head[:512]
	}
	trimmed := bytes.TrimSpace(head)
	if bytes.HasPrefix(trimmed, []byte("openapi:")) || bytes.Contains(trimmed, []byte(`"openapi"`)) {
		return FormatOpenAPI
	}
	switch strings.ToLower(path.Ext(d.Location())) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	if bytes.HasPrefix(trimmed, []byte("{")) {
		return FormatJSON
	}
	return FormatYAML
}
