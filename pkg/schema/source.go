package schema

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// SourceKind enumerates where a schema document can come from.
type SourceKind string

const (
	SourceKindFile    SourceKind = "file"
	SourceKindFS      SourceKind = "fs"
	SourceKindURL     SourceKind = "url"
	SourceKindBuiltin SourceKind = "builtin"
)

// Source identifies the origin of a schema document.
type Source interface {
	Kind() SourceKind
	Location() string
}

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

// SourceFromFile points at a schema file on disk.
func SourceFromFile(p string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(p)}
}

// SourceFromFS points at an entry inside an fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: path.Clean(name)}
}

// SourceFromBuiltin names one of the schemas compiled into the binary.
func SourceFromBuiltin(name string) Source {
	return source{kind: SourceKindBuiltin, location: strings.TrimSpace(name)}
}

// SourceFromURL parses raw as an absolute http(s) URL. It panics on invalid
// input so wiring mistakes surface at startup.
func SourceFromURL(raw string) Source {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		panic(fmt.Sprintf("schema: invalid URL %q: %v", raw, err))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		panic(fmt.Sprintf("schema: unsupported URL scheme %q", parsed.Scheme))
	}
	return source{kind: SourceKindURL, location: raw}
}
