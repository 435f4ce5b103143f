package posts

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed schemas/*.yaml schemas/payload.schema.json
var schemaFiles embed.FS

// Builtin schema names.
const (
	SchemaPost     = "post"
	SchemaDoctor   = "doctor"
	SchemaCategory = "category"
	SchemaProduct  = "product"
)

// Builtins exposes the embedded form schemas as <name>.yaml entries, the
// layout schema loaders expect for builtin sources.
func Builtins() fs.FS {
	sub, err := fs.Sub(schemaFiles, "schemas")
	if err != nil {
		panic(err)
	}
	return sub
}

// BuiltinNames lists the embedded form schemas.
func BuiltinNames() []string {
	entries, _ := fs.ReadDir(schemaFiles, "schemas")
	var names []string
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
