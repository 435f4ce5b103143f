package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig flattens a go-theme selection into the renderer config:
// manifest templates and tokens with the selected variant layered on top,
// fallbacks for partials the theme does not override, CSS variables derived
// from tokens, and an asset resolver over the merged asset files.
func ThemeConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		if len(fallbacks) == 0 {
			return nil
		}
		return &theme.RendererConfig{Partials: copyStrings(fallbacks)}
	}

	partials := copyStrings(fallbacks)
	tokens := map[string]string{}
	files := map[string]string{}
	prefix := ""

	if m := selection.Manifest; m != nil {
		mergeStrings(partials, m.Templates)
		mergeStrings(tokens, m.Tokens)
		mergeStrings(files, m.Assets.Files)
		prefix = m.Assets.Prefix
		if variant, ok := m.Variants[selection.Variant]; ok {
			mergeStrings(partials, variant.Templates)
			mergeStrings(tokens, variant.Tokens)
			mergeStrings(files, variant.Assets.Files)
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok {
				return ""
			}
			if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + file
		},
	}
}

// CSSVarsStyle renders theme CSS variables as a :root rule.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {")
	for _, key := range keys {
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";")
	}
	b.WriteString(" }")
	return b.String()
}

func copyStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	mergeStrings(out, in)
	return out
}

func mergeStrings(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}
