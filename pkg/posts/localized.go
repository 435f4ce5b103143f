package posts

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-formkit/pkg/i18n"
)

// SplitLocalized folds language-prefixed form keys into bilingual values.
// Both `enTitle`/`arTitle` and `en_title`/`ar_title` spellings collapse to
// "title". Keys without a language prefix are returned in rest unchanged.
func SplitLocalized(values map[string]any) (localized map[string]i18n.Text, rest map[string]any) {
	localized = make(map[string]i18n.Text)
	rest = make(map[string]any, len(values))
	for key, value := range values {
		lang, base, ok := splitKey(key)
		if !ok {
			rest[key] = value
			continue
		}
		text, _ := value.(string)
		current := localized[base]
		localized[base] = current.With(lang, strings.TrimSpace(text))
	}
	return localized, rest
}

func splitKey(key string) (i18n.Language, string, bool) {
	for _, lang := range i18n.Supported {
		prefix := lang.String()
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok || rest == "" {
			continue
		}
		if after, snake := strings.CutPrefix(rest, "_"); snake {
			if after == "" {
				return "", "", false
			}
			return lang, after, true
		}
		first := []rune(rest)
		if !unicode.IsUpper(first[0]) {
			continue
		}
		first[0] = unicode.ToLower(first[0])
		return lang, string(first), true
	}
	return "", "", false
}
