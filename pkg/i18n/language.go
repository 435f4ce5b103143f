// Package i18n resolves bilingual (English/Arabic) text values and provides a
// small message catalog used to translate form labels.
package i18n

import "strings"

// Language identifies a content language.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

// Supported lists the content languages in fallback order.
var Supported = []Language{English, Arabic}

// Default is the language used when none is active.
const Default = English

// Parse normalises a locale tag ("ar-SA", "EN") to a Language. Tags with an
// unsupported primary subtag are returned lower-cased and report false.
func Parse(tag string) (Language, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	lang := Language(tag)
	return lang, lang.Supported()
}

// Supported reports whether l is one of the content languages.
func (l Language) Supported() bool {
	for _, s := range Supported {
		if s == l {
			return true
		}
	}
	return false
}

// Dir returns the text direction for l.
func (l Language) Dir() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

func (l Language) String() string { return string(l) }
