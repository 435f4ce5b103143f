package i18n

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Text is either a plain string or a per-language value. The JSON form is
// a bare string or an object keyed by language ({"en": "...", "ar": "..."}).
type Text struct {
	plain  string
	isText bool
	values map[Language]string
}

// Plain returns a Text holding a language-independent string.
func Plain(s string) Text {
	return Text{plain: s, isText: true}
}

// Localized returns a Text holding the English and Arabic variants.
func Localized(en, ar string) Text {
	return Text{values: map[Language]string{English: en, Arabic: ar}}
}

// IsPlain reports whether t holds a language-independent string.
func (t Text) IsPlain() bool { return t.isText }

// In returns the raw value stored for lang without fallback.
func (t Text) In(lang Language) string {
	if t.isText {
		return t.plain
	}
	return t.values[lang]
}

// With returns a copy of t with lang set to value. A plain Text becomes a
// localized one.
func (t Text) With(lang Language, value string) Text {
	out := Text{values: make(map[Language]string, len(t.values)+1)}
	for k, v := range t.values {
		out.values[k] = v
	}
	out.values[lang] = value
	return out
}

// Resolve returns the string to display for the active language.
func (t Text) Resolve(active Language) string {
	if t.isText {
		return t.plain
	}
	return resolveMap(t.values, active)
}

// Empty reports whether no variant holds text.
func (t Text) Empty() bool {
	if t.isText {
		return strings.TrimSpace(t.plain) == ""
	}
	for _, v := range t.values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (t Text) MarshalJSON() ([]byte, error) {
	if t.isText {
		return json.Marshal(t.plain)
	}
	out := make(map[string]string, len(Supported))
	for _, lang := range Supported {
		out[string(lang)] = t.values[lang]
	}
	return json.Marshal(out)
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Plain(s)
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("i18n: text must be a string or a language map: %w", err)
	}
	values := make(map[Language]string, len(m))
	for k, v := range m {
		values[Language(k)] = v
	}
	*t = Text{values: values}
	return nil
}

// Resolve resolves value for the active language. value may be a string, a
// Text, or a language-keyed map; a plain string always wins. Otherwise the
// active language is tried, then English, then Arabic, then "". Empty
// variants count as missing.
func Resolve(value any, active Language) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case Text:
		return v.Resolve(active)
	case *Text:
		if v == nil {
			return ""
		}
		return v.Resolve(active)
	case map[Language]string:
		return resolveMap(v, active)
	case map[string]string:
		m := make(map[Language]string, len(v))
		for k, s := range v {
			m[Language(k)] = s
		}
		return resolveMap(m, active)
	case map[string]any:
		m := make(map[Language]string, len(v))
		for k, raw := range v {
			if s, ok := raw.(string); ok {
				m[Language(k)] = s
			}
		}
		return resolveMap(m, active)
	default:
		return ""
	}
}

func resolveMap(values map[Language]string, active Language) string {
	for _, lang := range []Language{active, English, Arabic} {
		if s := values[lang]; s != "" {
			return s
		}
	}
	return ""
}
