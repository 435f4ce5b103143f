package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/i18n"
)

// TemplateI18nConfig configures the template translation helpers.
type TemplateI18nConfig struct {
	// LocaleKey is read from map template data to find the locale.
	LocaleKey string
	// FuncName renames the translate helper.
	FuncName  string
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers for template engines:
//
//	translate(localeSrc, key, ...args) string
//	current_locale(localeSrc) string
//	localized(value, localeSrc) string
//
// localeSrc is a locale string or a map holding it under cfg.LocaleKey.
// localized resolves plain or {en, ar} values.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}
	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}
	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		translateName: func(localeSrc any, key string, params ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			locale := resolveLocale(localeSrc, localeKey)
			if t == nil {
				return onMissing(locale, key, "", ErrMissingTranslator)
			}
			msg, err := t.Translate(locale, key, params...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, "", err)
			}
			return msg
		},
		"current_locale": func(localeSrc any) string {
			return resolveLocale(localeSrc, localeKey)
		},
		"localized": func(value any, localeSrc any) string {
			lang, _ := i18n.Parse(resolveLocale(localeSrc, localeKey))
			return i18n.Resolve(value, lang)
		},
	}
}

func resolveLocale(src any, key string) string {
	switch data := src.(type) {
	case nil:
		return ""
	case string:
		return data
	case i18n.Language:
		return string(data)
	case map[string]string:
		return data[key]
	case map[string]any:
		if v, ok := data[key]; ok && v != nil {
			return strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return ""
}
