package render

import (
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/engine"
	"github.com/goliatone/go-formkit/pkg/i18n"
)

// RenderOptions carry per-request state renderers need without touching the
// form model.
type RenderOptions struct {
	// Action and Method land on the <form> element. Method defaults to POST.
	Action string
	Method string
	// Values pre-populates controls by field name.
	Values map[string]any
	// Errors holds inline messages by field name; FormErrors are shown above
	// the fields.
	Errors     map[string][]string
	FormErrors []string
	// Locale selects the language for labels and localized values.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
	// RenderedAt is the instant the form is shown. Datetime widgets use it as
	// their minimum. Zero means time.Now at render time.
	RenderedAt time.Time
	// PasswordVisible switches password inputs to plain text per field.
	PasswordVisible map[string]bool
	// Staging holds the pending text of array inputs.
	Staging map[string]string
	// Previews maps upload fields to local preview URLs.
	Previews map[string]string
	// HiddenFields are emitted as hidden inputs (CSRF tokens, versions).
	HiddenFields map[string]string
	// Subset limits which fields are rendered.
	Subset FieldSubset
	// Theme supplies partial overrides and design tokens.
	Theme *theme.RendererConfig
}

// Language resolves Locale to a content language, defaulting to English.
func (o RenderOptions) Language() i18n.Language {
	lang, ok := i18n.Parse(o.Locale)
	if !ok {
		return i18n.Default
	}
	return lang
}

// Instant returns RenderedAt, or now when it is unset.
func (o RenderOptions) Instant() time.Time {
	if o.RenderedAt.IsZero() {
		return time.Now()
	}
	return o.RenderedAt
}

// FromSession copies the live state of an editing session into options:
// values, errors, render instant, password visibility, staging text and
// previews. Fields already set on base are overwritten.
func FromSession(session *engine.Session, base RenderOptions) RenderOptions {
	if session == nil {
		return base
	}
	out := base
	out.Values = session.Values()
	out.Errors = session.Errors()
	out.RenderedAt = session.RenderedAt()
	out.PasswordVisible = make(map[string]bool)
	out.Staging = make(map[string]string)
	out.Previews = make(map[string]string)
	for _, field := range session.Form().Fields {
		if session.PasswordVisible(field.Name) {
			out.PasswordVisible[field.Name] = true
		}
		if text := session.Staging(field.Name); text != "" {
			out.Staging[field.Name] = text
		}
		if url := session.Preview(field.Name); url != "" {
			out.Previews[field.Name] = url
		}
	}
	return out
}
