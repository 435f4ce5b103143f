package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/model"
)

// Translator resolves message keys for a locale.
type Translator = i18n.Translator

// MissingTranslationHandler decides what to show when a key has no
// translation. fallback is the text the form would show untranslated.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

func missingTranslationDefault(_, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Translation keys looked up by LocalizeFormModel.
func FormTitleKey(formID string) string         { return "forms." + formID + ".title" }
func FieldLabelKey(field string) string         { return "fields." + field + ".label" }
func FieldDescriptionKey(field string) string   { return "fields." + field + ".description" }
func OptionLabelKey(field, value string) string { return "fields." + field + ".options." + value }

// LocalizeFormModel translates the form title, field labels, descriptions and
// option labels in place. Without a translator the form is left untouched.
func LocalizeFormModel(form *model.FormModel, opts RenderOptions) {
	if form == nil || opts.Translator == nil {
		return
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	locale := string(opts.Language())
	tr := func(key, fallback string) string {
		msg, err := opts.Translator.Translate(locale, key)
		if err != nil || strings.TrimSpace(msg) == "" {
			return onMissing(locale, key, fallback, err)
		}
		return msg
	}

	if form.Title != "" {
		form.Title = tr(FormTitleKey(form.ID), form.Title)
	}
	for i := range form.Fields {
		field := &form.Fields[i]
		field.Label = tr(FieldLabelKey(field.Name), field.Label)
		if field.Description != "" {
			field.Description = tr(FieldDescriptionKey(field.Name), field.Description)
		}
		if len(field.Options) == 0 {
			continue
		}
		options := make([]model.Option, len(field.Options))
		for j, opt := range field.Options {
			opt.Label = tr(OptionLabelKey(field.Name, opt.Value), opt.Label)
			options[j] = opt
		}
		field.Options = options
	}
}
