package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const (
	// MetadataDegradedWidget records the widget a field would have used when
	// it had to fall back to text.
	MetadataDegradedWidget = "widget.degraded"
)

// Builder converts field schemas into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.Widgets != nil {
		opts.Widgets = options.Widgets
	}
	return &Builder{opts: opts}
}

// Build produces one Field per schema key, in schema order. selectOptions
// maps field keys to caller-supplied choices which take precedence over any
// enum declared in the schema.
func (b *Builder) Build(s schema.Schema, selectOptions map[string][]Option) (FormModel, error) {
	if s.Len() == 0 {
		return FormModel{}, fmt.Errorf("model: schema %q has no fields", s.ID)
	}

	form := FormModel{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Fields:      make([]Field, 0, s.Len()),
	}
	for _, entry := range s.Fields() {
		form.Fields = append(form.Fields, b.buildField(entry.Key, entry.Descriptor, selectOptions[entry.Key]))
	}
	return form, nil
}

func (b *Builder) buildField(key string, desc schema.FieldDescriptor, callerOptions []Option) Field {
	label := strings.TrimSpace(desc.Label)
	if label == "" {
		label = b.opts.Labeler(key)
	}

	field := Field{
		Name:        key,
		Kind:        desc.Kind,
		Items:       desc.Items,
		Label:       label,
		Description: desc.Description,
		Required:    desc.Rules.Required,
		Default:     desc.Default,
		Enum:        desc.AllowedValues(),
		Validations: validationRules(desc),
	}
	field.Widget = b.opts.Widgets.Infer(desc, key, callerOptions)

	switch {
	case field.Widget == widgets.Select:
		field.Options = selectOptionsFor(callerOptions, field.Enum)
		if len(field.Options) == 0 {
			field.Widget = widgets.Text
			field.Metadata = map[string]string{MetadataDegradedWidget: string(widgets.Select)}
		}
	case field.Widget == widgets.Textarea:
		field.Rows = widgets.TextareaRows(key)
	case field.Widget == widgets.Array:
		field.ImagePreview = widgets.IsImageKey(key)
	case widgets.IsUpload(field.Widget):
		field.Accept = widgets.Accept(field.Widget)
	}
	return field
}

func selectOptionsFor(callerOptions []Option, enum []string) []Option {
	if len(callerOptions) > 0 {
		out := make([]Option, len(callerOptions))
		for i, opt := range callerOptions {
			if strings.TrimSpace(opt.Label) == "" {
				opt.Label = OptionLabel(opt.Value)
			}
			out[i] = opt
		}
		return out
	}
	out := make([]Option, 0, len(enum))
	for _, value := range enum {
		out = append(out, Option{Value: value, Label: OptionLabel(value)})
	}
	return out
}

func validationRules(desc schema.FieldDescriptor) []ValidationRule {
	var rules []ValidationRule
	add := func(kind string, params map[string]string) {
		rules = append(rules, ValidationRule{Kind: kind, Params: params})
	}

	r := desc.Rules
	if r.Required {
		add(ValidationRuleRequired, nil)
	}
	if r.Email {
		add(ValidationRuleEmail, nil)
	}
	if r.URL {
		add(ValidationRuleURL, nil)
	}
	if r.MinLength != nil {
		add(ValidationRuleMinLength, map[string]string{"value": strconv.Itoa(*r.MinLength)})
	}
	if r.MaxLength != nil {
		add(ValidationRuleMaxLength, map[string]string{"value": strconv.Itoa(*r.MaxLength)})
	}
	if r.Min != nil {
		add(ValidationRuleMin, map[string]string{"value": formatFloat(*r.Min)})
	}
	if r.Max != nil {
		add(ValidationRuleMax, map[string]string{"value": formatFloat(*r.Max)})
	}
	if r.Pattern != "" {
		add(ValidationRulePattern, map[string]string{"pattern": r.Pattern})
	}
	for _, ref := range desc.Refs() {
		add(ValidationRuleEquals, map[string]string{"field": ref})
	}
	return rules
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
