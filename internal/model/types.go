package model

import (
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleEmail     = "email"
	ValidationRuleURL       = "url"
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleEquals    = "equals"
)

// ValidationRule is a single constraint attached to a field. Bounds and
// lengths keep their threshold in Params["value"], patterns in
// Params["pattern"], and equality rules name the other field in
// Params["field"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Option is a select choice.
type Option = schema.Option

// Field is one input in a built form.
type Field struct {
	Name        string           `json:"name"`
	Kind        schema.Kind      `json:"kind"`
	Items       schema.Kind      `json:"items,omitempty"`
	Widget      widgets.Kind     `json:"widget"`
	Label       string           `json:"label"`
	Description string           `json:"description,omitempty"`
	Required    bool             `json:"required"`
	Default     any              `json:"default,omitempty"`
	Enum        []string         `json:"enum,omitempty"`
	Options     []Option         `json:"options,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty"`
	// Accept filters the file picker of upload widgets.
	Accept string `json:"accept,omitempty"`
	// Rows is set for textarea widgets.
	Rows int `json:"rows,omitempty"`
	// ImagePreview renders array members as thumbnails instead of chips.
	ImagePreview bool              `json:"imagePreview,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Choices returns the values a select field accepts.
func (f Field) Choices() []string {
	if len(f.Options) > 0 {
		values := make([]string, len(f.Options))
		for i, opt := range f.Options {
			values[i] = opt.Value
		}
		return values
	}
	return f.Enum
}

// Rule returns the first validation rule of the given kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// FormModel is what renderers and editing sessions consume.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks up a field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
