package components

import "github.com/goliatone/go-formkit/pkg/widgets"

// OptionView is a select choice with its selection state.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ItemView is one entry of an array field.
type ItemView struct {
	Index   int    `json:"index"`
	Value   string `json:"value"`
	Preview bool   `json:"preview"`
}

// FieldView is a form field joined with the render state of one request.
// Templates only see this shape.
type FieldView struct {
	Name        string       `json:"name"`
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Description string       `json:"description,omitempty"`
	Widget      widgets.Kind `json:"widget"`
	Component   string       `json:"component"`
	InputType   string       `json:"inputType"`
	Required    bool         `json:"required"`
	Dir         string       `json:"dir"`

	Value   string `json:"value"`
	Checked bool   `json:"checked"`

	Options     []OptionView `json:"options,omitempty"`
	Placeholder string       `json:"placeholder"`

	Rows int `json:"rows,omitempty"`

	Items        []ItemView `json:"items,omitempty"`
	ImagePreview bool       `json:"imagePreview"`
	Staging      string     `json:"staging"`

	Accept  string `json:"accept,omitempty"`
	Preview string `json:"preview,omitempty"`

	// Visible reports an unmasked password.
	Visible bool `json:"visible"`

	Min       string `json:"min,omitempty"`
	Max       string `json:"max,omitempty"`
	MinLength string `json:"minLength,omitempty"`
	MaxLength string `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	Errors []string `json:"errors,omitempty"`
}
