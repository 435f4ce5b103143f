package model

import internalmodel "github.com/goliatone/go-formkit/internal/model"

const (
	ValidationRuleRequired  = internalmodel.ValidationRuleRequired
	ValidationRuleEmail     = internalmodel.ValidationRuleEmail
	ValidationRuleURL       = internalmodel.ValidationRuleURL
	ValidationRuleMin       = internalmodel.ValidationRuleMin
	ValidationRuleMax       = internalmodel.ValidationRuleMax
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRulePattern   = internalmodel.ValidationRulePattern
	ValidationRuleEquals    = internalmodel.ValidationRuleEquals

	MetadataDegradedWidget = internalmodel.MetadataDegradedWidget
)

type (
	ValidationRule = internalmodel.ValidationRule
	Option         = internalmodel.Option
	Field          = internalmodel.Field
	FormModel      = internalmodel.FormModel
)

// DefaultLabeler exposes the built-in key-to-label conversion.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}

// OptionLabel exposes the built-in enum value formatting.
func OptionLabel(value string) string {
	return internalmodel.OptionLabel(value)
}
