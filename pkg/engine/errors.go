package engine

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-formkit/pkg/validation"
)

const (
	formValidationCode = "FORM_VALIDATION_FAILED"
	unknownFieldCode   = "FORM_UNKNOWN_FIELD"
	wrongWidgetCode    = "FORM_WIDGET_MISMATCH"
)

// ErrUnknownField is returned for keys outside the form.
var ErrUnknownField = errors.New("engine: unknown field")

// ErrWidgetMismatch is returned when an operation does not apply to the
// field's widget, e.g. adding array items to a text field.
var ErrWidgetMismatch = errors.New("engine: operation not supported by widget")

func validationFailed(errs validation.FieldErrors) error {
	return goerrors.Wrap(errs.Clone(), goerrors.CategoryValidation, "form validation failed").
		WithTextCode(formValidationCode)
}

func unknownField(key string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q", ErrUnknownField, key), goerrors.CategoryValidation, "unknown form field").
		WithTextCode(unknownFieldCode)
}

func widgetMismatch(key, op string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s on %q", ErrWidgetMismatch, op, key), goerrors.CategoryValidation, "unsupported field operation").
		WithTextCode(wrongWidgetCode)
}

// FieldErrorsOf extracts the per-field messages carried by a Submit error.
func FieldErrorsOf(err error) (validation.FieldErrors, bool) {
	var errs validation.FieldErrors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}
