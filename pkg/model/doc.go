// Package model defines the form model consumed by renderers and editing
// sessions. Builders live in internal/model and return the types re-exported
// here. Each Field carries the inferred widget, the filtered enum, the select
// options (caller options win over schema enums), and validation rules with
// string parameters (min/max, minLength/maxLength, pattern, equals) so
// renderers can map them onto attributes and validators alike.
package model
