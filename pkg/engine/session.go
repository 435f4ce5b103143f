package engine

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/interfaces"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// SubmitFunc receives the coerced values of a valid form.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// Session is one editing pass over a form. It is owned by a single caller
// and is not safe for concurrent use.
type Session struct {
	form       model.FormModel
	fields     map[string]model.Field
	state      *state
	validator  *validation.Validator
	renderedAt time.Time

	visible  map[string]bool
	staging  map[string]string
	previews PreviewStore
	live     map[string]string

	validateOnChange bool
	now              func() time.Time
	logger           interfaces.Logger
}

// NewSession seeds a session from caller defaults. Keys missing from
// defaults start from the field default or the zero value of the kind.
func NewSession(form model.FormModel, defaults map[string]any, opts ...Option) *Session {
	s := &Session{
		form:     form,
		fields:   make(map[string]model.Field, len(form.Fields)),
		visible:  make(map[string]bool),
		staging:  make(map[string]string),
		live:     make(map[string]string),
		previews: NewMemoryPreviews(),
		now:      time.Now,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	for _, field := range form.Fields {
		s.fields[field.Name] = field
	}
	s.renderedAt = s.now()
	s.state = newState(form, defaults)
	s.validator = validation.New(form, validation.WithNotBefore(s.renderedAt))
	return s
}

// Form returns the form model the session edits.
func (s *Session) Form() model.FormModel { return s.form }

// RenderedAt is the instant the session started. Datetime widgets use it as
// their minimum.
func (s *Session) RenderedAt() time.Time { return s.renderedAt }

// MinDateTime formats RenderedAt for a datetime-local input.
func (s *Session) MinDateTime() string {
	return s.renderedAt.Format("2006-01-02T15:04")
}

// Values returns a copy of the current values.
func (s *Session) Values() map[string]any { return s.state.snapshot() }

// Value returns the current value of key.
func (s *Session) Value(key string) (any, bool) {
	value, ok := s.state.values[key]
	return deepCopy(value), ok
}

// Set replaces the value of key.
func (s *Session) Set(key string, value any) error {
	if _, ok := s.fields[key]; !ok {
		return unknownField(key)
	}
	s.state.values[key] = deepCopy(value)
	s.changed(key)
	return nil
}

// Toggle flips a checkbox field and returns the new value.
func (s *Session) Toggle(key string) (bool, error) {
	field, ok := s.fields[key]
	if !ok {
		return false, unknownField(key)
	}
	if field.Widget != widgets.Checkbox {
		return false, widgetMismatch(key, "toggle")
	}
	current, _ := s.state.values[key].(bool)
	s.state.values[key] = !current
	s.changed(key)
	return !current, nil
}

// TogglePasswordVisibility flips the masked state of one password field and
// returns whether its text is now visible. The value is untouched.
func (s *Session) TogglePasswordVisibility(key string) (bool, error) {
	field, ok := s.fields[key]
	if !ok {
		return false, unknownField(key)
	}
	if field.Widget != widgets.Password {
		return false, widgetMismatch(key, "toggle visibility")
	}
	s.visible[key] = !s.visible[key]
	return s.visible[key], nil
}

// PasswordVisible reports the visibility of a password field.
func (s *Session) PasswordVisible(key string) bool { return s.visible[key] }

// InputMode is the effective input type of key: password fields switch
// between "password" and "text".
func (s *Session) InputMode(key string) string {
	field, ok := s.fields[key]
	if !ok {
		return ""
	}
	if field.Widget == widgets.Password && s.visible[key] {
		return "text"
	}
	return widgets.InputType(field.Widget)
}

// SetStaging stores the pending text of an array field's add input.
func (s *Session) SetStaging(key, text string) error {
	if err := s.requireWidget(key, widgets.Array, "stage"); err != nil {
		return err
	}
	s.staging[key] = text
	return nil
}

// Staging returns the pending text of an array field.
func (s *Session) Staging(key string) string { return s.staging[key] }

// CommitStaging adds the staged text and clears the input. It reports
// whether an item was added.
func (s *Session) CommitStaging(key string) (bool, error) {
	if err := s.requireWidget(key, widgets.Array, "commit"); err != nil {
		return false, err
	}
	added, err := s.AddArrayItem(key, s.staging[key])
	if err != nil {
		return false, err
	}
	s.staging[key] = ""
	return added, nil
}

// AddArrayItem appends the trimmed item unless it is empty or already
// present. Comparison is exact and case-sensitive.
func (s *Session) AddArrayItem(key, item string) (bool, error) {
	if err := s.requireWidget(key, widgets.Array, "add"); err != nil {
		return false, err
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return false, nil
	}
	items := stringList(s.state.values[key])
	for _, existing := range items {
		if existing == item {
			return false, nil
		}
	}
	s.state.values[key] = append(items, item)
	s.logger.Debug("form.array.added", "field", key, "count", len(items)+1)
	s.changed(key)
	return true, nil
}

// RemoveArrayItem drops the entry at index. Out-of-range indexes are ignored.
func (s *Session) RemoveArrayItem(key string, index int) error {
	if err := s.requireWidget(key, widgets.Array, "remove"); err != nil {
		return err
	}
	items := stringList(s.state.values[key])
	if index < 0 || index >= len(items) {
		return nil
	}
	s.state.values[key] = append(items[:index:index], items[index+1:]...)
	s.changed(key)
	return nil
}

// ArrayItems returns the entries of an array field.
func (s *Session) ArrayItems(key string) []string {
	return stringList(s.state.values[key])
}

// AttachFile stores the handle as the field value. Image files also get a
// local preview URL, replacing any earlier preview for the field.
func (s *Session) AttachFile(key string, file File) (string, error) {
	field, ok := s.fields[key]
	if !ok {
		return "", unknownField(key)
	}
	if !widgets.IsUpload(field.Widget) {
		return "", widgetMismatch(key, "attach")
	}
	s.releasePreview(key)
	s.state.values[key] = file
	s.changed(key)
	if !file.IsImage() {
		return "", nil
	}
	url, err := s.previews.Create(file)
	if err != nil {
		return "", err
	}
	s.live[key] = url
	return url, nil
}

// Preview returns the live preview URL of key, if any.
func (s *Session) Preview(key string) string { return s.live[key] }

// Close releases every preview URL the session issued.
func (s *Session) Close() {
	for key := range s.live {
		s.releasePreview(key)
	}
}

func (s *Session) releasePreview(key string) {
	if url, ok := s.live[key]; ok {
		s.previews.Revoke(url)
		delete(s.live, key)
	}
}

// changed re-validates key after an edit when validate-on-change is on.
func (s *Session) changed(key string) {
	if s.validateOnChange {
		s.ValidateField(key)
	}
}

// ValidateField checks one field (blur/change) and records its messages.
func (s *Session) ValidateField(key string) []string {
	_, messages := s.validator.Field(key, s.state.values[key], s.state.values)
	if len(messages) == 0 {
		delete(s.state.errors, key)
		return nil
	}
	s.state.errors[key] = messages
	return messages
}

// Validate checks every field and replaces the recorded messages.
func (s *Session) Validate() validation.FieldErrors {
	_, errs := s.validator.Validate(s.state.values)
	if errs == nil {
		errs = validation.FieldErrors{}
	}
	s.state.errors = errs
	return errs.Clone()
}

// Errors returns the messages from the last validation.
func (s *Session) Errors() validation.FieldErrors { return s.state.errors.Clone() }

// Submit validates the whole form. When any field fails the messages are
// recorded, fn is not called, and a validation error is returned. Otherwise
// fn receives every field coerced to its kind.
func (s *Session) Submit(ctx context.Context, fn SubmitFunc) error {
	values, errs := s.validator.Validate(s.state.values)
	if len(errs) > 0 {
		s.state.errors = errs
		s.logger.Debug("form.submit.rejected", "form", s.form.ID, "fields", len(errs))
		return validationFailed(errs)
	}
	s.state.errors = validation.FieldErrors{}

	if err := ctx.Err(); err != nil {
		return err
	}
	if fn == nil {
		return nil
	}
	if err := fn(ctx, values); err != nil {
		s.logger.Warn("form.submit.callback_failed", "form", s.form.ID, "error", err)
		return err
	}
	s.logger.Info("form.submit.accepted", "form", s.form.ID)
	return nil
}

func (s *Session) requireWidget(key string, widget widgets.Kind, op string) error {
	field, ok := s.fields[key]
	if !ok {
		return unknownField(key)
	}
	if field.Widget != widget {
		return widgetMismatch(key, op)
	}
	return nil
}

// KindOf returns the declared kind of key.
func (s *Session) KindOf(key string) schema.Kind {
	return s.fields[key].Kind
}
