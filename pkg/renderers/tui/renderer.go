package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/engine"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/interfaces"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Prompt message keys. Callers can override them through
// RenderOptions.Translator.
const (
	MessageSelectPlaceholder = "formkit.select.placeholder"
	MessageArrayAdd          = "formkit.tui.array.add"
	MessageArrayRemove       = "formkit.tui.array.remove"
	MessageArrayDuplicate    = "formkit.tui.array.duplicate"
	MessageFilePath          = "formkit.tui.file.path"
	MessageFilePreview       = "formkit.tui.file.preview"
	MessageDateTimeMin       = "formkit.tui.datetime.min"
	MessageInvalid           = "formkit.tui.invalid"
)

var promptMessages = i18n.NewCatalog().
	Add(i18n.English, map[string]string{
		MessageSelectPlaceholder: "Select an option",
		MessageArrayAdd:          "add an entry, leave empty to finish",
		MessageArrayRemove:       "Remove entries",
		MessageArrayDuplicate:    "Already listed: %s",
		MessageFilePath:          "path to file",
		MessageFilePreview:       "Preview: %s",
		MessageDateTimeMin:       "Earliest: %s",
		MessageInvalid:           "Invalid %s: %s",
	}).
	Add(i18n.Arabic, map[string]string{
		MessageSelectPlaceholder: "اختر خيارًا",
		MessageArrayAdd:          "أضف عنصرًا، اتركه فارغًا للإنهاء",
		MessageArrayRemove:       "إزالة عناصر",
		MessageArrayDuplicate:    "موجود بالفعل: %s",
		MessageFilePath:          "مسار الملف",
		MessageFilePreview:       "معاينة: %s",
		MessageDateTimeMin:       "الأقرب: %s",
		MessageInvalid:           "قيمة غير صالحة في %s: %s",
	})

// Renderer implements render.Renderer for terminal sessions. It walks the
// fields of a form, records answers in an engine.Session and serializes the
// submitted values.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	readFile          FileReader
	logger            interfaces.Logger
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		readFile:     os.ReadFile,
		logger:       logging.NoOp(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field of form and returns the submitted values.
// opts.Values seed the answers, opts.RenderedAt fixes the datetime minimum
// and opts.PasswordVisible prompts the listed password fields in clear text.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form.Fields = append([]model.Field(nil), form.Fields...)
	render.ApplySubset(&form, opts.Subset)
	render.LocalizeFormModel(&form, opts)

	sessionOpts := []engine.Option{engine.WithLogger(r.logger)}
	if !opts.RenderedAt.IsZero() {
		at := opts.RenderedAt
		sessionOpts = append(sessionOpts, engine.WithClock(func() time.Time { return at }))
	}
	session := engine.NewSession(form, opts.Values, sessionOpts...)
	defer session.Close()

	for key, visible := range opts.PasswordVisible {
		if visible {
			// Non-password keys are ignored.
			_, _ = session.TogglePasswordVisibility(key)
		}
	}

	values, err := r.Fill(ctx, session, opts)
	if err != nil {
		return nil, err
	}
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

// Fill prompts for every field of the session's form, then submits. Fields
// rejected on submit are prompted again until the form validates or the
// driver fails. It returns the coerced values handed to the submit callback.
func (r *Renderer) Fill(ctx context.Context, session *engine.Session, opts render.RenderOptions) (map[string]any, error) {
	if session == nil {
		return nil, errors.New("tui: session is required")
	}
	p := &prompter{
		r:       r,
		session: session,
		msg:     messages(opts),
	}

	pending := session.Form().Fields
	for {
		for _, field := range pending {
			if err := p.field(ctx, field); err != nil {
				return nil, err
			}
		}

		var submitted map[string]any
		err := session.Submit(ctx, func(_ context.Context, values map[string]any) error {
			submitted = values
			return nil
		})
		if err == nil {
			return submitted, nil
		}
		fieldErrs, ok := engine.FieldErrorsOf(err)
		if !ok {
			return nil, err
		}

		pending = pending[:0:0]
		for _, field := range session.Form().Fields {
			if !fieldErrs.Has(field.Name) {
				continue
			}
			p.invalid(ctx, field, fieldErrs[field.Name])
			pending = append(pending, field)
		}
		r.logger.Debug("tui.submit.retry", "form", session.Form().ID, "fields", len(pending))
	}
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return jsonBytes(values)
	}
}

func messages(opts render.RenderOptions) func(key string, args ...any) string {
	lang := string(opts.Language())
	return func(key string, args ...any) string {
		if opts.Translator != nil {
			if msg, err := opts.Translator.Translate(lang, key, args...); err == nil && strings.TrimSpace(msg) != "" {
				return msg
			}
		}
		msg, _ := promptMessages.Translate(lang, key, args...)
		return msg
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func promptsFor(kind widgets.Kind) string {
	switch kind {
	case widgets.Textarea:
		return "textarea"
	case widgets.Password:
		return "password"
	case widgets.Select:
		return "select"
	case widgets.Checkbox:
		return "confirm"
	case widgets.Array:
		return "list"
	case widgets.File, widgets.Video, widgets.PDF:
		return "file"
	default:
		return "input"
	}
}
