package tui

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/engine"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// prompter asks for one field at a time and writes answers to the session.
// Every answer is validated on the spot so the user fixes it before moving
// on.
type prompter struct {
	r       *Renderer
	session *engine.Session
	msg     func(key string, args ...any) string
}

func (p *prompter) field(ctx context.Context, field model.Field) error {
	p.r.logger.Debug("tui.field.prompt", "field", field.Name, "prompt", promptsFor(field.Widget))

	switch field.Widget {
	case widgets.Checkbox:
		return p.confirm(ctx, field)
	case widgets.Select:
		return p.choose(ctx, field)
	case widgets.Array:
		return p.list(ctx, field)
	case widgets.File, widgets.Video, widgets.PDF:
		return p.attach(ctx, field)
	case widgets.Textarea:
		return p.text(ctx, field, func(current string) (string, error) {
			return p.r.driver.TextArea(ctx, TextAreaConfig{
				Message: displayLabel(field),
				Default: current,
				Help:    field.Description,
			})
		})
	case widgets.Password:
		return p.text(ctx, field, func(current string) (string, error) {
			cfg := InputConfig{Message: displayLabel(field), Help: field.Description}
			if p.session.InputMode(field.Name) == "text" {
				cfg.Default = current
				return p.r.driver.Input(ctx, cfg)
			}
			return p.r.driver.Password(ctx, cfg)
		})
	case widgets.DateTime:
		help := p.msg(MessageDateTimeMin, p.session.MinDateTime())
		if field.Description != "" {
			help = field.Description + " " + help
		}
		return p.text(ctx, field, func(current string) (string, error) {
			return p.r.driver.Input(ctx, InputConfig{
				Message: displayLabel(field),
				Default: current,
				Help:    help,
			})
		})
	default:
		return p.text(ctx, field, func(current string) (string, error) {
			return p.r.driver.Input(ctx, InputConfig{
				Message: displayLabel(field),
				Default: current,
				Help:    field.Description,
			})
		})
	}
}

// text repeats ask until the answer passes the field's rules.
func (p *prompter) text(ctx context.Context, field model.Field, ask func(current string) (string, error)) error {
	for {
		answer, err := ask(p.current(field))
		if err != nil {
			return err
		}
		if field.Widget != widgets.Password {
			answer = strings.TrimSpace(answer)
		}
		if p.accept(ctx, field, answer) {
			return nil
		}
	}
}

func (p *prompter) confirm(ctx context.Context, field model.Field) error {
	for {
		current, _ := p.value(field).(bool)
		answer, err := p.r.driver.Confirm(ctx, ConfirmConfig{
			Message: displayLabel(field),
			Default: current,
			Help:    field.Description,
		})
		if err != nil {
			return err
		}
		if p.accept(ctx, field, answer) {
			return nil
		}
	}
}

// choose offers the placeholder first; picking it clears the value.
func (p *prompter) choose(ctx context.Context, field model.Field) error {
	choices := field.Choices()
	labels := make([]string, 0, len(choices)+1)
	labels = append(labels, p.msg(MessageSelectPlaceholder))
	for i, value := range choices {
		labels = append(labels, choiceLabel(field, i, value))
	}

	for {
		current := p.current(field)
		defaultIdx := 0
		if idx := indexOf(choices, current); idx >= 0 {
			defaultIdx = idx + 1
		}
		idx, err := p.r.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(field),
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         field.Description,
		})
		if err != nil {
			return err
		}
		answer := ""
		if idx > 0 && idx <= len(choices) {
			answer = choices[idx-1]
		}
		if p.accept(ctx, field, answer) {
			return nil
		}
	}
}

// list lets the user drop existing entries, then adds new ones until an
// empty answer. Duplicates are reported and skipped.
func (p *prompter) list(ctx context.Context, field model.Field) error {
	for {
		if items := p.session.ArrayItems(field.Name); len(items) > 0 {
			drop, err := p.r.driver.MultiSelect(ctx, SelectConfig{
				Message: p.msg(MessageArrayRemove) + ": " + displayLabel(field),
				Options: items,
			})
			if err != nil {
				return err
			}
			sort.Sort(sort.Reverse(sort.IntSlice(drop)))
			for _, idx := range drop {
				if err := p.session.RemoveArrayItem(field.Name, idx); err != nil {
					return err
				}
			}
		}

		for {
			answer, err := p.r.driver.Input(ctx, InputConfig{
				Message: fmt.Sprintf("%s (%s)", displayLabel(field), p.msg(MessageArrayAdd)),
				Help:    field.Description,
			})
			if err != nil {
				return err
			}
			if strings.TrimSpace(answer) == "" {
				break
			}
			if err := p.session.SetStaging(field.Name, answer); err != nil {
				return err
			}
			added, err := p.session.CommitStaging(field.Name)
			if err != nil {
				return err
			}
			if !added {
				p.info(ctx, p.msg(MessageArrayDuplicate, strings.TrimSpace(answer)))
			}
		}

		if msgs := p.session.ValidateField(field.Name); len(msgs) > 0 {
			p.invalid(ctx, field, msgs)
			continue
		}
		return nil
	}
}

// attach reads the file at the typed path. An empty answer keeps the current
// value.
func (p *prompter) attach(ctx context.Context, field model.Field) error {
	for {
		path, err := p.r.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s (%s)", displayLabel(field), p.msg(MessageFilePath)),
			Help:    strings.TrimSpace(field.Description + " " + field.Accept),
		})
		if err != nil {
			return err
		}
		path = strings.TrimSpace(path)
		if path == "" {
			if msgs := p.session.ValidateField(field.Name); len(msgs) > 0 {
				p.invalid(ctx, field, msgs)
				continue
			}
			return nil
		}

		data, err := p.r.readFile(path)
		if err != nil {
			p.invalid(ctx, field, []string{err.Error()})
			continue
		}
		file := engine.File{
			Name:        filepath.Base(path),
			ContentType: contentType(path, data),
			Size:        int64(len(data)),
			Data:        data,
		}
		if !acceptMatches(field.Accept, file) {
			p.invalid(ctx, field, []string{fmt.Sprintf("%v: %s", ErrFileRejected, file.ContentType)})
			continue
		}
		preview, err := p.session.AttachFile(field.Name, file)
		if err != nil {
			return err
		}
		if preview != "" {
			p.info(ctx, p.msg(MessageFilePreview, preview))
		}
		if msgs := p.session.ValidateField(field.Name); len(msgs) > 0 {
			p.invalid(ctx, field, msgs)
			continue
		}
		return nil
	}
}

// accept stores answer and reports whether it validates.
func (p *prompter) accept(ctx context.Context, field model.Field, answer any) bool {
	if err := p.session.Set(field.Name, answer); err != nil {
		p.invalid(ctx, field, []string{err.Error()})
		return false
	}
	if msgs := p.session.ValidateField(field.Name); len(msgs) > 0 {
		p.invalid(ctx, field, msgs)
		return false
	}
	return true
}

func (p *prompter) invalid(ctx context.Context, field model.Field, msgs []string) {
	text := p.r.theme.ErrorPrefix + p.msg(MessageInvalid, displayLabel(field), strings.Join(msgs, "; "))
	_ = p.r.driver.Info(ctx, text)
}

func (p *prompter) info(ctx context.Context, msg string) {
	_ = p.r.driver.Info(ctx, p.r.theme.InfoPrefix+msg)
}

func (p *prompter) value(field model.Field) any {
	value, _ := p.session.Value(field.Name)
	return value
}

// current formats the session value as prompt default text.
func (p *prompter) current(field model.Field) string {
	switch v := p.value(field).(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		if v.IsZero() {
			return ""
		}
		if field.Widget == widgets.DateTime {
			return v.Format("2006-01-02T15:04")
		}
		return v.Format("2006-01-02")
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

func choiceLabel(field model.Field, idx int, value string) string {
	if len(field.Options) > 0 && idx < len(field.Options) && field.Options[idx].Label != "" {
		return field.Options[idx].Label
	}
	return model.OptionLabel(value)
}

func contentType(path string, data []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		if media, _, err := mime.ParseMediaType(byExt); err == nil {
			return media
		}
	}
	media, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return media
}

// acceptMatches applies an HTML accept list: "image/*", "application/pdf"
// or ".ext" entries separated by commas. An empty list accepts anything.
func acceptMatches(accept string, file engine.File) bool {
	if strings.TrimSpace(accept) == "" {
		return true
	}
	ct := strings.ToLower(file.ContentType)
	name := strings.ToLower(file.Name)
	for _, entry := range strings.Split(accept, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		switch {
		case entry == "":
		case strings.HasPrefix(entry, "."):
			if strings.HasSuffix(name, entry) {
				return true
			}
		case strings.HasSuffix(entry, "/*"):
			if strings.HasPrefix(ct, strings.TrimSuffix(entry, "*")) {
				return true
			}
		case entry == ct:
			return true
		}
	}
	return false
}
