package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single or multi-select prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Defaults     []int // used for multi-select; indices into Options
	Help         string
	PageSize     int
}

// TextAreaConfig configures a multi-line text prompt.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver abstracts the terminal so prompting can be tested without a
// real TTY and callers can swap implementations.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

// surveyDriver prompts through survey on the configured terminal streams.
type surveyDriver struct {
	stdio terminal.Stdio
}

// NewSurveyDriver builds the default driver over explicit streams. Renderers
// created without WithPromptDriver use the process stdio.
func NewSurveyDriver(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) PromptDriver {
	return &surveyDriver{stdio: terminal.Stdio{In: in, Out: out, Err: errOut}}
}

func newSurveyDriver() PromptDriver {
	return NewSurveyDriver(os.Stdin, os.Stdout, os.Stderr)
}

// ask runs one survey prompt into a value of type T.
func ask[T any](ctx context.Context, d *surveyDriver, prompt survey.Prompt, validate func(string) error) (T, error) {
	var out T
	if err := ctx.Err(); err != nil {
		return out, err
	}
	opts := append(askOpts(validate), survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err))
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return out, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	return ask[string](ctx, d, &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, cfg.Validator)
}

// Password masks input. survey has no default for masked prompts, so an
// empty answer is returned as is and the caller decides what it means.
func (d *surveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return ask[string](ctx, d, &survey.Password{Message: cfg.Message, Help: cfg.Help}, cfg.Validator)
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	return ask[bool](ctx, d, &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, nil)
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	answer, err := ask[string](ctx, d, prompt, nil)
	if err != nil {
		return 0, err
	}
	return indexOf(cfg.Options, answer), nil
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	prompt := &survey.MultiSelect{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if len(cfg.Defaults) > 0 {
		prompt.Default = defaultsFromIndices(cfg.Options, cfg.Defaults)
	}
	answers, err := ask[[]string](ctx, d, prompt, nil)
	if err != nil {
		return nil, err
	}
	return indicesOf(cfg.Options, answers), nil
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	return ask[string](ctx, d, &survey.Multiline{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, nil)
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.stdio.Out, msg)
	return err
}

func askOpts(validate func(string) error) []survey.AskOpt {
	if validate == nil {
		return nil
	}
	return []survey.AskOpt{survey.WithValidator(func(ans any) error {
		text, _ := ans.(string)
		return validate(text)
	})}
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

func indicesOf(options, values []string) []int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	var out []int
	for i, option := range options {
		if _, ok := seen[option]; ok {
			out = append(out, i)
		}
	}
	return out
}

func defaultsFromIndices(options []string, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}
