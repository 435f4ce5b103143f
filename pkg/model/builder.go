package model

import (
	"github.com/goliatone/go-formkit/internal/model"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Builder converts field schemas into form models.
type Builder interface {
	Build(s schema.Schema, selectOptions map[string][]Option) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
	widgets *widgets.Registry
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithWidgetRegistry swaps the widget inference registry, e.g. one with
// extra caller matchers registered.
func WithWidgetRegistry(reg *widgets.Registry) BuilderOption {
	return func(opts *builderOptions) {
		opts.widgets = reg
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return model.New(model.Options{
		Labeler: cfg.labeler,
		Widgets: cfg.widgets,
	})
}
