package model

import "github.com/goliatone/go-formkit/pkg/widgets"

// Options configures the Builder. The public adapter in pkg/model fills it
// from functional options.
type Options struct {
	Labeler func(string) string
	Widgets *widgets.Registry
}

func defaultOptions() Options {
	return Options{
		Labeler: DefaultLabeler,
		Widgets: widgets.NewRegistry(),
	}
}
