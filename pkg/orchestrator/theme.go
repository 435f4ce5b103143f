package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
)

// WithThemeSelector resolves Request.ThemeName/ThemeVariant through selector
// before rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider builds a go-theme selector over provider with the given
// defaults.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = &theme.Selector{
			Registry:       provider,
			DefaultTheme:   strings.TrimSpace(defaultTheme),
			DefaultVariant: strings.TrimSpace(defaultVariant),
		}
	}
}

// WithThemeFallbacks sets the partials used for keys a theme leaves out.
// Defaults to the vanilla renderer's embedded templates.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

func defaultThemeFallbacks() map[string]string {
	return vanilla.DefaultPartials()
}

// resolveTheme returns nil when no selector is configured.
func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(strings.TrimSpace(req.ThemeName), strings.TrimSpace(req.ThemeVariant))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", req.ThemeName, err)
	}
	fallbacks := o.themeFallbacks
	if fallbacks == nil {
		fallbacks = defaultThemeFallbacks()
	}
	return render.ThemeConfig(selection, fallbacks), nil
}
