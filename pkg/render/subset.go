package render

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// FieldSubset narrows the rendered fields. Include keeps only the named
// fields; Exclude and ExcludeWidgets drop fields after that. An empty subset
// keeps everything.
type FieldSubset struct {
	Include        []string
	Exclude        []string
	ExcludeWidgets []widgets.Kind
}

func (s FieldSubset) empty() bool {
	return len(s.Include) == 0 && len(s.Exclude) == 0 && len(s.ExcludeWidgets) == 0
}

// ApplySubset filters form.Fields in place, keeping form order.
func ApplySubset(form *model.FormModel, subset FieldSubset) {
	if form == nil || subset.empty() {
		return
	}
	include := tokenSet(subset.Include)
	exclude := tokenSet(subset.Exclude)
	skipWidgets := make(map[widgets.Kind]struct{}, len(subset.ExcludeWidgets))
	for _, kind := range subset.ExcludeWidgets {
		skipWidgets[kind] = struct{}{}
	}

	filtered := make([]model.Field, 0, len(form.Fields))
	for _, field := range form.Fields {
		if len(include) > 0 {
			if _, ok := include[field.Name]; !ok {
				continue
			}
		}
		if _, ok := exclude[field.Name]; ok {
			continue
		}
		if _, ok := skipWidgets[field.Widget]; ok {
			continue
		}
		filtered = append(filtered, field)
	}
	form.Fields = filtered
}

func tokenSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out[v] = struct{}{}
		}
	}
	return out
}
