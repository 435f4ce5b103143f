package vanilla

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/blocks"
	"github.com/goliatone/go-formkit/pkg/engine"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const dateTimeLocalLayout = "2006-01-02T15:04"

type fieldEntry struct {
	Field    components.FieldView `json:"field"`
	Control  string               `json:"control"`
	Labelled bool                 `json:"labelled"`
}

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	overrides map[string]string
	partials  map[string]string
	config    map[string]any

	usedComponents map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, overrides, partials map[string]string, config map[string]any) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates:      templates,
		registry:       registry,
		overrides:      overrides,
		partials:       partials,
		config:         config,
		usedComponents: make(map[string]struct{}),
	}
}

func (r *componentRenderer) render(view components.FieldView) (fieldEntry, error) {
	name := strings.TrimSpace(r.overrides[view.Name])
	if name == "" {
		name = r.registry.ForWidget(view.Widget)
	}
	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return fieldEntry{}, fmt.Errorf("component %q not registered for field %q", name, view.Name)
	}
	view.Component = name

	var control bytes.Buffer
	err := descriptor.Renderer(&control, view, components.ComponentData{
		Template:      r.templates,
		ThemePartials: r.partials,
		Config:        r.config,
	})
	if err != nil {
		return fieldEntry{}, fmt.Errorf("render component %q for field %q: %w", name, view.Name, err)
	}
	r.usedComponents[name] = struct{}{}

	return fieldEntry{Field: view, Control: control.String(), Labelled: labelSupportsFor(name)}, nil
}

func (r *componentRenderer) assets() (stylesheets []string, scripts []components.Script) {
	if len(r.usedComponents) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(r.usedComponents))
	for name := range r.usedComponents {
		names = append(names, name)
	}
	slices.Sort(names)
	return r.registry.Assets(names)
}

// buildView joins a field with the request state in opts.
func buildView(field model.Field, opts render.RenderOptions, placeholder string) components.FieldView {
	value, hasValue := opts.Values[field.Name]
	if !hasValue {
		value = field.Default
	}

	view := components.FieldView{
		Name:         field.Name,
		ID:           componentControlID(field.Name),
		Label:        field.Label,
		Description:  field.Description,
		Widget:       field.Widget,
		InputType:    widgets.InputType(field.Widget),
		Required:     field.Required,
		Dir:          opts.Language().Dir(),
		Rows:         field.Rows,
		Accept:       field.Accept,
		ImagePreview: field.ImagePreview,
		Errors:       opts.Errors[field.Name],
	}
	if view.InputType == "" {
		view.InputType = "text"
	}

	if rule, ok := field.Rule(model.ValidationRuleMin); ok {
		view.Min = rule.Params["value"]
	}
	if rule, ok := field.Rule(model.ValidationRuleMax); ok {
		view.Max = rule.Params["value"]
	}
	if rule, ok := field.Rule(model.ValidationRuleMinLength); ok {
		view.MinLength = rule.Params["value"]
	}
	if rule, ok := field.Rule(model.ValidationRuleMaxLength); ok {
		view.MaxLength = rule.Params["value"]
	}
	if rule, ok := field.Rule(model.ValidationRulePattern); ok {
		view.Pattern = rule.Params["pattern"]
	}

	switch field.Widget {
	case widgets.Checkbox:
		view.Checked, _ = value.(bool)
	case widgets.Password:
		view.Value = formatValue(value, field.Widget)
		view.Visible = opts.PasswordVisible[field.Name]
		if view.Visible {
			view.InputType = "text"
		}
	case widgets.Select:
		view.Value = formatValue(value, field.Widget)
		view.Placeholder = placeholder
		for _, opt := range field.Options {
			view.Options = append(view.Options, components.OptionView{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: view.Value != "" && opt.Value == view.Value,
			})
		}
	case widgets.Array:
		for i, item := range stringItems(value) {
			view.Items = append(view.Items, components.ItemView{
				Index:   i,
				Value:   item,
				Preview: blocks.IsPreviewableImage(item),
			})
		}
		view.Staging = opts.Staging[field.Name]
	case widgets.File, widgets.Video, widgets.PDF:
		view.Value = formatValue(value, field.Widget)
		view.Preview = opts.Previews[field.Name]
		if view.Preview == "" && field.Widget == widgets.File && blocks.IsPreviewableImage(view.Value) {
			view.Preview = view.Value
		}
	case widgets.DateTime:
		view.Value = formatValue(value, field.Widget)
		view.Min = opts.Instant().Format(dateTimeLocalLayout)
	default:
		view.Value = formatValue(value, field.Widget)
	}
	return view
}

func formatValue(value any, widget widgets.Kind) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		if widget == widgets.Date {
			return v.Format(time.DateOnly)
		}
		return v.Format(dateTimeLocalLayout)
	case engine.File:
		return v.Name
	case *engine.File:
		if v == nil {
			return ""
		}
		return v.Name
	default:
		return fmt.Sprint(v)
	}
}

func stringItems(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" && item != nil {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
