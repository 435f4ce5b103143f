package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

const templatePrefix = "templates/components/"

// Partial keys themes use to replace a component template.
const (
	PartialInput    = "forms.input"
	PartialPassword = "forms.password"
	PartialTextarea = "forms.textarea"
	PartialSelect   = "forms.select"
	PartialCheckbox = "forms.checkbox"
	PartialArray    = "forms.array"
	PartialFile     = "forms.file"
	PartialDateTime = "forms.datetime"
)

// NewDefaultRegistry constructs a registry with one component per widget
// family. Text, email, number and date widgets fall through to NameInput.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer(PartialInput, templatePrefix+"input.tmpl"),
		Widgets:  []widgets.Kind{widgets.Text, widgets.Email, widgets.Number, widgets.Date},
	})
	registry.MustRegister(NamePassword, Descriptor{
		Renderer: templateComponentRenderer(PartialPassword, templatePrefix+"password.tmpl"),
		Widgets:  []widgets.Kind{widgets.Password},
		Scripts:  []Script{{Inline: passwordToggleScript, Defer: true}},
	})
	registry.MustRegister(NameTextarea, Descriptor{
		Renderer: templateComponentRenderer(PartialTextarea, templatePrefix+"textarea.tmpl"),
		Widgets:  []widgets.Kind{widgets.Textarea},
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer(PartialSelect, templatePrefix+"select.tmpl"),
		Widgets:  []widgets.Kind{widgets.Select},
	})
	registry.MustRegister(NameCheckbox, Descriptor{
		Renderer: templateComponentRenderer(PartialCheckbox, templatePrefix+"checkbox.tmpl"),
		Widgets:  []widgets.Kind{widgets.Checkbox},
	})
	registry.MustRegister(NameArray, Descriptor{
		Renderer: templateComponentRenderer(PartialArray, templatePrefix+"array.tmpl"),
		Widgets:  []widgets.Kind{widgets.Array},
	})
	registry.MustRegister(NameFile, Descriptor{
		Renderer: templateComponentRenderer(PartialFile, templatePrefix+"file.tmpl"),
		Widgets:  []widgets.Kind{widgets.File, widgets.Video, widgets.PDF},
	})
	registry.MustRegister(NameDateTime, Descriptor{
		Renderer: templateComponentRenderer(PartialDateTime, templatePrefix+"datetime.tmpl"),
		Widgets:  []widgets.Kind{widgets.DateTime},
	})
	return registry
}

// DefaultPartials maps every component partial key to its embedded template.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialInput:    templatePrefix + "input.tmpl",
		PartialPassword: templatePrefix + "password.tmpl",
		PartialTextarea: templatePrefix + "textarea.tmpl",
		PartialSelect:   templatePrefix + "select.tmpl",
		PartialCheckbox: templatePrefix + "checkbox.tmpl",
		PartialArray:    templatePrefix + "array.tmpl",
		PartialFile:     templatePrefix + "file.tmpl",
		PartialDateTime: templatePrefix + "datetime.tmpl",
	}
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field FieldView, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
			resolved = candidate
		}

		rendered, err := data.Template.RenderTemplate(resolved, map[string]any{
			"field":  field,
			"config": data.Config,
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

const passwordToggleScript = `document.addEventListener("click",function(e){var b=e.target.closest("[data-formkit-toggle]");if(!b)return;var i=document.getElementById(b.getAttribute("data-formkit-toggle"));if(!i)return;var v=i.type==="password";i.type=v?"text":"password";b.setAttribute("aria-pressed",v?"true":"false");});`
