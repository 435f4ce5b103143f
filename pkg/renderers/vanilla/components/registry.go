package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Renderer writes the control markup of one field into buf.
type Renderer func(buf *bytes.Buffer, field FieldView, data ComponentData) error

// ComponentData carries the template engine, theme partial overrides and
// per-component configuration.
type ComponentData struct {
	Template      rendertemplate.TemplateRenderer
	ThemePartials map[string]string
	Config        map[string]any
}

// Script is a JavaScript dependency emitted once per form.
type Script struct {
	Src    string
	Inline string
	Defer  bool
	Module bool
}

func (s Script) key() string {
	if s.Src != "" {
		return "src:" + s.Src
	}
	return "inline:" + s.Inline
}

// Descriptor is one component: its renderer, the widget kinds it serves by
// default and the assets it needs on the page.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Widgets     []widgets.Kind
	Stylesheets []string
	Scripts     []Script
}

// Registry maps widget kinds to components. Widgets without a binding use
// the fallback component.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
	bindings   map[widgets.Kind]string
	fallback   string
}

// New creates an empty registry whose fallback component is NameInput.
func New() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
		bindings:   make(map[widgets.Kind]string),
		fallback:   NameInput,
	}
}

// Register adds or replaces a component and binds the widgets it lists.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = cloneDescriptor(descriptor)
	for _, kind := range descriptor.Widgets {
		r.bindings[kind] = name
	}
	return nil
}

// MustRegister panics when Register fails.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Bind routes a widget kind to an already registered component.
func (r *Registry) Bind(kind widgets.Kind, name string) error {
	name = normalize(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.components[name]; !ok {
		return fmt.Errorf("components: cannot bind %q to unknown component %q", kind, name)
	}
	r.bindings[kind] = name
	return nil
}

// ForWidget names the component that renders kind.
func (r *Registry) ForWidget(kind widgets.Kind) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name, ok := r.bindings[kind]; ok {
		return name
	}
	return r.fallback
}

// Descriptor fetches a component by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Assets collects the stylesheets and scripts of the named components,
// first occurrence wins.
func (r *Registry) Assets(names []string) (stylesheets []string, scripts []Script) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if _, dup := seen["css:"+href]; href == "" || dup {
				continue
			}
			seen["css:"+href] = struct{}{}
			stylesheets = append(stylesheets, href)
		}
		for _, script := range descriptor.Scripts {
			if _, dup := seen[script.key()]; dup {
				continue
			}
			seen[script.key()] = struct{}{}
			scripts = append(scripts, script)
		}
	}
	return stylesheets, scripts
}

func cloneDescriptor(src Descriptor) Descriptor {
	src.Widgets = slices.Clone(src.Widgets)
	src.Stylesheets = slices.Clone(src.Stylesheets)
	src.Scripts = slices.Clone(src.Scripts)
	return src
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
