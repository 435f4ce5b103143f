package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Kind names the input control used for a field.
type Kind string

// Built-in widget kinds.
const (
	Text     Kind = "text"
	Email    Kind = "email"
	Password Kind = "password"
	Number   Kind = "number"
	Textarea Kind = "textarea"
	Select   Kind = "select"
	Checkbox Kind = "checkbox"
	Array    Kind = "array"
	DateTime Kind = "datetime"
	Date     Kind = "date"
	File     Kind = "file"
	Video    Kind = "video"
	PDF      Kind = "pdf"
)

// Builtins lists the built-in widget kinds in declaration order.
func Builtins() []Kind {
	return []Kind{Text, Email, Password, Number, Textarea, Select, Checkbox, Array, DateTime, Date, File, Video, PDF}
}

// Builtin reports whether k is one of the built-in widget kinds.
func (k Kind) Builtin() bool {
	for _, kind := range Builtins() {
		if k == kind {
			return true
		}
	}
	return false
}

// Subject is everything a matcher may look at.
type Subject struct {
	Key        string
	Descriptor schema.FieldDescriptor
	Options    []schema.Option
	// Enum holds the filtered allowed values of Descriptor.
	Enum []string
}

// NewSubject extracts the enum once so matchers do not repeat the work.
func NewSubject(desc schema.FieldDescriptor, key string, options []schema.Option) Subject {
	return Subject{
		Key:        key,
		Descriptor: desc,
		Options:    options,
		Enum:       desc.AllowedValues(),
	}
}

func (s Subject) lowerKey() string {
	return strings.ToLower(s.Key)
}

// Matcher reports whether a widget applies to the subject.
type Matcher func(Subject) bool

type rule struct {
	kind     Kind
	priority int
	match    Matcher
	order    int
}

// Registry picks a widget for a field. Higher priority wins; ties fall back
// to registration order. An explicit Descriptor.Widget bypasses matchers.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry returns a registry with the built-in inference rules.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry returns a registry without any rules.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds a matcher for kind at priority.
func (r *Registry) Register(kind Kind, priority int, matcher Matcher) {
	if r == nil || matcher == nil || strings.TrimSpace(string(kind)) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		kind:     kind,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget for the subject, or false when nothing matched.
func (r *Registry) Resolve(subject Subject) (Kind, bool) {
	if explicit := strings.TrimSpace(subject.Descriptor.Widget); explicit != "" {
		return Kind(explicit), true
	}
	if r == nil {
		return "", false
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(subject) {
			return entry.kind, true
		}
	}
	return "", false
}

// Infer resolves through r and degrades to Text when nothing matched.
func (r *Registry) Infer(desc schema.FieldDescriptor, key string, options []schema.Option) Kind {
	if kind, ok := r.Resolve(NewSubject(desc, key, options)); ok {
		return kind
	}
	return Text
}

var defaultRegistry = NewRegistry()

// Infer applies the built-in rules to a single field.
func Infer(desc schema.FieldDescriptor, key string, options []schema.Option) Kind {
	return defaultRegistry.Infer(desc, key, options)
}
