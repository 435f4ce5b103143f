package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNoRenderers is returned by Resolve on an empty registry.
var ErrNoRenderers = errors.New("render: no renderers registered")

// Registry holds renderers keyed by lower-cased name, remembering the order
// they were added in. The first renderer added is the last-resort choice.
type Registry struct {
	mu    sync.RWMutex
	byKey map[string]Renderer
	order []string
}

func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Renderer)}
}

// Register adds renderer under its Name. A name can only be used once.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	key := rendererKey(renderer.Name())
	if key == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byKey[key]; taken {
		return fmt.Errorf("render: renderer %q already registered", key)
	}
	r.byKey[key] = renderer
	r.order = append(r.order, key)
	return nil
}

// MustRegister panics when Register fails.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.byKey[rendererKey(name)]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("render: renderer %q not found", name)
}

// Resolve picks the renderer for a request. An explicit name must exist.
// Without one, fallback is tried and then the first registered renderer.
func (r *Registry) Resolve(name, fallback string) (Renderer, error) {
	if strings.TrimSpace(name) != "" {
		return r.Get(name)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.byKey[rendererKey(fallback)]; ok {
		return renderer, nil
	}
	if len(r.order) == 0 {
		return nil, ErrNoRenderers
	}
	return r.byKey[r.order[0]], nil
}

// List returns the registered names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byKey[rendererKey(name)]
	return ok
}

func rendererKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
