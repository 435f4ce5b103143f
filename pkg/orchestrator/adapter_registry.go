package orchestrator

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// FormatAdapter turns a raw document of one format into a field schema.
type FormatAdapter interface {
	Name() string
	// Detect reports whether raw looks like this adapter's format.
	Detect(src schema.Source, raw []byte) bool
	// Schema parses doc. target selects a sub-schema for formats that hold
	// several forms and is ignored otherwise.
	Schema(ctx context.Context, doc schema.Document, target string) (schema.Schema, error)
}

// AdapterRegistry keeps format adapters in registration order.
type AdapterRegistry struct {
	mu       sync.RWMutex
	adapters []FormatAdapter
}

func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{}
}

// Register appends adapter. Names are case-insensitive and unique.
func (r *AdapterRegistry) Register(adapter FormatAdapter) error {
	if adapter == nil {
		return fmt.Errorf("orchestrator: adapter is required")
	}
	key := adapterKey(adapter.Name())
	if key == "" {
		return fmt.Errorf("orchestrator: adapter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(key) >= 0 {
		return fmt.Errorf("orchestrator: adapter %q already registered", key)
	}
	r.adapters = append(r.adapters, adapter)
	return nil
}

func (r *AdapterRegistry) MustRegister(adapter FormatAdapter) {
	if err := r.Register(adapter); err != nil {
		panic(err)
	}
}

// Get looks an adapter up by the format name a caller asked for.
func (r *AdapterRegistry) Get(name string) (FormatAdapter, error) {
	key := adapterKey(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(key); i >= 0 {
		return r.adapters[i], nil
	}
	return nil, fmt.Errorf("orchestrator: unknown format %q (registered: %s)", name, strings.Join(r.namesLocked(), ", "))
}

// List returns adapter names in registration order.
func (r *AdapterRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// Detect returns every adapter that claims the payload.
func (r *AdapterRegistry) Detect(src schema.Source, raw []byte) []FormatAdapter {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	candidates := slices.Clone(r.adapters)
	r.mu.RUnlock()

	var matches []FormatAdapter
	for _, adapter := range candidates {
		if adapter.Detect(src, raw) {
			matches = append(matches, adapter)
		}
	}
	return matches
}

func (r *AdapterRegistry) indexOf(key string) int {
	return slices.IndexFunc(r.adapters, func(a FormatAdapter) bool {
		return adapterKey(a.Name()) == key
	})
}

func (r *AdapterRegistry) namesLocked() []string {
	names := make([]string, len(r.adapters))
	for i, adapter := range r.adapters {
		names[i] = adapterKey(adapter.Name())
	}
	return names
}

func adapterKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
