package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func (o *Orchestrator) resolveAdapter(req Request, doc schema.Document) (FormatAdapter, error) {
	if o.adapterRegistry == nil {
		return nil, errors.New("orchestrator: adapter registry is nil")
	}

	if format := strings.TrimSpace(req.Format); format != "" {
		return o.adapterRegistry.Get(format)
	}

	matches := o.adapterRegistry.Detect(doc.Source(), doc.Raw())
	switch len(matches) {
	case 0:
		if o.defaultAdapter == "" {
			return nil, errors.New("orchestrator: unable to detect format")
		}
		return o.adapterRegistry.Get(o.defaultAdapter)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("orchestrator: multiple adapters matched payload (%s), specify format", formatAdapterNames(matches))
	}
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	if o.loader == nil {
		return schema.Document{}, errors.New("orchestrator: loader is nil")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func formatAdapterNames(adapters []FormatAdapter) string {
	names := make([]string, 0, len(adapters))
	for _, adapter := range adapters {
		if adapter == nil {
			continue
		}
		if name := strings.TrimSpace(adapter.Name()); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
