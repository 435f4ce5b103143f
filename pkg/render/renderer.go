package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Renderer turns a built form into bytes (HTML, terminal transcript, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
