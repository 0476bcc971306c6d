package render

import (
	"context"

	"github.com/goliatone/go-phoneform/pkg/model"
)

// Renderer converts a FormModel holding phone fields into a byte
// representation (HTML, terminal prompts, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
