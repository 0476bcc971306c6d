package template

import (
	"errors"
	"io"
)

// ErrFilterExists is returned when a filter name is already registered.
// Filters may be process wide, so callers registering on several engines can
// treat it as success.
var ErrFilterExists = errors.New("template: filter already registered")

// FilterFunc is a template filter: input is the piped value, param the
// optional filter argument.
type FilterFunc func(input any, param any) (any, error)

// TemplateRenderer is the engine contract renderers rely on. Output is returned
// and additionally copied to every writer in out.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn FilterFunc) error
	GlobalContext(data any) error
}
