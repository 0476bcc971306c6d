// Package phoneform is the top-level entry point for rendering and binding
// phone number form fields. Most callers only need GenerateHTML and
// Submit; the packages under pkg/ expose each layer on its own.
package phoneform

import (
	"context"

	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/orchestrator"
	"github.com/goliatone/go-phoneform/pkg/render"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Submission aliases orchestrator.Submission.
type Submission = orchestrator.Submission

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML builds a form from the `phone` tagged fields of value and
// renders it with the named renderer (vanilla HTML when empty).
func GenerateHTML(ctx context.Context, value any, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Value:         value,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// GenerateHTMLFromForm renders a prepared form model.
func GenerateHTMLFromForm(ctx context.Context, form model.FormModel, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Form:          &form,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// Submit binds raw submitted values to the phone fields of value's form.
func Submit(ctx context.Context, value any, raw map[string]any, opts RenderOptions, options ...orchestrator.Option) (Submission, error) {
	gen := orchestrator.New(options...)
	form, err := gen.Form(orchestrator.Request{Value: value})
	if err != nil {
		return Submission{}, err
	}
	return gen.Submit(ctx, form, raw, opts)
}
