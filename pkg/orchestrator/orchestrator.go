package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-phoneform/pkg/metadata"
	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/render"
	"github.com/goliatone/go-phoneform/pkg/renderers/vanilla"
	"github.com/goliatone/go-phoneform/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDecorators registers decorators that run against the form model after
// widget resolution and before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithWidgetRegistry replaces the registry resolving phone widgets. Pass nil
// to leave widget hints untouched.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
		o.widgetsSpecified = true
	}
}

// WithGuessers replaces the constraint guessers used for struct sources.
func WithGuessers(guessers ...metadata.ConstraintGuesser) Option {
	return func(o *Orchestrator) {
		o.guessers = guessers
	}
}

// WithUtil sets the numbering-plan utility used when binding submissions.
func WithUtil(util phonenumber.Util) Option {
	return func(o *Orchestrator) {
		if util != nil {
			o.util = util
		}
	}
}

// Orchestrator coordinates the pipeline from a phone-tagged struct or form
// model to rendered output.
type Orchestrator struct {
	registry         *render.Registry
	defaultRenderer  string
	decorators       []model.Decorator
	widgets          *widgets.Registry
	widgetsSpecified bool
	guessers         []metadata.ConstraintGuesser
	util             phonenumber.Util
	initialiseErr    error
}

// New constructs an Orchestrator. Without a registry it renders with the
// vanilla HTML renderer.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one form generation.
type Request struct {
	// Value is a struct (or pointer to one) whose `phone` tagged fields become
	// form fields. Ignored when Form is set.
	Value any

	// Form bypasses metadata guessing when the caller already has a model.
	Form *model.FormModel

	OperationID string
	Endpoint    string
	Method      string
	Summary     string

	// Renderer names the renderer to use; empty selects the default.
	Renderer string

	RenderOptions render.RenderOptions
}

// Generate builds the form model for req and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form, err := o.Form(req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, form, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Form resolves and decorates the form model for req without rendering it.
func (o *Orchestrator) Form(req Request) (model.FormModel, error) {
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	var form model.FormModel
	switch {
	case req.Form != nil:
		form = *req.Form
		form.Fields = model.CloneFields(req.Form.Fields)
	case req.Value != nil:
		fields, err := metadata.FieldsFromStruct(req.Value, o.guessers...)
		if err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: build fields: %w", err)
		}
		form.Fields = fields
	default:
		return model.FormModel{}, errors.New("orchestrator: value or form is required")
	}

	if req.OperationID != "" {
		form.OperationID = req.OperationID
	}
	if req.Endpoint != "" {
		form.Endpoint = req.Endpoint
	}
	if req.Method != "" {
		form.Method = req.Method
	}
	if req.Summary != "" {
		form.Summary = req.Summary
	}

	if o.widgets != nil {
		if err := o.widgets.Decorate(&form); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: resolve widgets: %w", err)
		}
	}
	if err := model.Apply(&form, o.decorators...); err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	return form, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.util == nil {
		o.util = phonenumber.Default()
	}
	if o.widgets == nil && !o.widgetsSpecified {
		o.widgets = widgets.NewRegistry()
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.registry != nil {
		return
	}

	renderer, err := vanilla.New(vanilla.WithUtil(o.util))
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		return
	}
	registry, err := render.NewRegistry(renderer)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default registry: %w", err)
		return
	}
	o.registry = registry
}
