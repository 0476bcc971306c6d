package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-phoneform/pkg/form"
	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/render"
	rendertemplate "github.com/goliatone/go-phoneform/pkg/render/template"
	gotemplate "github.com/goliatone/go-phoneform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-phoneform/pkg/templatefn"
	"github.com/goliatone/go-phoneform/pkg/widgets"
)

const (
	templateForm          = "templates/form"
	templateSingleText    = "templates/phone_single_text"
	templateCountryChoice = "templates/phone_country_choice"
	templateInput         = "templates/input"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	widgets          *widgets.Registry
	util             phonenumber.Util
	fieldOptions     []form.Option
	classes          Classes
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithWidgetRegistry replaces the registry used to resolve widgets.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithUtil sets the numbering-plan utility used by fields and phone_format.
func WithUtil(util phonenumber.Util) Option {
	return func(cfg *config) {
		if util != nil {
			cfg.util = util
		}
	}
}

// WithFieldOptions applies opts to every phone field built from the model,
// after the values read from the model itself.
func WithFieldOptions(opts ...form.Option) Option {
	return func(cfg *config) {
		cfg.fieldOptions = append(cfg.fieldOptions, opts...)
	}
}

// WithClasses overrides the chrome classes.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = cfg.classes.merge(classes)
	}
}

// WithInlineStyles prepends the bundled stylesheet in a <style> element.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// Renderer renders form models holding phone fields to HTML.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	widgets      *widgets.Registry
	util         phonenumber.Util
	fieldOptions []form.Option
	classes      Classes
	inlineStyles bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), classes: DefaultClasses()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.util == nil {
		cfg.util = phonenumber.Default()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if err := templatefn.New(cfg.util).Register(renderer); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	return &Renderer{
		templates:    renderer,
		widgets:      cfg.widgets,
		util:         cfg.util,
		fieldOptions: cfg.fieldOptions,
		classes:      cfg.classes,
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render resolves widgets, localizes labels and renders every field of the
// form. Phone fields are rebuilt with form.FromModel so their markup follows
// the view produced by the field transformer.
func (r *Renderer) Render(_ context.Context, formModel model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	working := formModel
	working.Fields = model.CloneFields(formModel.Fields)
	if err := r.widgets.Decorate(&working); err != nil {
		return nil, fmt.Errorf("vanilla renderer: resolve widgets: %w", err)
	}
	render.LocalizeFormModel(&working, opts)

	fields := make([]any, 0, len(working.Fields))
	for _, field := range working.Fields {
		markup, err := r.renderField(field, opts)
		if err != nil {
			return nil, err
		}
		fields = append(fields, markup)
	}

	method := strings.ToLower(strings.TrimSpace(working.Method))
	if method == "" {
		method = "post"
	}
	data := map[string]any{
		"classes":        r.classes.context(),
		"method":         method,
		"action":         working.Endpoint,
		"operation_id":   working.OperationID,
		"title":          working.Summary,
		"form_errors":    opts.FormErrors,
		"fields":         fields,
		"locale":         opts.Locale,
		"submit_default": map[string]any{"default": "Submit"},
	}
	for name, fn := range render.TemplateI18nFuncs(opts.Translator, render.TemplateI18nConfig{OnMissing: opts.OnMissing}) {
		data[name] = fn
	}

	result, err := r.templates.RenderTemplate(templateForm, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	if r.inlineStyles {
		result = "<style>\n" + defaultStylesheet() + "</style>\n" + result
	}
	return []byte(result), nil
}

// RenderField renders a single phone field. The value is read from
// opts.Values[field.Name] and may be a phone number or the raw submission.
func (r *Renderer) RenderField(field *form.Field, opts render.RenderOptions) (string, error) {
	if field == nil {
		return "", fmt.Errorf("vanilla renderer: field is nil")
	}
	if r.templates == nil {
		return "", fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	return r.renderPhone(field, "", opts)
}

func (r *Renderer) renderField(field model.Field, opts render.RenderOptions) (string, error) {
	if !field.IsPhone() {
		return r.renderInput(field, opts)
	}

	options := make([]form.Option, 0, len(r.fieldOptions)+2)
	options = append(options, form.WithUtil(r.util))
	if opts.Locale != "" {
		options = append(options, form.WithLocale(opts.Locale))
	}
	options = append(options, r.fieldOptions...)

	phone, err := form.FromModel(field, options...)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: build field %q: %w", field.Name, err)
	}
	return r.renderPhone(phone, field.UIHints["cssClass"], opts)
}

func (r *Renderer) renderPhone(phone *form.Field, cssClass string, opts render.RenderOptions) (string, error) {
	view, e164, err := r.phoneView(phone, opts.Values[phone.Name], opts.Errors[phone.Name])
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: build view for %q: %w", phone.Name, err)
	}

	name, class := templateSingleText, joinClasses(r.classes.Field, cssClass)
	if phone.Compound() {
		name, class = templateCountryChoice, joinClasses(r.classes.Fieldset, cssClass)
		localizeChildren(view, phone, opts)
		for _, child := range view.Children {
			path := phone.Name + "." + fmt.Sprint(child.Vars["name"])
			if errs := opts.Errors[path]; len(errs) > 0 {
				child.Vars["errors"] = errs
			}
		}
	}

	return r.templates.RenderTemplate(name, map[string]any{
		"view":    view,
		"e164":    e164,
		"class":   class,
		"classes": r.classes.context(),
	})
}

// phoneView builds the view for value and reports its E.164 form when value
// holds a number. Raw submissions are copied back into the view so invalid
// input is redisplayed as typed.
func (r *Renderer) phoneView(phone *form.Field, value any, errs []string) (*form.View, string, error) {
	num := numberOf(value)
	if num == nil {
		view, err := phone.BuildView(nil, errs...)
		if err != nil {
			return nil, "", err
		}
		restoreSubmitted(view, value)
		return view, "", nil
	}

	e164 := r.util.Format(num, phonenumber.E164)
	view, err := phone.BuildView(num, errs...)
	if err != nil {
		// Numbers outside the allowed countries still render, unselected.
		view, err = phone.BuildView(nil, errs...)
		if err != nil {
			return nil, "", err
		}
		restoreSubmitted(view, r.util.Format(num, phonenumber.International))
	}
	return view, e164, nil
}

func (r *Renderer) renderInput(field model.Field, opts render.RenderOptions) (string, error) {
	value := opts.Values[field.Name]
	if value == nil {
		value = field.Default
	}
	text := ""
	if value != nil {
		text = fmt.Sprint(value)
	}

	if len(field.Options) == 0 {
		for _, item := range field.Enum {
			label := fmt.Sprint(item)
			field.Options = append(field.Options, model.FieldOption{Value: label, Label: label})
		}
	}

	out, err := r.templates.RenderTemplate(templateInput, map[string]any{
		"field":      field,
		"widget":     field.UIHints["widget"],
		"input_type": inputType(field),
		"value":      text,
		"errors":     opts.Errors[field.Name],
		"class":      joinClasses(r.classes.Field, field.UIHints["cssClass"]),
		"classes":    r.classes.context(),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render field %q: %w", field.Name, err)
	}
	return out, nil
}

func inputType(field model.Field) string {
	if hint := strings.TrimSpace(field.UIHints["inputType"]); hint != "" {
		return hint
	}
	switch field.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return "number"
	case model.FieldTypeBoolean:
		return "checkbox"
	}
	if field.Format == "email" {
		return "email"
	}
	return "text"
}
