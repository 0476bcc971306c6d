package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-phoneform/pkg/form"
	"github.com/goliatone/go-phoneform/pkg/form/transformer"
	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/render"
	"github.com/goliatone/go-phoneform/pkg/serializer"
	"github.com/goliatone/go-phoneform/pkg/validation"
)

// BlankMessage is reported when a required field is left empty.
const BlankMessage = validation.BlankMessage

// Renderer implements render.Renderer for terminal-driven sessions. Phone
// fields are collected as a country plus number (country_choice) or a single
// number, validated with the Phone constraint and emitted in E.164.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	util              phonenumber.Util
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	if r.util == nil {
		r.util = phonenumber.Default()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// session carries the per-render collaborators.
type session struct {
	opts      render.RenderOptions
	state     *State
	validator *validation.Validator
	handler   *serializer.Handler
}

// Render prompts for every field of the form and serializes the answers.
func (r *Renderer) Render(ctx context.Context, formModel model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	s := &session{
		opts:  opts,
		state: NewState(opts.Values, opts.Errors),
		validator: validation.New(
			validation.WithUtil(r.util),
			validation.WithTranslator(opts.Translator),
			validation.WithLocale(opts.Locale),
		),
		handler: serializer.NewHandler(r.util),
	}

	formModel.Fields = append([]model.Field(nil), formModel.Fields...)
	render.LocalizeFormModel(&formModel, opts)
	if len(opts.FormErrors) > 0 {
		if err := r.reportErrors(ctx, opts.FormErrors); err != nil {
			return nil, err
		}
	}

	for _, field := range formModel.Fields {
		if err := r.promptField(ctx, s, field, field.Name); err != nil {
			return nil, err
		}
	}

	values := s.state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, s *session, field model.Field, path string) error {
	if err := r.reportErrors(ctx, s.state.ErrorsFor(path)); err != nil {
		return err
	}

	switch {
	case field.IsPhone():
		return r.promptPhone(ctx, s, field, path)
	case field.Type == model.FieldTypeObject:
		for _, nested := range field.Nested {
			if err := r.promptField(ctx, s, nested, path+"."+nested.Name); err != nil {
				return err
			}
		}
		return nil
	case field.Type == model.FieldTypeBoolean:
		return r.promptBoolean(ctx, s, field, path)
	case len(field.Options) > 0 || len(field.Enum) > 0:
		return r.promptChoice(ctx, s, field, path)
	default:
		return r.promptString(ctx, s, field, path)
	}
}

func (r *Renderer) promptPhone(ctx context.Context, s *session, field model.Field, path string) error {
	options := []form.Option{form.WithUtil(r.util)}
	if s.opts.Locale != "" {
		options = append(options, form.WithLocale(s.opts.Locale))
	}
	phone, err := form.FromModel(field, options...)
	if err != nil {
		return fmt.Errorf("tui: build field %q: %w", path, err)
	}
	constraint := validation.ConstraintFromModel(field, phone.Options.DefaultRegion)

	var prefill phonenumber.Number
	if current, ok := s.state.GetValue(path); ok {
		prefill = r.numberOf(current)
	}

	for {
		raw, err := r.askPhone(ctx, phone, field, prefill)
		if err != nil {
			return err
		}

		var num phonenumber.Number
		if raw != nil {
			num, err = phone.Submit(raw)
			if err != nil {
				var invalid *form.InvalidValueError
				if !errors.As(err, &invalid) {
					return err
				}
				if err := r.reportErrors(ctx, []string{r.translate(s, invalid.Message)}); err != nil {
					return err
				}
				continue
			}
		}

		if num == nil {
			if phone.Options.Required {
				if err := r.reportErrors(ctx, []string{r.translate(s, BlankMessage)}); err != nil {
					return err
				}
				continue
			}
			return s.state.SetValue(path, nil)
		}

		violations, err := s.validator.Validate(num, constraint)
		if err != nil {
			return fmt.Errorf("tui: validate %q: %w", path, err)
		}
		if len(violations) > 0 {
			messages := make([]string, 0, len(violations))
			for _, violation := range violations {
				messages = append(messages, violation.Message)
			}
			if err := r.reportErrors(ctx, messages); err != nil {
				return err
			}
			prefill = num
			continue
		}

		return s.state.SetValue(path, *s.handler.Serialize(num))
	}
}

// askPhone returns the raw submission for phone: a string for single_text, a
// transformer.CountryNumber for country_choice, or nil when left blank.
func (r *Renderer) askPhone(ctx context.Context, phone *form.Field, field model.Field, prefill phonenumber.Number) (any, error) {
	label := displayLabel(field)
	help := displayHelp(field)

	current, _ := phone.View(prefill)
	if !phone.Compound() {
		defaultVal, _ := current.(string)
		answer, err := r.driver.Input(ctx, InputConfig{Message: label, Default: defaultVal, Help: help})
		if err != nil {
			return nil, err
		}
		if answer = strings.TrimSpace(answer); answer == "" {
			return nil, nil
		}
		return answer, nil
	}

	pair, _ := current.(transformer.CountryNumber)
	choices := phone.CountryChoices()
	if len(choices) == 0 {
		return nil, ErrNoChoices
	}
	labels := make([]string, len(choices))
	keywords := make([]string, len(choices))
	defaultIndex := 0
	for i, choice := range choices {
		labels[i] = choice.Label
		keywords[i] = choice.Region + " " + strconv.Itoa(choice.CallingCode)
		if choice.Region == pair.Country {
			defaultIndex = i
		}
	}

	country, _ := phone.Child(form.ChildCountry)
	number, _ := phone.Child(form.ChildNumber)
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      childLabel(country.Label, label+" country"),
		Options:      labels,
		Keywords:     keywords,
		DefaultIndex: defaultIndex,
		Help:         help,
		PageSize:     10,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(choices) {
		return nil, fmt.Errorf("tui: select returned out of range index %d", idx)
	}

	answer, err := r.driver.Input(ctx, InputConfig{
		Message: childLabel(number.Label, label),
		Default: pair.Number,
		Help:    number.Placeholder,
	})
	if err != nil {
		return nil, err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return nil, nil
	}
	return transformer.CountryNumber{Country: choices[idx].Region, Number: answer}, nil
}

func (r *Renderer) promptString(ctx context.Context, s *session, field model.Field, path string) error {
	defaultVal := ""
	if current, ok := s.state.GetValue(path); ok && current != nil {
		defaultVal = fmt.Sprint(current)
	} else if field.Default != nil {
		defaultVal = fmt.Sprint(field.Default)
	}

	for {
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: defaultVal,
			Help:    displayHelp(field),
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) == "" && field.Required {
			if err := r.reportErrors(ctx, []string{r.translate(s, BlankMessage)}); err != nil {
				return err
			}
			continue
		}
		return s.state.SetValue(path, answer)
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, s *session, field model.Field, path string) error {
	defaultVal, _ := field.Default.(bool)
	if current, ok := s.state.GetValue(path); ok {
		if b, ok := current.(bool); ok {
			defaultVal = b
		}
	}
	answer, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: defaultVal,
		Help:    displayHelp(field),
	})
	if err != nil {
		return err
	}
	return s.state.SetValue(path, answer)
}

func (r *Renderer) promptChoice(ctx context.Context, s *session, field model.Field, path string) error {
	options := field.Options
	if len(options) == 0 {
		for _, item := range field.Enum {
			value := fmt.Sprint(item)
			options = append(options, model.FieldOption{Value: value, Label: value})
		}
	}

	current := ""
	if value, ok := s.state.GetValue(path); ok && value != nil {
		current = fmt.Sprint(value)
	} else if field.Default != nil {
		current = fmt.Sprint(field.Default)
	}

	labels := make([]string, len(options))
	defaultIndex := 0
	for i, option := range options {
		labels[i] = option.Label
		if option.Value == current {
			defaultIndex = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      labels,
		Keywords:     keywords,
		DefaultIndex: defaultIndex,
		Help:         displayHelp(field),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("tui: select returned out of range index %d", idx)
	}
	return s.state.SetValue(path, options[idx].Value)
}

func (r *Renderer) reportErrors(ctx context.Context, messages []string) error {
	for _, message := range messages {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) translate(s *session, message string) string {
	return render.TranslateMessage(s.opts.Translator, s.opts.Locale, message, nil)
}

func (r *Renderer) numberOf(value any) phonenumber.Number {
	switch v := value.(type) {
	case phonenumber.Number:
		return v
	case interface{ PhoneNumber() phonenumber.Number }:
		return v.PhoneNumber()
	case string:
		num, err := r.util.Parse(v, phonenumber.UnknownRegion)
		if err != nil {
			return nil
		}
		return num
	}
	return nil
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field) string {
	if h := field.Metadata["cli.help"]; h != "" {
		return h
	}
	return field.Description
}

func childLabel(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	case nil:
		out.Set(prefix, "")
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	keys := make([]string, 0, len(flattened))
	for key := range flattened {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, flattened.Get(key))
	}
	return b.String()
}
